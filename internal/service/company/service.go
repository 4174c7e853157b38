package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
}

func NewCompanyService(db *database.DB, companyRepository company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{
		db:                db,
		CompanyRepository: companyRepository,
	}
}

func claimsFromContext(ctx context.Context) (companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if v, ok := claims["company_id"].(string); ok {
		companyID = v
	}
	if v, ok := claims["role"].(string); ok {
		role = user.Role(v)
	}
	return companyID, role, nil
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	if companyID == "" {
		return company.CompanyResponse{}, company.ErrCompanyNotFound
	}

	comp, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	return toCompanyResponse(comp), nil
}

// UpdateLocation implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateLocation(ctx context.Context, req company.UpdateLocationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	comp, err := c.requireAdminCompany(ctx)
	if err != nil {
		return err
	}

	settings := comp.Settings
	settings.Latitude = req.Latitude
	settings.Longitude = req.Longitude
	settings.RadiusMeters = req.RadiusMeters

	if err := c.CompanyRepository.UpdateSettings(ctx, comp.ID, settings); err != nil {
		return fmt.Errorf("failed to update company settings: %w", err)
	}
	return nil
}

// UpdateSchedule implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateSchedule(ctx context.Context, req company.UpdateScheduleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	comp, err := c.requireAdminCompany(ctx)
	if err != nil {
		return err
	}

	settings := comp.Settings
	settings.ScheduleStart = req.Start
	settings.ScheduleEnd = req.End
	if req.GraceMinutes != nil {
		settings.GraceMinutes = *req.GraceMinutes
	}

	if err := c.CompanyRepository.UpdateSettings(ctx, comp.ID, settings); err != nil {
		return fmt.Errorf("failed to update company settings: %w", err)
	}
	return nil
}

// List implements company.CompanyService.
func (c *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	if err := requireSuperAdmin(ctx); err != nil {
		return nil, err
	}

	companies, err := c.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, comp := range companies {
		responses = append(responses, toCompanyResponse(comp))
	}
	return responses, nil
}

// Create implements company.CompanyService.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	if err := requireSuperAdmin(ctx); err != nil {
		return company.CompanyResponse{}, err
	}

	exists, err := c.CompanyRepository.ExistsByName(ctx, req.Name)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to check company name: %w", err)
	}
	if exists {
		return company.CompanyResponse{}, company.ErrNameTaken
	}

	created, err := c.CompanyRepository.Create(ctx, company.Company{
		Name:   req.Name,
		Status: company.StatusActive,
		Settings: company.Settings{
			ScheduleStart: "09:00",
			ScheduleEnd:   "17:00",
			Timezone:      "UTC",
		},
	})
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	return toCompanyResponse(created), nil
}

// Rename implements company.CompanyService.
func (c *CompanyServiceImpl) Rename(ctx context.Context, id string, req company.RenameCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := requireSuperAdmin(ctx); err != nil {
		return err
	}

	exists, err := c.CompanyRepository.ExistsByName(ctx, req.Name)
	if err != nil {
		return fmt.Errorf("failed to check company name: %w", err)
	}
	if exists {
		return company.ErrNameTaken
	}

	if err := c.CompanyRepository.Rename(ctx, id, req.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to rename company: %w", err)
	}
	return nil
}

// Suspend implements company.CompanyService.
func (c *CompanyServiceImpl) Suspend(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, company.StatusSuspended)
}

// Activate implements company.CompanyService.
func (c *CompanyServiceImpl) Activate(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, company.StatusActive)
}

func (c *CompanyServiceImpl) setStatus(ctx context.Context, id string, status company.Status) error {
	if err := requireSuperAdmin(ctx); err != nil {
		return err
	}

	if err := c.CompanyRepository.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to set company status: %w", err)
	}
	return nil
}

// requireAdminCompany loads the caller's own company and enforces the
// company-admin role.
func (c *CompanyServiceImpl) requireAdminCompany(ctx context.Context) (company.Company, error) {
	companyID, role, err := claimsFromContext(ctx)
	if err != nil {
		return company.Company{}, err
	}
	if role != user.RoleAdmin || companyID == "" {
		return company.Company{}, company.ErrUnauthorized
	}

	comp, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return comp, nil
}

func requireSuperAdmin(ctx context.Context) error {
	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleSuperAdmin {
		return company.ErrUnauthorized
	}
	return nil
}

func toCompanyResponse(comp company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:     comp.ID,
		Name:   comp.Name,
		Status: string(comp.Status),
		Settings: company.SettingsResponse{
			Latitude:      comp.Settings.Latitude,
			Longitude:     comp.Settings.Longitude,
			RadiusMeters:  comp.Settings.RadiusMeters,
			ScheduleStart: comp.Settings.ScheduleStart,
			ScheduleEnd:   comp.Settings.ScheduleEnd,
			GraceMinutes:  comp.Settings.GraceMinutes,
			Timezone:      comp.Settings.Timezone,
		},
		CreatedAt: comp.CreatedAt,
		UpdatedAt: comp.UpdatedAt,
	}
}
