package hardware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type DeviceServiceImpl struct {
	db *database.DB
	hardware.DeviceRepository
}

func NewDeviceService(db *database.DB, deviceRepository hardware.DeviceRepository) hardware.DeviceService {
	return &DeviceServiceImpl{
		db:               db,
		DeviceRepository: deviceRepository,
	}
}

type caller struct {
	UserID    string
	CompanyID string
	Role      user.Role
}

func callerFromContext(ctx context.Context) (caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return caller{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	c := caller{}
	if v, ok := claims["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := claims["company_id"].(string); ok {
		c.CompanyID = v
	}
	if v, ok := claims["role"].(string); ok {
		c.Role = user.Role(v)
	}
	return c, nil
}

// List implements hardware.DeviceService.
func (d *DeviceServiceImpl) List(ctx context.Context) ([]hardware.DeviceResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if c.Role != user.RoleSuperAdmin {
		return nil, company.ErrUnauthorized
	}

	devices, err := d.DeviceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	return toDeviceResponses(devices), nil
}

// Register implements hardware.DeviceService.
func (d *DeviceServiceImpl) Register(ctx context.Context, req hardware.RegisterDeviceRequest) (hardware.DeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return hardware.DeviceResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return hardware.DeviceResponse{}, err
	}
	if c.Role != user.RoleSuperAdmin {
		return hardware.DeviceResponse{}, company.ErrUnauthorized
	}

	exists, err := d.DeviceRepository.ExistsByUID(ctx, req.DeviceUID)
	if err != nil {
		return hardware.DeviceResponse{}, fmt.Errorf("failed to check device uid: %w", err)
	}
	if exists {
		return hardware.DeviceResponse{}, hardware.ErrDeviceUIDExists
	}

	created, err := d.DeviceRepository.Create(ctx, hardware.Device{
		CompanyID:  req.CompanyID,
		DeviceType: req.DeviceType,
		DeviceUID:  req.DeviceUID,
	})
	if err != nil {
		return hardware.DeviceResponse{}, fmt.Errorf("failed to register device: %w", err)
	}

	return toDeviceResponse(created), nil
}

// Update implements hardware.DeviceService.
func (d *DeviceServiceImpl) Update(ctx context.Context, req hardware.UpdateDeviceRequest) (hardware.DeviceResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return hardware.DeviceResponse{}, err
	}
	if c.Role != user.RoleSuperAdmin {
		return hardware.DeviceResponse{}, company.ErrUnauthorized
	}

	device, err := d.DeviceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hardware.DeviceResponse{}, hardware.ErrDeviceNotFound
		}
		return hardware.DeviceResponse{}, fmt.Errorf("failed to get device: %w", err)
	}

	if req.DeviceType != nil {
		device.DeviceType = *req.DeviceType
	}
	if req.DeviceUID != nil && *req.DeviceUID != device.DeviceUID {
		exists, err := d.DeviceRepository.ExistsByUID(ctx, *req.DeviceUID)
		if err != nil {
			return hardware.DeviceResponse{}, fmt.Errorf("failed to check device uid: %w", err)
		}
		if exists {
			return hardware.DeviceResponse{}, hardware.ErrDeviceUIDExists
		}
		device.DeviceUID = *req.DeviceUID
	}
	if req.CompanyID != nil {
		device.CompanyID = req.CompanyID
	}

	if err := d.DeviceRepository.Update(ctx, device); err != nil {
		return hardware.DeviceResponse{}, fmt.Errorf("failed to update device: %w", err)
	}

	return toDeviceResponse(device), nil
}

// ListMine implements hardware.DeviceService.
func (d *DeviceServiceImpl) ListMine(ctx context.Context) ([]hardware.DeviceResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if c.Role != user.RoleAdmin || c.CompanyID == "" {
		return nil, company.ErrUnauthorized
	}

	devices, err := d.DeviceRepository.ListByCompany(ctx, c.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company devices: %w", err)
	}

	return toDeviceResponses(devices), nil
}

// EmergencyOpen implements hardware.DeviceService. The command is queued
// for the device; delivery is the device agent's concern.
func (d *DeviceServiceImpl) EmergencyOpen(ctx context.Context, req hardware.EmergencyOpenRequest) (hardware.CommandResponse, error) {
	if err := req.Validate(); err != nil {
		return hardware.CommandResponse{}, err
	}

	c, err := callerFromContext(ctx)
	if err != nil {
		return hardware.CommandResponse{}, err
	}
	if c.Role != user.RoleAdmin || c.CompanyID == "" {
		return hardware.CommandResponse{}, company.ErrUnauthorized
	}

	device, err := d.DeviceRepository.GetByID(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hardware.CommandResponse{}, hardware.ErrDeviceNotFound
		}
		return hardware.CommandResponse{}, fmt.Errorf("failed to get device: %w", err)
	}

	if device.CompanyID == nil || *device.CompanyID != c.CompanyID {
		return hardware.CommandResponse{}, hardware.ErrNotAssigned
	}

	cmd, err := d.DeviceRepository.CreateCommand(ctx, hardware.Command{
		DeviceID:  device.ID,
		CompanyID: c.CompanyID,
		Action:    "open",
		Reason:    req.Reason,
		IssuedBy:  c.UserID,
		IssuedAt:  time.Now().UTC(),
	})
	if err != nil {
		return hardware.CommandResponse{}, fmt.Errorf("failed to queue device command: %w", err)
	}

	return hardware.CommandResponse{
		ID:       cmd.ID,
		DeviceID: cmd.DeviceID,
		Action:   cmd.Action,
		Reason:   cmd.Reason,
		IssuedAt: cmd.IssuedAt.UTC().Format(time.RFC3339),
	}, nil
}

func toDeviceResponse(device hardware.Device) hardware.DeviceResponse {
	resp := hardware.DeviceResponse{
		ID:         device.ID,
		CompanyID:  device.CompanyID,
		DeviceType: device.DeviceType,
		DeviceUID:  device.DeviceUID,
	}
	if device.LastSeenAt != nil {
		formatted := device.LastSeenAt.UTC().Format(time.RFC3339)
		resp.LastSeenAt = &formatted
	}
	return resp
}

func toDeviceResponses(devices []hardware.Device) []hardware.DeviceResponse {
	responses := make([]hardware.DeviceResponse, 0, len(devices))
	for _, device := range devices {
		responses = append(responses, toDeviceResponse(device))
	}
	return responses
}
