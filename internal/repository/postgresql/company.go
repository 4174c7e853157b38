package postgresql

import (
	"context"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, name, status,
	office_latitude, office_longitude, office_radius_m,
	schedule_start, schedule_end, grace_minutes, timezone,
	created_at, updated_at
`

func scanCompany(row pgx.Row) (company.Company, error) {
	var found company.Company
	err := row.Scan(
		&found.ID, &found.Name, &found.Status,
		&found.Settings.Latitude, &found.Settings.Longitude, &found.Settings.RadiusMeters,
		&found.Settings.ScheduleStart, &found.Settings.ScheduleEnd, &found.Settings.GraceMinutes, &found.Settings.Timezone,
		&found.CreatedAt, &found.UpdatedAt,
	)
	return found, err
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, status, office_latitude, office_longitude, office_radius_m, schedule_start, schedule_end, grace_minutes, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + companyColumns

	return scanCompany(q.QueryRow(ctx, query,
		newCompany.Name, newCompany.Status,
		newCompany.Settings.Latitude, newCompany.Settings.Longitude, newCompany.Settings.RadiusMeters,
		newCompany.Settings.ScheduleStart, newCompany.Settings.ScheduleEnd, newCompany.Settings.GraceMinutes, newCompany.Settings.Timezone,
	))
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(q.QueryRow(ctx, query, id))
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, found)
	}
	return companies, rows.Err()
}

// Rename implements company.CompanyRepository.
func (c *companyRepositoryImpl) Rename(ctx context.Context, id string, name string) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $1, updated_at = $2
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	return q.QueryRow(ctx, query, name, time.Now(), id).Scan(&updatedID)
}

// SetStatus implements company.CompanyRepository.
func (c *companyRepositoryImpl) SetStatus(ctx context.Context, id string, status company.Status) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	return q.QueryRow(ctx, query, status, time.Now(), id).Scan(&updatedID)
}

// UpdateSettings implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateSettings(ctx context.Context, id string, settings company.Settings) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET office_latitude = $1, office_longitude = $2, office_radius_m = $3,
			schedule_start = $4, schedule_end = $5, grace_minutes = $6, timezone = $7,
			updated_at = $8
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	return q.QueryRow(ctx, query,
		settings.Latitude, settings.Longitude, settings.RadiusMeters,
		settings.ScheduleStart, settings.ScheduleEnd, settings.GraceMinutes, settings.Timezone,
		time.Now(), id,
	).Scan(&updatedID)
}

// ExistsByName implements company.CompanyRepository.
func (c *companyRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE name = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
