package postgresql

import (
	"context"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deviceRepositoryImpl struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) hardware.DeviceRepository {
	return &deviceRepositoryImpl{db: db}
}

const deviceColumns = `
	id, company_id, device_type, device_uid, last_seen_at, created_at, updated_at
`

func scanDevice(row pgx.Row) (hardware.Device, error) {
	var found hardware.Device
	err := row.Scan(
		&found.ID, &found.CompanyID, &found.DeviceType, &found.DeviceUID,
		&found.LastSeenAt, &found.CreatedAt, &found.UpdatedAt,
	)
	return found, err
}

// Create implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) Create(ctx context.Context, device hardware.Device) (hardware.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO devices (company_id, device_type, device_uid)
		VALUES ($1, $2, $3)
		RETURNING ` + deviceColumns

	return scanDevice(q.QueryRow(ctx, query, device.CompanyID, device.DeviceType, device.DeviceUID))
}

// GetByID implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) GetByID(ctx context.Context, id string) (hardware.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`
	return scanDevice(q.QueryRow(ctx, query, id))
}

// List implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) List(ctx context.Context) ([]hardware.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + deviceColumns + ` FROM devices ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectDevices(rows)
}

// ListByCompany implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]hardware.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE company_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	return collectDevices(rows)
}

func collectDevices(rows pgx.Rows) ([]hardware.Device, error) {
	defer rows.Close()

	var devices []hardware.Device
	for rows.Next() {
		found, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, found)
	}
	return devices, rows.Err()
}

// Update implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) Update(ctx context.Context, device hardware.Device) error {
	q := GetQuerier(ctx, d.db)

	query := `
		UPDATE devices
		SET company_id = $1, device_type = $2, device_uid = $3, updated_at = $4
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	return q.QueryRow(ctx, query, device.CompanyID, device.DeviceType, device.DeviceUID, time.Now(), device.ID).Scan(&updatedID)
}

// ExistsByUID implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) ExistsByUID(ctx context.Context, uid string) (bool, error) {
	q := GetQuerier(ctx, d.db)

	query := `SELECT EXISTS(SELECT 1 FROM devices WHERE device_uid = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, uid).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateCommand implements hardware.DeviceRepository.
func (d *deviceRepositoryImpl) CreateCommand(ctx context.Context, cmd hardware.Command) (hardware.Command, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO device_commands (device_id, company_id, action, reason, issued_by, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, device_id, company_id, action, reason, issued_by, issued_at
	`

	var created hardware.Command
	err := q.QueryRow(ctx, query, cmd.DeviceID, cmd.CompanyID, cmd.Action, cmd.Reason, cmd.IssuedBy, cmd.IssuedAt).
		Scan(&created.ID, &created.DeviceID, &created.CompanyID, &created.Action, &created.Reason, &created.IssuedBy, &created.IssuedAt)
	if err != nil {
		return hardware.Command{}, err
	}
	return created, nil
}
