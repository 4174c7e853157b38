package postgresql

import (
	"context"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepositoryImpl{db: db}
}

const eventColumns = `
	id, employee_id, company_id, event_type, event_timestamp, local_date,
	latitude, longitude, status, source, created_at
`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var found attendance.Event
	err := row.Scan(
		&found.ID, &found.EmployeeID, &found.CompanyID, &found.Type, &found.Timestamp, &found.LocalDate,
		&found.Latitude, &found.Longitude, &found.Status, &found.Source, &found.CreatedAt,
	)
	return found, err
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		found, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, found)
	}
	return events, rows.Err()
}

// Create implements attendance.EventRepository. The log is append-only;
// there is deliberately no update or delete.
func (r *eventRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (employee_id, company_id, event_type, event_timestamp, local_date, latitude, longitude, status, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	return scanEvent(q.QueryRow(ctx, query,
		event.EmployeeID, event.CompanyID, event.Type, event.Timestamp, event.LocalDate,
		event.Latitude, event.Longitude, event.Status, event.Source,
	))
}

// GetByID implements attendance.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE id = $1 AND company_id = $2
	`

	return scanEvent(q.QueryRow(ctx, query, id, companyID))
}

// ListByEmployeeBetween implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND company_id = $2
			AND event_timestamp >= $3 AND event_timestamp < $4
		ORDER BY event_timestamp DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// ListByCompanyOn implements attendance.EventRepository.
func (r *eventRepositoryImpl) ListByCompanyOn(ctx context.Context, companyID string, dateKey string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE company_id = $1 AND local_date = $2
		ORDER BY event_timestamp DESC
	`

	rows, err := q.Query(ctx, query, companyID, dateKey)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// HasCheckedInOn implements attendance.EventRepository.
func (r *eventRepositoryImpl) HasCheckedInOn(ctx context.Context, employeeID string, dateKey string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendance_events
			WHERE employee_id = $1 AND company_id = $2
				AND local_date = $3 AND event_type = 'check_in'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, companyID, dateKey).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
