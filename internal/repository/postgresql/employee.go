package postgresql

import (
	"context"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/employee"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, email, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var found employee.Employee
	err := row.Scan(
		&found.ID, &found.CompanyID, &found.EmployeeCode, &found.FullName,
		&found.Email, &found.CreatedAt, &found.UpdatedAt, &found.DeletedAt,
	)
	return found, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (company_id, employee_code, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query, emp.CompanyID, emp.EmployeeCode, emp.FullName, emp.Email))
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	return scanEmployee(q.QueryRow(ctx, query, id, companyID))
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_code = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	return scanEmployee(q.QueryRow(ctx, query, code, companyID))
}

// ListByCompany implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		found, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, found)
	}
	return employees, rows.Err()
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND company_id = $3 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	return q.QueryRow(ctx, query, time.Now(), id, companyID).Scan(&deletedID)
}

// ExistsByCodeOrEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByCodeOrEmail(ctx context.Context, code string, email string, companyID string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE company_id = $1 AND deleted_at IS NULL
				AND (employee_code = $2 OR email = $3)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, code, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
