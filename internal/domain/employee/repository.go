package employee

import "context"

// EmployeeRepository defines data access for the staff registry. All
// methods take companyID to prevent cross-company data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByCode(ctx context.Context, code string, companyID string) (Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
	SoftDelete(ctx context.Context, id string, companyID string) error
	ExistsByCodeOrEmail(ctx context.Context, code string, email string, companyID string) (bool, error)
}
