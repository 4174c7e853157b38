package company

import "context"

type CompanyService interface {
	// Company admin: own-company settings.
	GetMyCompany(ctx context.Context) (CompanyResponse, error)
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) error
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) error

	// Platform owner operations.
	List(ctx context.Context) ([]CompanyResponse, error)
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Rename(ctx context.Context, id string, req RenameCompanyRequest) error
	Suspend(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
}
