package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, newCompany Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Rename(ctx context.Context, id string, name string) error
	SetStatus(ctx context.Context, id string, status Status) error
	UpdateSettings(ctx context.Context, id string, settings Settings) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
