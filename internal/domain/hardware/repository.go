package hardware

import "context"

type DeviceRepository interface {
	Create(ctx context.Context, device Device) (Device, error)
	GetByID(ctx context.Context, id string) (Device, error)
	List(ctx context.Context) ([]Device, error)
	ListByCompany(ctx context.Context, companyID string) ([]Device, error)
	Update(ctx context.Context, device Device) error
	ExistsByUID(ctx context.Context, uid string) (bool, error)
	CreateCommand(ctx context.Context, cmd Command) (Command, error)
}
