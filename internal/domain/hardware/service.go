package hardware

import "context"

type DeviceService interface {
	// Platform owner operations.
	List(ctx context.Context) ([]DeviceResponse, error)
	Register(ctx context.Context, req RegisterDeviceRequest) (DeviceResponse, error)
	Update(ctx context.Context, req UpdateDeviceRequest) (DeviceResponse, error)

	// Company admin control center.
	ListMine(ctx context.Context) ([]DeviceResponse, error)
	EmergencyOpen(ctx context.Context, req EmergencyOpenRequest) (CommandResponse, error)
}
