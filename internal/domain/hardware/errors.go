package hardware

import "errors"

var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrDeviceUIDExists = errors.New("device uid already registered")
	ErrNotAssigned     = errors.New("device is not assigned to your company")
)
