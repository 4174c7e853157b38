package hardware

import (
	"github.com/attendancepro/attendance-backend-go/internal/pkg/validator"
)

type RegisterDeviceRequest struct {
	DeviceType string  `json:"device_type"`
	DeviceUID  string  `json:"device_uid"`
	CompanyID  *string `json:"company_id,omitempty"`
}

func (r *RegisterDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceType) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_type",
			Message: "device_type is required",
		})
	}

	if validator.IsEmpty(r.DeviceUID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_uid",
			Message: "device_uid is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDeviceRequest struct {
	ID         string  `json:"-"`
	DeviceType *string `json:"device_type,omitempty"`
	DeviceUID  *string `json:"device_uid,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
}

type EmergencyOpenRequest struct {
	DeviceID string `json:"-"`
	Reason   string `json:"reason"`
}

func (r *EmergencyOpenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required for an emergency open",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeviceResponse struct {
	ID         string  `json:"id"`
	CompanyID  *string `json:"company_id,omitempty"`
	DeviceType string  `json:"device_type"`
	DeviceUID  string  `json:"device_uid"`
	LastSeenAt *string `json:"last_seen_at,omitempty"`
}

type CommandResponse struct {
	ID       string `json:"id"`
	DeviceID string `json:"device_id"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
	IssuedAt string `json:"issued_at"`
}
