package hardware

import "time"

// Device is a registered attendance unit (door controller, badge reader)
// assigned to a company by the platform owner.
type Device struct {
	ID         string
	CompanyID  *string // nil until assigned
	DeviceType string  // e.g. "door_controller", "badge_reader"
	DeviceUID  string  // hardware serial, unique platform-wide
	LastSeenAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Command is a remote instruction queued for a device, such as an
// emergency door open issued from the company control center.
type Command struct {
	ID        string
	DeviceID  string
	CompanyID string
	Action    string // "open"
	Reason    string
	IssuedBy  string // user ID
	IssuedAt  time.Time
}
