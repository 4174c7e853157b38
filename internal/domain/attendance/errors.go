package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrLocationRequired     = errors.New("location is required to check in")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")

	// Classification errors
	ErrInvalidSchedule = errors.New("work schedule start time is not a valid HH:MM time")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
	ErrUnauthorized  = errors.New("unauthorized to access this attendance record")
)
