package response

import (
	"errors"
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/domain/auth"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/employee"
	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrCompanySuspended):
		Forbidden(w, "Your company has been suspended")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location could not be determined", nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed office radius")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrInvalidSchedule):
		InternalServerError(w, "Company work schedule is misconfigured")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "You are not allowed to access this attendance data")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanySuspended):
		Forbidden(w, "Company is suspended")
	case errors.Is(err, company.ErrNameTaken):
		Conflict(w, "Company name is already taken")
	case errors.Is(err, company.ErrUnauthorized):
		Forbidden(w, "You are not allowed to manage this company")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")

	// Hardware domain errors
	case errors.Is(err, hardware.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, hardware.ErrDeviceUIDExists):
		Conflict(w, "Device uid already registered")
	case errors.Is(err, hardware.ErrNotAssigned):
		Forbidden(w, "Device is not assigned to your company")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
