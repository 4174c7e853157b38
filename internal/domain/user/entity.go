package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Platform owner - manages companies and hardware
	RoleAdmin      Role = "admin"       // Company admin - staff, settings, control center
	RoleEmployee   Role = "employee"    // Regular employee
)

type User struct {
	ID              string
	CompanyID       *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsSuperAdmin checks if the user runs the platform.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsAdmin checks if the user manages a company.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageCompany checks if the user can change company settings.
func (u *User) CanManageCompany() bool {
	return u.IsAdmin()
}
