package employee

import "time"

type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string // e.g. "EMP01", shown on badges and in the console
	FullName     string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
