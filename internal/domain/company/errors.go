package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrCompanySuspended = errors.New("company is suspended")
	ErrNameTaken        = errors.New("company name is already taken")
	ErrUnauthorized     = errors.New("you are not allowed to manage this company")
)
