package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidRole             = errors.New("role must be admin or employee")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrEmployeeIDRequired      = errors.New("employee ID is required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
