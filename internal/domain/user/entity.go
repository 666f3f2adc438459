package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR / approver
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           string
	EmployeeID   *string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can approve requests and view company data
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor is the authenticated identity performing an operation.
// It is resolved once per request from the access token and passed down explicitly.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccessEmployee reports whether the actor may read or write records owned by employeeID.
func (a Actor) CanAccessEmployee(employeeID string) bool {
	return a.IsAdmin() || (a.EmployeeID != "" && a.EmployeeID == employeeID)
}
