package employee

import "time"

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	Email            string
	PhoneNumber      *string
	Department       string
	Address          *string
	EmergencyContact *string
	JoinDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
