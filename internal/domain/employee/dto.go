package employee

import (
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Department   string  `json:"department"`
	JoinDate     string  `json:"join_date,omitempty"`

	// Parsed by Validate; defaults to today when JoinDate is empty
	Joined *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if len(r.EmployeeCode) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must not exceed 50 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or employee",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.JoinDate != "" {
		if d, ok := validator.IsValidDate(r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		} else {
			r.Joined = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateProfileRequest carries the fields an employee may edit on their own profile.
type UpdateProfileRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil {
		if validator.IsEmpty(*r.FullName) {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not be empty",
			})
		}
		if len(*r.FullName) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "full_name",
				Message: "full_name must not exceed 255 characters",
			})
		}
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if r.Address != nil && len(*r.Address) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address must not exceed 500 characters",
		})
	}

	if r.EmergencyContact != nil && len(*r.EmergencyContact) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_contact",
			Message: "emergency_contact must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	Department       string  `json:"department"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	JoinDate         string  `json:"join_date"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		Department:       e.Department,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		JoinDate:         e.JoinDate.Format(validator.DateLayout),
	}
}
