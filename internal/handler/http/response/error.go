package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
)

// fieldErrors ties engine errors to the request field that caused them.
var fieldErrors = []struct {
	err   error
	field string
}{
	{leave.ErrInvalidRange, "end_date"},
	{leave.ErrUnknownCategory, "category"},
	{leave.ErrInsufficientBalance, "category"},
	{leave.ErrMissingReason, "reason"},
	{timesheet.ErrInvalidTimeRange, "end_time"},
	{timesheet.ErrInvalidClock, "start_time"},
	{attendance.ErrInvalidStatus, "status"},
	{attendance.ErrInvalidHours, "hours_worked"},
	{attendance.ErrInvalidTasks, "tasks_logged"},
	{attendance.ErrInvalidEntry, "status"},
	{auth.ErrWrongPassword, "current_password"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			BadRequest(w, fe.err.Error(), map[string]string{fe.field: err.Error()})
			return
		}
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, "This account is not linked to an employee")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request is not pending")
	case errors.Is(err, leave.ErrConcurrentUpdate):
		Conflict(w, "Leave balance changed, please retry")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already exists")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTaskNotFound):
		NotFound(w, "Timesheet task not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
