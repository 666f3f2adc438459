package http

import (
	"net/http"

	empDashboard "github.com/cmlabs-hris/timeleave-backend-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
)

type EmployeeDashboardHandler interface {
	// GetDashboard returns the actor's hours this week, leave balance,
	// attendance this month and pending leave requests
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type employeeDashboardHandlerImpl struct {
	service empDashboard.EmployeeDashboardService
}

func NewEmployeeDashboardHandler(service empDashboard.EmployeeDashboardService) EmployeeDashboardHandler {
	return &employeeDashboardHandlerImpl{service: service}
}

// GetDashboard handles GET /dashboard/me
func (h *employeeDashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetDashboard(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
