package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	LogTask(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// LogTask implements TimesheetHandler.
func (h *timesheetHandlerImpl) LogTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req timesheet.LogTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("LogTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	task, err := h.timesheetService.LogTask(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task logged successfully", task)
}

// GetDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	employeeID, ok := employeeIDQuery(w, r)
	if !ok {
		return
	}

	day, err := h.timesheetService.GetDay(r.Context(), actor, employeeID, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// GetRange implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	employeeID, ok := employeeIDQuery(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	totals, err := h.timesheetService.GetRange(r.Context(), actor, employeeID, q.Get("from"), q.Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, totals)
}

// DeleteTask implements TimesheetHandler.
func (h *timesheetHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	taskID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.timesheetService.DeleteTask(r.Context(), actor, taskID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}
