package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListEmployeeRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveRequest, err := l.leaveService.SubmitRequest(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leaveRequest)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	requestID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	leaveRequest, err := l.leaveService.GetRequest(r.Context(), actor, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveRequest)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	l.listRequests(w, r, "")
}

// ListEmployeeRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeID")
	if !ok {
		return
	}
	l.listRequests(w, r, employeeID)
}

func (l *LeaveHandlerImpl) listRequests(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := leave.RequestFilterQuery{
		Status: q.Get("status"),
		Month:  q.Get("month"),
		Search: q.Get("search"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}

	result, err := l.leaveService.ListRequests(r.Context(), actor, employeeID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPendingRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	pending, err := l.leaveService.ListPendingRequests(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.ApproveRequest, "Leave request approved successfully")
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.RejectRequest, "Leave request rejected successfully")
}

type decideFunc func(ctx context.Context, actor user.Actor, requestID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error)

func (l *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn decideFunc, message string) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	requestID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req leave.DecideLeaveRequestRequest
	// an empty body is fine for approvals
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := fn(r.Context(), actor, requestID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, decided)
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	l.getBalance(w, r, "")
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeID")
	if !ok {
		return
	}
	l.getBalance(w, r, employeeID)
}

func (l *LeaveHandlerImpl) getBalance(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	balance, err := l.leaveService.GetBalance(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
