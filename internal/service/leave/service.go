package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/service/accounting"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.BalanceRepository
	leave.RequestRepository
	now func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                tx,
		BalanceRepository: balanceRepo,
		RequestRepository: requestRepo,
		now:               time.Now,
	}
}

// SubmitRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) SubmitRequest(ctx context.Context, actor user.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if actor.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, user.ErrEmployeeIDRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	candidate := leave.Request{
		EmployeeID: actor.EmployeeID,
		Category:   leave.Category(strings.ToLower(strings.TrimSpace(req.Category))),
		StartDate:  req.Start,
		EndDate:    req.End,
		Reason:     strings.TrimSpace(req.Reason),
	}

	var created leave.Request
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Locking the balance row serializes submissions and decisions for this employee.
		balance, err := l.BalanceRepository.GetByEmployeeIDForUpdate(txCtx, actor.EmployeeID)
		if err != nil {
			return err
		}

		var existing []leave.Request
		if !candidate.StartDate.After(candidate.EndDate) {
			existing, err = l.RequestRepository.ListByEmployee(txCtx, actor.EmployeeID, &leave.DateRange{From: candidate.StartDate, To: candidate.EndDate})
			if err != nil {
				return fmt.Errorf("failed to load existing requests: %w", err)
			}
		}

		validated, err := accounting.ValidateRequest(candidate, balance, existing)
		if err != nil {
			return err
		}

		created, err = l.RequestRepository.Create(txCtx, validated)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request submitted", "request_id", created.ID, "employee_id", created.EmployeeID, "category", created.Category, "days", created.Days)
	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveRequest(ctx context.Context, actor user.Actor, requestID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, actor, requestID, leave.ActionApprove, req)
}

// RejectRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectRequest(ctx context.Context, actor user.Actor, requestID string, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, actor, requestID, leave.ActionReject, req)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, actor user.Actor, requestID string, action leave.Action, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin() {
		return leave.LeaveRequestResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.Request
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.RequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}
		balance, err := l.BalanceRepository.GetByEmployeeIDForUpdate(txCtx, request.EmployeeID)
		if err != nil {
			return err
		}

		var updated leave.Balance
		decided, updated, err = accounting.Decide(request, action, leave.Decision{
			Actor:  actor.UserID,
			Reason: req.Reason,
			At:     l.now().UTC(),
		}, balance)
		if err != nil {
			return err
		}

		if action == leave.ActionApprove {
			if _, err := l.BalanceRepository.Update(txCtx, updated); err != nil {
				return err
			}
		}
		return l.RequestRepository.UpdateDecision(txCtx, decided)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided", "request_id", decided.ID, "status", decided.Status, "decided_by", actor.UserID, "days", decided.Days)
	return leave.NewLeaveRequestResponse(decided), nil
}

// GetRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !actor.CanAccessEmployee(request.EmployeeID) {
		// Hide other employees' requests entirely
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return leave.NewLeaveRequestResponse(request), nil
}

// ListRequests implements leave.LeaveService. An empty employeeID means the actor's own history.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, actor user.Actor, employeeID string, query leave.RequestFilterQuery) (leave.ListLeaveRequestResponse, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	filter, window, err := query.Parse()
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, err := l.RequestRepository.ListByEmployee(ctx, employeeID, window)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	filtered := accounting.FilterRequests(requests, filter)
	resp := leave.ListLeaveRequestResponse{
		Requests: make([]leave.LeaveRequestResponse, 0, len(filtered)),
		Stats:    leave.NewRequestStatsResponse(accounting.RequestStats(requests)),
	}
	for _, r := range filtered {
		resp.Requests = append(resp.Requests, leave.NewLeaveRequestResponse(r))
	}
	return resp, nil
}

// ListPendingRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPendingRequests(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}

	requests, err := l.RequestRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.NewLeaveRequestResponse(r))
	}
	return resp, nil
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, actor user.Actor, employeeID string) (leave.BalanceResponse, error) {
	employeeID, err := resolveEmployee(actor, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.BalanceRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(balance), nil
}

func resolveEmployee(actor user.Actor, employeeID string) (string, error) {
	if employeeID == "" {
		if actor.EmployeeID == "" {
			return "", user.ErrEmployeeIDRequired
		}
		return actor.EmployeeID, nil
	}
	if !actor.CanAccessEmployee(employeeID) {
		return "", user.ErrInsufficientPermissions
	}
	return employeeID, nil
}
