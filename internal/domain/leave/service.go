package leave

import (
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Request
	SubmitRequest(ctx context.Context, actor user.Actor, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveRequest(ctx context.Context, actor user.Actor, requestID string, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	RejectRequest(ctx context.Context, actor user.Actor, requestID string, req DecideLeaveRequestRequest) (LeaveRequestResponse, error)
	GetRequest(ctx context.Context, actor user.Actor, requestID string) (LeaveRequestResponse, error)
	ListRequests(ctx context.Context, actor user.Actor, employeeID string, query RequestFilterQuery) (ListLeaveRequestResponse, error)
	ListPendingRequests(ctx context.Context, actor user.Actor) ([]LeaveRequestResponse, error)
	// Balance
	GetBalance(ctx context.Context, actor user.Actor, employeeID string) (BalanceResponse, error)
}
