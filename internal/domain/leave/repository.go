package leave

import (
	"context"
)

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	Create(ctx context.Context, balance Balance) (Balance, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Balance, error)
	// GetByEmployeeIDForUpdate locks the row for the surrounding transaction.
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (Balance, error)
	// Update writes the counters only if the stored version still equals balance.Version,
	// and returns the balance with its new version. Returns ErrConcurrentUpdate otherwise.
	Update(ctx context.Context, balance Balance) (Balance, error)
}

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	GetByIDForUpdate(ctx context.Context, id string) (Request, error)
	// ListByEmployee returns the employee's requests, newest first. A non-nil window keeps
	// only requests overlapping it.
	ListByEmployee(ctx context.Context, employeeID string, window *DateRange) ([]Request, error)
	ListPending(ctx context.Context) ([]Request, error)
	// UpdateDecision persists status and decision fields of a request that is still pending.
	UpdateDecision(ctx context.Context, request Request) error
}
