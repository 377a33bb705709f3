package leave

import (
	"context"
	"time"
)

type BalanceRepository interface {
	// Get returns nil when the employee has no balance row yet.
	Get(ctx context.Context, employeeID string) (*Balance, error)
	// GetOrCreateForUpdate locks the employee's balance row, creating a
	// zeroed one first if missing. Must run inside a transaction.
	GetOrCreateForUpdate(ctx context.Context, employeeID, companyID string) (*Balance, error)
	Update(ctx context.Context, balance *Balance) error
	ListByCompany(ctx context.Context, companyID string) ([]Balance, error)
}

type RequestRepository interface {
	Create(ctx context.Context, request *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	// GetByIDForUpdate locks the request row for a status transition.
	GetByIDForUpdate(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, request *Request) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListPendingByManager(ctx context.Context, managerID string) ([]Request, error)
	// ListApprovedOnDate returns approved requests whose range covers
	// the given date, for the day-sync reconciler.
	ListApprovedOnDate(ctx context.Context, companyID string, date time.Time) ([]Request, error)
}
