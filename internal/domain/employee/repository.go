package employee

import (
	"context"
)

// EmployeeRepository is read-only from the attendance engine's point of
// view; employee records are written by the HR admin application.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetByUserID resolves the employee behind an authenticated user.
	GetByUserID(ctx context.Context, userID string, companyID string) (Employee, error)

	// ListActiveByCompany returns all active employees, used by the
	// batch reconcilers.
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns the distinct companies with active employees.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
