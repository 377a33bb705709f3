package leave

import "context"

type LeaveService interface {
	// CreateRequest files a PENDING leave request after date and type
	// validation. No ledger effect until approval.
	CreateRequest(ctx context.Context, req CreateRequestRequest) (*RequestResponse, error)
	// ValidateRequest previews the ledger effect of a would-be request.
	ValidateRequest(ctx context.Context, req ValidateRequest) (*ValidationResponse, error)
	// Approve transitions PENDING to APPROVED and applies the ledger
	// deduction, persisting the receipt on the request.
	Approve(ctx context.Context, actor Actor, req ApproveRequest) (*RequestResponse, error)
	// Reject transitions PENDING to REJECTED. No ledger effect.
	Reject(ctx context.Context, actor Actor, req RejectRequest) (*RequestResponse, error)
	// Cancel transitions PENDING or APPROVED to CANCELLED. Cancelling
	// an approved request reverses its recorded deduction exactly.
	Cancel(ctx context.Context, actor Actor, requestID string) (*RequestResponse, error)
	Balance(ctx context.Context, employeeID, companyID string) (*BalanceResponse, error)
	MyRequests(ctx context.Context, employeeID string) ([]RequestResponse, error)
	PendingApprovals(ctx context.Context, actor Actor) ([]RequestResponse, error)
}
