package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

const balanceColumns = `
	id, employee_id, company_id,
	casual_allocated, casual_used,
	sick_allocated, sick_used,
	earned_allocated, earned_used,
	unpaid, updated_at
`

func scanBalance(row pgx.Row) (*leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.CompanyID,
		&b.CasualAllocated, &b.CasualUsed,
		&b.SickAllocated, &b.SickUsed,
		&b.EarnedAllocated, &b.EarnedUsed,
		&b.Unpaid, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1
	`

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// GetOrCreateForUpdate implements leave.BalanceRepository. The insert
// races are settled by the unique index on employee_id; ON CONFLICT
// keeps the existing row and the subsequent locked select wins either way.
func (r *leaveBalanceRepository) GetOrCreateForUpdate(ctx context.Context, employeeID, companyID string) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_balances (id, employee_id, company_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, uuid.New().String(), employeeID, companyID); err != nil {
		return nil, fmt.Errorf("failed to ensure leave balance row: %w", err)
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1
		FOR UPDATE
	`

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock leave balance: %w", err)
	}

	return b, nil
}

// Update implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Update(ctx context.Context, balance *leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances SET
			casual_allocated = $2, casual_used = $3,
			sick_allocated = $4, sick_used = $5,
			earned_allocated = $6, earned_used = $7,
			unpaid = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.ID,
		balance.CasualAllocated, balance.CasualUsed,
		balance.SickAllocated, balance.SickUsed,
		balance.EarnedAllocated, balance.EarnedUsed,
		balance.Unpaid,
	).Scan(&balance.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	return nil
}

// ListByCompany implements leave.BalanceRepository.
func (r *leaveBalanceRepository) ListByCompany(ctx context.Context, companyID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances
		WHERE company_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, *b)
	}

	return balances, rows.Err()
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}
