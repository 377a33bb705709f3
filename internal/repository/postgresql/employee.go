package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, user_id, company_id, full_name, manager_id,
	assigned_shift_id, shift_name, location_id, timezone,
	week_off_monday, week_off_tuesday, week_off_wednesday, week_off_thursday,
	week_off_friday, week_off_saturday, week_off_sunday,
	is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.FullName, &e.ManagerID,
		&e.AssignedShiftID, &e.ShiftName, &e.LocationID, &e.Timezone,
		&e.WeekOff.Monday, &e.WeekOff.Tuesday, &e.WeekOff.Wednesday, &e.WeekOff.Thursday,
		&e.WeekOff.Friday, &e.WeekOff.Saturday, &e.WeekOff.Sunday,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1 AND company_id = $2
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return e, nil
}

// ListActiveByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT DISTINCT company_id FROM employees WHERE is_active = TRUE`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list company ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
