package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
)

// ResolutionSource records how the effective shift was found.
type ResolutionSource string

const (
	SourceAssigned       ResolutionSource = "assigned"
	SourceLegacyName     ResolutionSource = "legacy_name"
	SourceCompanyDefault ResolutionSource = "company_default"
	SourceUnconfigured   ResolutionSource = "unconfigured"
)

// Resolution is the result of resolving an employee's effective shift.
// Callers must check Configured before using Shift; an unconfigured
// employee skips lateness evaluation entirely.
type Resolution struct {
	Shift  ShiftSchedule
	Source ResolutionSource
}

func (r Resolution) Configured() bool {
	return r.Source != SourceUnconfigured
}

// Resolver finds the effective shift for an employee: the assigned
// shift, else a legacy lookup by name, else the company default.
type Resolver struct {
	repo ShiftRepository
}

func NewResolver(repo ShiftRepository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, emp employee.Employee) (Resolution, error) {
	if emp.AssignedShiftID != nil && *emp.AssignedShiftID != "" {
		sh, err := r.repo.GetByID(ctx, *emp.AssignedShiftID, emp.CompanyID)
		if err == nil {
			return Resolution{Shift: sh, Source: SourceAssigned}, nil
		}
		if !errors.Is(err, ErrShiftNotFound) {
			return Resolution{}, fmt.Errorf("failed to get assigned shift: %w", err)
		}
	}

	if emp.ShiftName != nil && *emp.ShiftName != "" {
		sh, err := r.repo.GetByName(ctx, emp.CompanyID, *emp.ShiftName)
		if err == nil {
			return Resolution{Shift: sh, Source: SourceLegacyName}, nil
		}
		if !errors.Is(err, ErrShiftNotFound) {
			return Resolution{}, fmt.Errorf("failed to get shift by name: %w", err)
		}
	}

	sh, err := r.repo.GetCompanyDefault(ctx, emp.CompanyID)
	if err == nil {
		return Resolution{Shift: sh, Source: SourceCompanyDefault}, nil
	}
	if !errors.Is(err, ErrShiftNotFound) {
		return Resolution{}, fmt.Errorf("failed to get company default shift: %w", err)
	}

	return Resolution{Source: SourceUnconfigured}, nil
}
