package shift

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
)

type fakeShiftRepo struct {
	byID           map[string]ShiftSchedule
	byName         map[string]ShiftSchedule
	companyDefault *ShiftSchedule
	err            error
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (ShiftSchedule, error) {
	if f.err != nil {
		return ShiftSchedule{}, f.err
	}
	if sh, ok := f.byID[id]; ok {
		return sh, nil
	}
	return ShiftSchedule{}, ErrShiftNotFound
}

func (f *fakeShiftRepo) GetByName(ctx context.Context, companyID string, name string) (ShiftSchedule, error) {
	if f.err != nil {
		return ShiftSchedule{}, f.err
	}
	if sh, ok := f.byName[name]; ok {
		return sh, nil
	}
	return ShiftSchedule{}, ErrShiftNotFound
}

func (f *fakeShiftRepo) GetCompanyDefault(ctx context.Context, companyID string) (ShiftSchedule, error) {
	if f.err != nil {
		return ShiftSchedule{}, f.err
	}
	if f.companyDefault != nil {
		return *f.companyDefault, nil
	}
	return ShiftSchedule{}, ErrShiftNotFound
}

func strPtr(s string) *string { return &s }

func TestResolverPrefersAssignedShift(t *testing.T) {
	repo := &fakeShiftRepo{
		byID:   map[string]ShiftSchedule{"shift-1": {ID: "shift-1", Name: "General"}},
		byName: map[string]ShiftSchedule{"night": {ID: "shift-2", Name: "Night"}},
	}
	r := NewResolver(repo)

	res, err := r.Resolve(context.Background(), employee.Employee{
		AssignedShiftID: strPtr("shift-1"),
		ShiftName:       strPtr("night"),
	})
	require.NoError(t, err)
	assert.Equal(t, SourceAssigned, res.Source)
	assert.Equal(t, "shift-1", res.Shift.ID)
	assert.True(t, res.Configured())
}

func TestResolverFallsBackToLegacyName(t *testing.T) {
	repo := &fakeShiftRepo{
		byName: map[string]ShiftSchedule{"night": {ID: "shift-2", Name: "Night"}},
	}
	r := NewResolver(repo)

	res, err := r.Resolve(context.Background(), employee.Employee{
		AssignedShiftID: strPtr("missing"),
		ShiftName:       strPtr("night"),
	})
	require.NoError(t, err)
	assert.Equal(t, SourceLegacyName, res.Source)
	assert.Equal(t, "shift-2", res.Shift.ID)
}

func TestResolverFallsBackToCompanyDefault(t *testing.T) {
	repo := &fakeShiftRepo{
		companyDefault: &ShiftSchedule{ID: "shift-3", Name: "Default"},
	}
	r := NewResolver(repo)

	res, err := r.Resolve(context.Background(), employee.Employee{})
	require.NoError(t, err)
	assert.Equal(t, SourceCompanyDefault, res.Source)
	assert.Equal(t, "shift-3", res.Shift.ID)
}

func TestResolverUnconfigured(t *testing.T) {
	r := NewResolver(&fakeShiftRepo{})

	res, err := r.Resolve(context.Background(), employee.Employee{})
	require.NoError(t, err)
	assert.Equal(t, SourceUnconfigured, res.Source)
	assert.False(t, res.Configured())
}

func TestResolverPropagatesRepositoryErrors(t *testing.T) {
	repoErr := errors.New("connection reset")
	r := NewResolver(&fakeShiftRepo{err: repoErr})

	_, err := r.Resolve(context.Background(), employee.Employee{AssignedShiftID: strPtr("shift-1")})
	assert.ErrorIs(t, err, repoErr)
}
