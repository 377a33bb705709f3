package leave

import "fmt"

// Deduction is the receipt produced by ApplyDeduction. It records how
// the requested days split between paid allocation and the unpaid
// accumulator, so ReverseDeduction can undo exactly this deduction
// regardless of what the balance looks like later.
type Deduction struct {
	LeaveType Type
	Days      float64
	Paid      float64
	Unpaid    float64
}

// Validation is the read-only answer to "what happens if I deduct".
type Validation struct {
	Available    float64
	Shortfall    float64
	WillBeUnpaid bool
}

func (b *Balance) allocated(t Type) (float64, error) {
	switch t {
	case TypeCasual:
		return b.CasualAllocated, nil
	case TypeSick:
		return b.SickAllocated, nil
	case TypeEarned:
		return b.EarnedAllocated, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownLeaveType, t)
}

func (b *Balance) used(t Type) (float64, error) {
	switch t {
	case TypeCasual:
		return b.CasualUsed, nil
	case TypeSick:
		return b.SickUsed, nil
	case TypeEarned:
		return b.EarnedUsed, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownLeaveType, t)
}

func (b *Balance) addUsed(t Type, delta float64) {
	switch t {
	case TypeCasual:
		b.CasualUsed += delta
	case TypeSick:
		b.SickUsed += delta
	case TypeEarned:
		b.EarnedUsed += delta
	}
}

// Available reports the remaining paid allocation for a type.
func (b *Balance) Available(t Type) (float64, error) {
	alloc, err := b.allocated(t)
	if err != nil {
		return 0, err
	}
	used, _ := b.used(t)
	return alloc - used, nil
}

// ApplyDeduction consumes days from the paid allocation first and
// pushes any excess into the unpaid accumulator. It is the only write
// path for leave usage. The returned receipt must be persisted with the
// approval so a later reversal can be exact.
func (b *Balance) ApplyDeduction(t Type, days float64) (Deduction, error) {
	if days < 0 {
		return Deduction{}, fmt.Errorf("deduction days must not be negative: %v", days)
	}
	available, err := b.Available(t)
	if err != nil {
		return Deduction{}, err
	}
	if available < 0 {
		available = 0
	}

	paid := days
	if paid > available {
		paid = available
	}
	unpaid := days - paid

	b.addUsed(t, paid)
	b.Unpaid += unpaid

	return Deduction{LeaveType: t, Days: days, Paid: paid, Unpaid: unpaid}, nil
}

// ReverseDeduction undoes a prior ApplyDeduction using its receipt.
// Unpaid days come back first, then paid usage. Both sides clamp at
// zero so a reversal never drives the ledger negative even if the
// balance was edited out of band since the approval.
func (b *Balance) ReverseDeduction(d Deduction) error {
	if !d.LeaveType.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownLeaveType, d.LeaveType)
	}

	unpaidBack := d.Unpaid
	if unpaidBack > b.Unpaid {
		unpaidBack = b.Unpaid
	}
	b.Unpaid -= unpaidBack

	used, err := b.used(d.LeaveType)
	if err != nil {
		return err
	}
	paidBack := d.Paid
	if paidBack > used {
		paidBack = used
	}
	b.addUsed(d.LeaveType, -paidBack)

	return nil
}

// ValidateDeduction previews a deduction without mutating the balance.
func (b *Balance) ValidateDeduction(t Type, days float64) (Validation, error) {
	available, err := b.Available(t)
	if err != nil {
		return Validation{}, err
	}
	if available < 0 {
		available = 0
	}

	v := Validation{Available: available}
	if days > available {
		v.Shortfall = days - available
		v.WillBeUnpaid = true
	}
	return v, nil
}

// AddUnpaid records days that bypass the paid allocation entirely
// (unpaid leave requests).
func (b *Balance) AddUnpaid(days float64) {
	if days < 0 {
		return
	}
	b.Unpaid += days
}

// FixNegativeBalances repairs usage counters pushed negative or past
// their allocation by manual edits, moving any over-allocation excess
// into the unpaid accumulator. It returns the total days moved or
// clamped and is idempotent: a clean balance yields zero.
func (b *Balance) FixNegativeBalances() float64 {
	var repaired float64

	fix := func(alloc float64, used *float64) {
		if *used < 0 {
			repaired += -*used
			*used = 0
		}
		if *used > alloc {
			excess := *used - alloc
			*used = alloc
			b.Unpaid += excess
			repaired += excess
		}
	}

	fix(b.CasualAllocated, &b.CasualUsed)
	fix(b.SickAllocated, &b.SickUsed)
	fix(b.EarnedAllocated, &b.EarnedUsed)

	if b.Unpaid < 0 {
		repaired += -b.Unpaid
		b.Unpaid = 0
	}

	return repaired
}
