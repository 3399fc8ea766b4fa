package services

import (
	"errors"
	"fmt"
)

// ErrNothingToDistribute marks a distribution no-op: zero floors or a
// non-positive total. Informational, not a failure.
var ErrNothingToDistribute = errors.New("nothing to distribute")

// AllocationField names the editable fields of a floor allocation.
type AllocationField string

const (
	FieldQuantity AllocationField = "quantity"
	FieldWastage  AllocationField = "wastage"
)

// DistributeQuantity spreads total evenly across floors: every floor gets
// total/n and the first total%n floors get one extra, so the shares sum
// exactly to total and differ from each other by at most 1.
func DistributeQuantity(total int64, floors []FloorAllocation) error {
	return distribute(total, floors, FieldQuantity)
}

// DistributeWastage spreads total across floors with the same scheme as
// DistributeQuantity, independently of the quantity column.
func DistributeWastage(total int64, floors []FloorAllocation) error {
	return distribute(total, floors, FieldWastage)
}

// DistributeBoth distributes quantity and wastage in one pass with
// independent remainders. Each total with nothing to spread leaves its
// column untouched; if neither applies, ErrNothingToDistribute is returned.
func DistributeBoth(quantity, wastage int64, floors []FloorAllocation) error {
	qErr := distribute(quantity, floors, FieldQuantity)
	wErr := distribute(wastage, floors, FieldWastage)
	if qErr != nil && wErr != nil {
		return ErrNothingToDistribute
	}
	return nil
}

func distribute(total int64, floors []FloorAllocation, field AllocationField) error {
	n := int64(len(floors))
	if n == 0 || total <= 0 {
		return ErrNothingToDistribute
	}

	base := total / n
	remainder := total % n

	for i := range floors {
		share := base
		if int64(i) < remainder {
			share++
		}
		switch field {
		case FieldQuantity:
			floors[i].Quantity = share
		case FieldWastage:
			floors[i].Wastage = share
		}
	}
	return nil
}

// ClearAllocations zeroes quantity and wastage on every floor.
func ClearAllocations(floors []FloorAllocation) {
	for i := range floors {
		floors[i].Quantity = 0
		floors[i].Wastage = 0
	}
}

// ManualEdit overwrites one floor's quantity or wastage. Other floors are
// not re-normalized; the pending delta shows the divergence until commit.
func ManualEdit(floors []FloorAllocation, index int, field AllocationField, value int64) error {
	if index < 0 || index >= len(floors) {
		return fmt.Errorf("floor index %d out of range", index)
	}
	switch field {
	case FieldQuantity:
		floors[index].Quantity = value
	case FieldWastage:
		floors[index].Wastage = value
	default:
		return fmt.Errorf("unknown allocation field %q", field)
	}
	return nil
}

// ComputeTotals sums the per-floor quantity and wastage columns.
func ComputeTotals(floors []FloorAllocation) (quantityTotal, wastageTotal int64) {
	for _, f := range floors {
		quantityTotal += f.Quantity
		wastageTotal += f.Wastage
	}
	return quantityTotal, wastageTotal
}

// PendingDelta is the difference between the floor totals being edited and
// the row's current committed values, shown before commit.
func PendingDelta(row ServiceRow, floors []FloorAllocation) (quantityDelta, wastageDelta int64) {
	qt, wt := ComputeTotals(floors)
	return qt - row.Quantity, wt - row.Wastage
}

// Commit writes a floor-editing session back into the row: the row's
// quantity and wastage become the floor sums and the breakdown replaces any
// previous one. This is the only path by which floor edits reach the ledger.
func Commit(row *ServiceRow, floors []FloorAllocation) {
	qt, wt := ComputeTotals(floors)
	row.Quantity = qt
	row.Wastage = wt
	row.Floors = append([]FloorAllocation(nil), floors...)
}

// OpenForRow returns the allocations a floor-editing dialog starts from:
// the row's saved breakdown when it has one, otherwise a working copy of the
// freshly fetched floors. The returned slice is always a copy, so dialog
// edits never leak into the row before Commit.
func OpenForRow(row ServiceRow, fresh []FloorAllocation) []FloorAllocation {
	if len(row.Floors) > 0 {
		return append([]FloorAllocation(nil), row.Floors...)
	}
	return append([]FloorAllocation(nil), fresh...)
}
