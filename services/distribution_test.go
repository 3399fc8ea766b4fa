package services

import (
	"errors"
	"testing"
)

func makeFloors(n int) []FloorAllocation {
	floors := make([]FloorAllocation, n)
	for i := range floors {
		floors[i] = FloorAllocation{FloorID: string(rune('a' + i)), Name: "Floor"}
	}
	return floors
}

func TestDistributeQuantity_SumsExactly(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		floors int
		want   []int64
	}{
		{"even split", 100, 4, []int64{25, 25, 25, 25}},
		{"remainder to first floors", 10, 3, []int64{4, 3, 3}},
		{"remainder of two", 11, 3, []int64{4, 4, 3}},
		{"fewer units than floors", 2, 5, []int64{1, 1, 0, 0, 0}},
		{"single floor", 7, 1, []int64{7}},
		{"one each", 3, 3, []int64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floors := makeFloors(tt.floors)
			if err := DistributeQuantity(tt.total, floors); err != nil {
				t.Fatalf("DistributeQuantity() error = %v", err)
			}

			var sum int64
			for i, f := range floors {
				if f.Quantity != tt.want[i] {
					t.Errorf("floor %d quantity = %d, want %d", i, f.Quantity, tt.want[i])
				}
				sum += f.Quantity
			}
			if sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}

			// Shares differ by at most one.
			var min, max int64 = floors[0].Quantity, floors[0].Quantity
			for _, f := range floors {
				if f.Quantity < min {
					min = f.Quantity
				}
				if f.Quantity > max {
					max = f.Quantity
				}
			}
			if max-min > 1 {
				t.Errorf("share spread %d exceeds 1", max-min)
			}
		})
	}
}

func TestDistribute_NoOpCases(t *testing.T) {
	if err := DistributeQuantity(100, nil); !errors.Is(err, ErrNothingToDistribute) {
		t.Errorf("no floors: got %v", err)
	}
	if err := DistributeQuantity(0, makeFloors(3)); !errors.Is(err, ErrNothingToDistribute) {
		t.Errorf("zero total: got %v", err)
	}
	if err := DistributeQuantity(-5, makeFloors(3)); !errors.Is(err, ErrNothingToDistribute) {
		t.Errorf("negative total: got %v", err)
	}

	// A no-op leaves existing allocations alone.
	floors := makeFloors(2)
	floors[0].Quantity = 9
	DistributeQuantity(0, floors)
	if floors[0].Quantity != 9 {
		t.Errorf("no-op overwrote allocation: %d", floors[0].Quantity)
	}
}

func TestDistributeBoth_IndependentColumns(t *testing.T) {
	floors := makeFloors(3)
	if err := DistributeBoth(10, 4, floors); err != nil {
		t.Fatalf("DistributeBoth() error = %v", err)
	}

	wantQty := []int64{4, 3, 3}
	wantWst := []int64{2, 1, 1}
	for i, f := range floors {
		if f.Quantity != wantQty[i] || f.Wastage != wantWst[i] {
			t.Errorf("floor %d = %d/%d, want %d/%d", i, f.Quantity, f.Wastage, wantQty[i], wantWst[i])
		}
	}
}

func TestDistributeBoth_PartialAndFullNoOp(t *testing.T) {
	floors := makeFloors(2)
	floors[0].Wastage = 5

	// Only quantity has something to spread; wastage stays untouched.
	if err := DistributeBoth(6, 0, floors); err != nil {
		t.Fatalf("DistributeBoth() error = %v", err)
	}
	if floors[0].Quantity != 3 || floors[1].Quantity != 3 {
		t.Errorf("quantity not distributed: %+v", floors)
	}
	if floors[0].Wastage != 5 {
		t.Errorf("wastage overwritten by no-op: %d", floors[0].Wastage)
	}

	if err := DistributeBoth(0, 0, floors); !errors.Is(err, ErrNothingToDistribute) {
		t.Errorf("both no-op: got %v", err)
	}
}

func TestManualEdit_DoesNotRenormalize(t *testing.T) {
	floors := makeFloors(3)
	if err := DistributeQuantity(9, floors); err != nil {
		t.Fatalf("DistributeQuantity() error = %v", err)
	}

	if err := ManualEdit(floors, 1, FieldQuantity, 10); err != nil {
		t.Fatalf("ManualEdit() error = %v", err)
	}

	if floors[0].Quantity != 3 || floors[2].Quantity != 3 {
		t.Errorf("other floors re-normalized: %+v", floors)
	}
	if floors[1].Quantity != 10 {
		t.Errorf("edit not applied: %d", floors[1].Quantity)
	}

	if err := ManualEdit(floors, 7, FieldQuantity, 1); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := ManualEdit(floors, 0, AllocationField("bogus"), 1); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestPendingDelta_TracksDivergence(t *testing.T) {
	row := ServiceRow{ID: "r", Name: "Work", Quantity: 9, Wastage: 3}
	floors := makeFloors(3)
	DistributeQuantity(9, floors)
	DistributeWastage(3, floors)

	qd, wd := PendingDelta(row, floors)
	if qd != 0 || wd != 0 {
		t.Errorf("delta after clean distribution = %d/%d, want 0/0", qd, wd)
	}

	ManualEdit(floors, 0, FieldQuantity, 6)
	qd, _ = PendingDelta(row, floors)
	if qd != 3 {
		t.Errorf("quantity delta = %d, want 3", qd)
	}
}

func TestCommit_ReconcilesRowWithFloorTotals(t *testing.T) {
	row := ServiceRow{ID: "r", Name: "Work", Quantity: 100, Wastage: 10}
	floors := makeFloors(4)
	DistributeQuantity(100, floors)
	ManualEdit(floors, 0, FieldQuantity, 40)
	DistributeWastage(10, floors)

	Commit(&row, floors)

	if row.Quantity != 115 {
		t.Errorf("row quantity = %d, want 115", row.Quantity)
	}
	if row.Wastage != 10 {
		t.Errorf("row wastage = %d, want 10", row.Wastage)
	}
	if len(row.Floors) != 4 {
		t.Fatalf("breakdown not stored: %d floors", len(row.Floors))
	}

	// The stored breakdown is a copy, not an alias of the dialog slice.
	floors[0].Quantity = 999
	if row.Floors[0].Quantity == 999 {
		t.Error("committed breakdown aliases the working slice")
	}
}

func TestOpenForRow_SavedBreakdownWins(t *testing.T) {
	fresh := makeFloors(3)

	row := ServiceRow{ID: "r", Name: "Work"}
	opened := OpenForRow(row, fresh)
	if len(opened) != 3 {
		t.Fatalf("expected fresh floors, got %d", len(opened))
	}
	opened[0].Quantity = 5
	if fresh[0].Quantity != 0 {
		t.Error("dialog edits leaked into the fresh slice")
	}

	row.Floors = []FloorAllocation{{FloorID: "a", Name: "Floor", Quantity: 7}}
	opened = OpenForRow(row, fresh)
	if len(opened) != 1 || opened[0].Quantity != 7 {
		t.Errorf("saved breakdown not used: %+v", opened)
	}
	opened[0].Quantity = 1
	if row.Floors[0].Quantity != 7 {
		t.Error("dialog edits leaked into the row before commit")
	}
}

func TestClearAllocations(t *testing.T) {
	floors := makeFloors(3)
	DistributeBoth(10, 5, floors)

	ClearAllocations(floors)

	for i, f := range floors {
		if f.Quantity != 0 || f.Wastage != 0 {
			t.Errorf("floor %d not cleared: %+v", i, f)
		}
	}
}
