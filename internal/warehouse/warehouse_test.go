package warehouse

import (
	"math"
	"testing"

	"github.com/ISibboI/economy-sim/internal/economy"
)

func TestFullRemovalWeightedAverage(t *testing.T) {
	w := New()
	w.Insert(economy.NewWareAmount(economy.WareApple, 10), 1)
	w.Insert(economy.NewWareAmount(economy.WareApple, 30), 2)
	w.Insert(economy.NewWareAmount(economy.WareApple, 60), 5)

	avg := w.Remove(economy.NewWareAmount(economy.WareApple, 100))
	want := (10.0*1 + 30*2 + 60*5) / 100.0
	if math.Abs(float64(avg)-want) > 1e-9 {
		t.Fatalf("weighted average got %v want %v", avg, want)
	}
	if !w.IsEmpty() {
		t.Fatal("warehouse should be empty after full removal")
	}
}

func TestPartialRemovalIsFIFO(t *testing.T) {
	w := New()
	w.Insert(economy.NewWareAmount(economy.WareWater, 5), 1)
	w.Insert(economy.NewWareAmount(economy.WareWater, 5), 9)

	// First removal spans the whole first batch and 2 items of the second.
	first := w.Remove(economy.NewWareAmount(economy.WareWater, 7))
	wantFirst := (5.0*1 + 2*9) / 7.0
	if math.Abs(float64(first)-wantFirst) > 1e-9 {
		t.Fatalf("first removal got %v want %v", first, wantFirst)
	}

	// The remainder must consist purely of the last-inserted batch.
	second := w.Remove(economy.NewWareAmount(economy.WareWater, 3))
	if second != 9 {
		t.Fatalf("second removal got %v want 9", second)
	}
}

func TestRemoveMoreThanStoredPanics(t *testing.T) {
	w := New()
	w.Insert(economy.NewWareAmount(economy.WareSeed, 2), 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on over-removal")
		}
	}()
	w.Remove(economy.NewWareAmount(economy.WareSeed, 3))
}

func TestWareAmountLookup(t *testing.T) {
	w := New()
	if got := w.WareAmount(economy.WareApple).Amount; got != 0 {
		t.Fatalf("empty warehouse reported %d", got)
	}
	w.Insert(economy.NewWareAmount(economy.WareApple, 4), 1)
	w.Insert(economy.NewWareAmount(economy.WareApple, 6), 2)
	if got := w.WareAmount(economy.WareApple).Amount; got != 10 {
		t.Fatalf("total got %d want 10", got)
	}
}

func TestZeroAmountOperationsAreNoOps(t *testing.T) {
	w := New()
	w.Insert(economy.NewWareAmount(economy.WareApple, 0), 3)
	if !w.IsEmpty() {
		t.Fatal("zero insert created an entry")
	}
	if cost := w.Remove(economy.NewWareAmount(economy.WareApple, 0)); cost != 0 {
		t.Fatalf("zero removal cost got %v", cost)
	}
}

func TestDrainEmptiesAndTagsBatches(t *testing.T) {
	w := New()
	w.Insert(economy.NewWareAmount(economy.WareSeed, 3), 2)
	w.Insert(economy.NewWareAmount(economy.WareWater, 5), 1)
	w.Insert(economy.NewWareAmount(economy.WareSeed, 4), 7)

	drained := w.Drain()
	if !w.IsEmpty() {
		t.Fatal("warehouse not empty after drain")
	}
	// Canonical ware order, batches oldest-first within a ware.
	want := []WareBatch{
		{Ware: economy.WareWater, Batch: Batch{Amount: 5, CostPerItem: 1}},
		{Ware: economy.WareSeed, Batch: Batch{Amount: 3, CostPerItem: 2}},
		{Ware: economy.WareSeed, Batch: Batch{Amount: 4, CostPerItem: 7}},
	}
	if len(drained) != len(want) {
		t.Fatalf("drained %d batches want %d", len(drained), len(want))
	}
	for i, b := range drained {
		if b != want[i] {
			t.Fatalf("batch %d got %+v want %+v", i, b, want[i])
		}
	}
}
