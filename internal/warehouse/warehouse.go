// Package warehouse implements FIFO cost-layer inventory accounting.
//
// Goods enter as batches tagged with the per-item cost they were sourced at
// and leave oldest-first, so the cost attached to outgoing goods reflects the
// true historical cost of the items actually leaving. Under price volatility
// this produces smoother downstream pricing than a running average, because
// systematically cheaper old stock is depleted before newer stock.
package warehouse

import (
	"fmt"

	"github.com/ISibboI/economy-sim/internal/economy"
)

// Batch is a quantity of goods sharing one per-item sourcing cost.
type Batch struct {
	Amount      uint64
	CostPerItem economy.ApproximateMoney
}

// WareBatch is a batch tagged with its commodity, as produced by Drain.
type WareBatch struct {
	Ware economy.Ware
	Batch
}

type entry struct {
	total   uint64
	batches []Batch // oldest first
}

// Warehouse stores wares as per-commodity queues of cost-tagged batches.
// The zero value is not usable; create with New.
type Warehouse struct {
	wares map[economy.Ware]*entry
}

// New creates an empty warehouse.
func New() *Warehouse {
	return &Warehouse{wares: make(map[economy.Ware]*entry)}
}

// Insert adds goods as a new batch at the queue tail.
func (w *Warehouse) Insert(wa economy.WareAmount, costPerItem economy.ApproximateMoney) {
	if wa.Amount == 0 {
		return
	}
	e, ok := w.wares[wa.Ware]
	if !ok {
		e = &entry{}
		w.wares[wa.Ware] = e
	}
	e.total += wa.Amount
	e.batches = append(e.batches, Batch{Amount: wa.Amount, CostPerItem: costPerItem})
}

// Remove takes goods oldest-first and returns the quantity-weighted average
// cost per item of the goods removed. Removing more than is stored is a
// programming error: callers must pre-clamp to WareAmount().
func (w *Warehouse) Remove(wa economy.WareAmount) economy.ApproximateMoney {
	if wa.Amount == 0 {
		return 0
	}
	e, ok := w.wares[wa.Ware]
	if !ok || e.total < wa.Amount {
		panic(fmt.Sprintf("warehouse: removing %v but only %v stored", wa, w.WareAmount(wa.Ware)))
	}

	remaining := wa.Amount
	var totalCost economy.ApproximateMoney
	for remaining > 0 {
		head := &e.batches[0]
		take := head.Amount
		if take > remaining {
			take = remaining
		}
		totalCost += head.CostPerItem.MulCount(take)
		head.Amount -= take
		remaining -= take
		if head.Amount == 0 {
			e.batches = e.batches[1:]
		}
	}
	e.total -= wa.Amount
	if e.total == 0 {
		delete(w.wares, wa.Ware)
	}
	return totalCost.Div(wa.Amount)
}

// WareAmount returns the stored total for a commodity, zero if unknown.
func (w *Warehouse) WareAmount(ware economy.Ware) economy.WareAmount {
	if e, ok := w.wares[ware]; ok {
		return economy.NewWareAmount(ware, e.total)
	}
	return economy.NewWareAmount(ware, 0)
}

// IsEmpty reports whether no goods are stored at all.
func (w *Warehouse) IsEmpty() bool {
	return len(w.wares) == 0
}

// Drain empties the warehouse, returning every batch tagged with its ware.
// Wares come out in canonical order, batches oldest-first within a ware.
func (w *Warehouse) Drain() []WareBatch {
	var drained []WareBatch
	for _, ware := range economy.AllWares() {
		e, ok := w.wares[ware]
		if !ok {
			continue
		}
		for _, b := range e.batches {
			drained = append(drained, WareBatch{Ware: ware, Batch: b})
		}
		delete(w.wares, ware)
	}
	return drained
}
