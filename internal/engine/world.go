// Package engine ties the economy together and advances it in fixed ticks.
package engine

import (
	"log/slog"

	"github.com/ISibboI/economy-sim/internal/consumer"
	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/factory"
	"github.com/ISibboI/economy-sim/internal/market"
)

// Observer gets read access to the world at fixed points of the run: once
// before the very first tick and once after every tick. Collect order follows
// registration order; Finalise runs once after the run ends and is
// order-insensitive.
type Observer interface {
	Collect(w *World)
	Finalise() error
}

// World owns all factories, consumers, the market, and the simulation clock.
// Factories are addressed by handles that stay valid for the whole run:
// removed slots leave a gap and are never reused, so the market's
// pending-credit ledger can never pay the wrong factory.
type World struct {
	factories []*factory.Factory // nil = removed slot
	consumers []*consumer.Consumer
	market    *market.Market
	hours     uint64

	observers        []Observer
	initialCollected bool
}

// NewWorld creates a world from its initial population. Factory handles are
// issued in the order given.
func NewWorld(factories []*factory.Factory, consumers []*consumer.Consumer, observers []Observer) *World {
	return &World{
		factories: append([]*factory.Factory(nil), factories...),
		consumers: append([]*consumer.Consumer(nil), consumers...),
		market:    market.New(),
		observers: observers,
	}
}

// AddFactory registers a factory and returns its permanent handle.
func (w *World) AddFactory(f *factory.Factory) economy.FactoryID {
	w.factories = append(w.factories, f)
	return economy.FactoryID(len(w.factories) - 1)
}

// RemoveFactory tombstones a slot. The handle is never reissued.
func (w *World) RemoveFactory(id economy.FactoryID) {
	w.factories[id] = nil
}

// Factory returns the factory behind a handle, nil if removed.
func (w *World) Factory(id economy.FactoryID) *factory.Factory {
	return w.factories[id]
}

// ForEachFactory visits live factories in handle order.
func (w *World) ForEachFactory(visit func(id economy.FactoryID, f *factory.Factory)) {
	for i, f := range w.factories {
		if f != nil {
			visit(economy.FactoryID(i), f)
		}
	}
}

// Consumers returns the consumer list in registration order.
func (w *World) Consumers() []*consumer.Consumer {
	return w.consumers
}

// Market returns the shared clearing venue.
func (w *World) Market() *market.Market {
	return w.market
}

// Hours returns the number of ticks processed so far.
func (w *World) Hours() uint64 {
	return w.hours
}

// AdvanceHour runs one tick. The phase order is fixed: produce, reuse and
// offer outputs, sort the book, buy inputs, consume, settle, observe.
// Factories act in handle order and consumers in registration order; the only
// randomness in a tick is the equal-price offer tie-break drawn from rng.
func (w *World) AdvanceHour(rng market.ShuffleSource) {
	if !w.initialCollected {
		w.collect()
		w.initialCollected = true
	}

	w.hours++

	w.ForEachFactory(func(_ economy.FactoryID, f *factory.Factory) {
		f.ProduceOneHour()
	})

	w.ForEachFactory(func(id economy.FactoryID, f *factory.Factory) {
		f.ReuseInputs()
		f.OfferOutputs(w.market, id)
	})

	w.market.SortOffers(rng)

	w.ForEachFactory(func(_ economy.FactoryID, f *factory.Factory) {
		f.BuyInputs(w.market)
	})

	for _, c := range w.consumers {
		c.Consume(w.market)
	}

	w.ForEachFactory(func(id economy.FactoryID, f *factory.Factory) {
		f.CollectMoney(w.market, id)
	})

	w.collect()
	slog.Debug("hour advanced", "hour", w.hours)
}

// AdvanceTime runs the given number of ticks.
func (w *World) AdvanceTime(hours uint64, rng market.ShuffleSource) {
	for i := uint64(0); i < hours; i++ {
		w.AdvanceHour(rng)
	}
}

func (w *World) collect() {
	for _, obs := range w.observers {
		obs.Collect(w)
	}
}

// FinaliseStatistics runs every observer's finalisation. The world is not
// mutated afterwards. The first error is returned but all observers run.
func (w *World) FinaliseStatistics() error {
	var firstErr error
	for _, obs := range w.observers {
		if err := obs.Finalise(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
