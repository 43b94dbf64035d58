package statistics

import (
	"log/slog"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/engine"
	"github.com/ISibboI/economy-sim/internal/factory"
)

// FactoryMoneyStatistics samples every factory's balance once per collection
// point and persists the series at finalisation. Samples are buffered in
// memory so no IO happens inside the tick loop.
type FactoryMoneyStatistics struct {
	store *Store
	runID string
	rows  []FactoryMoneyRow
}

// NewFactoryMoneyStatistics creates the observer writing under the given run.
func NewFactoryMoneyStatistics(store *Store, runID string) *FactoryMoneyStatistics {
	return &FactoryMoneyStatistics{store: store, runID: runID}
}

// Collect samples all live factory balances.
func (s *FactoryMoneyStatistics) Collect(w *engine.World) {
	hour := w.Hours()
	w.ForEachFactory(func(id economy.FactoryID, f *factory.Factory) {
		s.rows = append(s.rows, FactoryMoneyRow{
			Hour:      hour,
			FactoryID: int(id),
			Balance:   uint64(f.Money()),
		})
	})
}

// Finalise writes the buffered series to the store.
func (s *FactoryMoneyStatistics) Finalise() error {
	if err := s.store.SaveFactoryMoney(s.runID, s.rows); err != nil {
		return err
	}
	slog.Info("saved factory money series", "run", s.runID, "samples", len(s.rows))
	return nil
}
