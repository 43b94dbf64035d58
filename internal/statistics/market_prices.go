package statistics

import (
	"log/slog"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/engine"
)

// MarketPriceStatistics samples the cheapest offered price of every ware once
// per collection point. Wares with an empty book are skipped for that hour.
type MarketPriceStatistics struct {
	store *Store
	runID string
	rows  []MarketPriceRow
}

// NewMarketPriceStatistics creates the observer writing under the given run.
func NewMarketPriceStatistics(store *Store, runID string) *MarketPriceStatistics {
	return &MarketPriceStatistics{store: store, runID: runID}
}

// Collect samples current cheapest prices.
func (s *MarketPriceStatistics) Collect(w *engine.World) {
	hour := w.Hours()
	for _, ware := range economy.AllWares() {
		price, ok := w.Market().CurrentPrice(ware)
		if !ok {
			continue
		}
		s.rows = append(s.rows, MarketPriceRow{
			Hour:  hour,
			Ware:  ware.String(),
			Price: uint64(price),
		})
	}
}

// Finalise writes the buffered series to the store.
func (s *MarketPriceStatistics) Finalise() error {
	if err := s.store.SaveMarketPrices(s.runID, s.rows); err != nil {
		return err
	}
	slog.Info("saved market price series", "run", s.runID, "samples", len(s.rows))
	return nil
}
