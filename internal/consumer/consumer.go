// Package consumer implements the price-elastic demand agent that extracts
// goods from the market.
package consumer

import (
	"math"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/market"
)

// Consumer pulls goods from the market's cheapest offers, up to an elastic
// demand target. It owns no inventory and no wallet; its spending is an
// external money source from the factories' point of view. The only state
// persisted across ticks is the fulfilment ratio.
type Consumer struct {
	target      economy.WareAmount
	targetPrice economy.Money
	fulfilment  float64 // rolling satisfaction in [0, 1]
	decay       float64 // how quickly fulfilment recovers toward 1
}

// New creates a consumer wanting the target amount per tick at the given
// reference price. Fulfilment starts at 1 (fully satisfied).
func New(target economy.WareAmount, targetPrice economy.Money, decay float64) *Consumer {
	return &Consumer{
		target:      target,
		targetPrice: targetPrice,
		fulfilment:  1.0,
		decay:       decay,
	}
}

// TargetWare returns the commodity this consumer demands.
func (c *Consumer) TargetWare() economy.Ware {
	return c.target.Ware
}

// Fulfilment returns the rolling satisfaction ratio.
func (c *Consumer) Fulfilment() float64 {
	return c.fulfilment
}

// Consume runs one tick of consumption. Recent under-fulfilment scales the
// raw target up (dampened, so one bad tick does not cause runaway
// overbuying); demand then contracts as the current price rises above the
// reference price with square-root elasticity. Each market call takes only
// the single cheapest offer, so the price and the elasticity are recomputed
// between calls.
func (c *Consumer) Consume(m *market.Market) {
	raw := float64(c.target.Amount)
	if raw == 0 {
		return
	}

	adjustment := c.fulfilment
	if c.fulfilment < 1.0 {
		adjustment = c.fulfilment*0.5 + 0.5
	}
	demand := raw / adjustment
	overDemand := demand - raw

	for demand > 0 {
		price, ok := m.CurrentPrice(c.target.Ware)
		if !ok {
			break
		}
		elasticity := math.Sqrt(float64(price) / float64(c.targetPrice))

		var quantity uint64
		if elasticity > 0 {
			quantity = uint64(math.Round(demand / elasticity))
		} else {
			quantity = uint64(math.Round(demand)) // free goods
		}
		if quantity == 0 {
			break
		}

		consumed := m.ConsumeAtCurrentPrice(economy.NewWareAmount(c.target.Ware, quantity))
		if consumed == 0 {
			break
		}
		demand -= elasticity * float64(consumed)
	}

	// Shortfall is measured against the raw target: failing to fill the
	// over-demand bonus does not count.
	unfulfilled := demand - overDemand
	if unfulfilled < 0 {
		unfulfilled = 0
	}
	ratio := unfulfilled / raw
	if ratio > 1 {
		ratio = 1
	}

	c.fulfilment -= (1 - c.decay) * ratio
	c.fulfilment += (1 - c.decay) * (1 - c.fulfilment)
	if c.fulfilment < 0 {
		c.fulfilment = 0
	}
	if c.fulfilment > 1 {
		c.fulfilment = 1
	}
}
