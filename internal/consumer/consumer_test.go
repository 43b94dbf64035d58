package consumer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/market"
)

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestEmptyMarketLowersFulfilment(t *testing.T) {
	c := New(economy.NewWareAmount(economy.WareApple, 10), 2, 0.9)
	m := market.New()
	m.SortOffers(newRng(1))

	c.Consume(m)

	if c.Fulfilment() >= 1.0 {
		t.Fatalf("fulfilment did not decrease: %v", c.Fulfilment())
	}
	if c.Fulfilment() < 0 || c.Fulfilment() > 1 {
		t.Fatalf("fulfilment out of range: %v", c.Fulfilment())
	}
	// Full shortage: 1.0 - 0.1 = 0.9, then pulled a tenth of the way back.
	if math.Abs(c.Fulfilment()-0.91) > 1e-9 {
		t.Fatalf("fulfilment got %v want 0.91", c.Fulfilment())
	}
}

func TestFullSatisfactionKeepsFulfilment(t *testing.T) {
	c := New(economy.NewWareAmount(economy.WareApple, 10), 2, 0.9)
	m := market.New()
	m.Offer(economy.WareApple, 100, 2, 0)
	m.SortOffers(newRng(1))

	c.Consume(m)

	if c.Fulfilment() != 1.0 {
		t.Fatalf("fulfilment got %v want 1.0", c.Fulfilment())
	}
	// At the reference price elasticity is 1: exactly the target is taken.
	if got := m.OfferedAmount(economy.WareApple); got != 90 {
		t.Fatalf("offers remaining %d want 90", got)
	}
}

func TestHighPriceContractsDemand(t *testing.T) {
	c := New(economy.NewWareAmount(economy.WareApple, 10), 2, 0.9)
	m := market.New()
	// Four times the reference price: demand contracts by sqrt(4) = 2.
	m.Offer(economy.WareApple, 100, 8, 0)
	m.SortOffers(newRng(1))

	c.Consume(m)

	if got := m.OfferedAmount(economy.WareApple); got != 95 {
		t.Fatalf("offers remaining %d want 95", got)
	}
	// 5 consumed at elasticity 2 covers the full demand of 10.
	if c.Fulfilment() != 1.0 {
		t.Fatalf("fulfilment got %v want 1.0", c.Fulfilment())
	}
}

func TestWalksOfferBookCheapestFirst(t *testing.T) {
	c := New(economy.NewWareAmount(economy.WareApple, 10), 2, 0.9)
	m := market.New()
	m.Offer(economy.WareApple, 4, 2, 0)
	m.Offer(economy.WareApple, 100, 2, 1)
	m.SortOffers(newRng(1))

	c.Consume(m)

	// The first call empties the 4-unit offer; follow-up calls at the
	// recomputed price take the remaining 6 from the larger offer.
	if got := m.OfferedAmount(economy.WareApple); got != 94 {
		t.Fatalf("offers remaining %d want 94", got)
	}
	if c.Fulfilment() != 1.0 {
		t.Fatalf("fulfilment got %v want 1.0", c.Fulfilment())
	}
}

func TestShortageRaisesLaterDemand(t *testing.T) {
	// Low decay reacts strongly: one empty tick leaves fulfilment at 0.75.
	c := New(economy.NewWareAmount(economy.WareApple, 10), 2, 0.5)
	empty := market.New()
	empty.SortOffers(newRng(1))
	c.Consume(empty)

	if c.Fulfilment() >= 1.0 {
		t.Fatalf("setup: fulfilment should have dropped, got %v", c.Fulfilment())
	}

	// With fulfilment below 1 the effective demand exceeds the raw target,
	// but dampened: adjustment = fulfilment/2 + 1/2.
	m := market.New()
	m.Offer(economy.WareApple, 100, 2, 0)
	m.SortOffers(newRng(1))
	c.Consume(m)

	consumed := 100 - m.OfferedAmount(economy.WareApple)
	if consumed <= 10 {
		t.Fatalf("consumed %d, expected over-buying beyond the raw target", consumed)
	}
	if consumed > 20 {
		t.Fatalf("consumed %d, over-buying should be dampened", consumed)
	}
}
