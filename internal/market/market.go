// Package market implements the shared order-matching venue: a per-commodity
// book of sell offers, price discovery over the sorted book, and a ledger of
// money owed back to selling factories.
package market

import (
	"fmt"
	"sort"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/warehouse"
)

// ShuffleSource produces a uniformly random in-place permutation.
// *math/rand.Rand satisfies it; seeding is the caller's concern.
type ShuffleSource interface {
	Shuffle(n int, swap func(i, j int))
}

// Offer is an open sell order resting in the book.
type Offer struct {
	Source       economy.FactoryID
	Amount       uint64
	PricePerItem economy.Money
}

type offerList struct {
	// Once sorted, offers are ordered by price descending with the cheapest
	// offer at the tail, so "buy cheapest first" pops from the end.
	offers []Offer
	sorted bool
}

// Market is the clearing venue shared by all factories and consumers.
type Market struct {
	books          map[economy.Ware]*offerList
	pendingCredits map[economy.FactoryID][]economy.Money
}

// New creates an empty market.
func New() *Market {
	return &Market{
		books:          make(map[economy.Ware]*offerList),
		pendingCredits: make(map[economy.FactoryID][]economy.Money),
	}
}

// Offer registers a sell offer. The ware's book loses its sorted state until
// the next SortOffers.
func (m *Market) Offer(ware economy.Ware, amount uint64, pricePerItem economy.Money, source economy.FactoryID) {
	if amount == 0 {
		return
	}
	book, ok := m.books[ware]
	if !ok {
		book = &offerList{}
		m.books[ware] = book
	}
	book.offers = append(book.offers, Offer{Source: source, Amount: amount, PricePerItem: pricePerItem})
	book.sorted = false
}

// SortOffers shuffles every ware's offers and then stably sorts them by price
// descending. The shuffle is mandatory: a stable sort alone would clear
// equal-price offers in insertion order, structurally favoring
// earlier-registered factories. Shuffling first turns the stable sort's
// insertion-order bias into a uniformly random tie-break.
func (m *Market) SortOffers(rng ShuffleSource) {
	for _, ware := range economy.AllWares() {
		book, ok := m.books[ware]
		if !ok {
			continue
		}
		rng.Shuffle(len(book.offers), func(i, j int) {
			book.offers[i], book.offers[j] = book.offers[j], book.offers[i]
		})
		sort.SliceStable(book.offers, func(i, j int) bool {
			return book.offers[i].PricePerItem > book.offers[j].PricePerItem
		})
		book.sorted = true
	}
}

func (m *Market) sortedBook(ware economy.Ware) *offerList {
	book, ok := m.books[ware]
	if !ok {
		return nil
	}
	if !book.sorted {
		panic(fmt.Sprintf("market: book for %v queried before SortOffers", ware))
	}
	return book
}

// CurrentPrice returns the cheapest offered price for a ware.
// The second return is false when no offers exist.
func (m *Market) CurrentPrice(ware economy.Ware) (economy.Money, bool) {
	book := m.sortedBook(ware)
	if book == nil || len(book.offers) == 0 {
		return 0, false
	}
	return book.offers[len(book.offers)-1].PricePerItem, true
}

// TotalPrice simulates buying the given quantity at current book state
// without mutating it, walking offers cheapest-first. It returns the
// quantity actually fulfillable (capped by available liquidity) and its
// exact cost. Used for planning, never for execution.
func (m *Market) TotalPrice(wa economy.WareAmount) (uint64, economy.Money) {
	book := m.sortedBook(wa.Ware)
	if book == nil {
		return 0, 0
	}
	remaining := wa.Amount
	var fulfillable uint64
	var cost economy.Money
	for i := len(book.offers) - 1; i >= 0 && remaining > 0; i-- {
		offer := book.offers[i]
		take := offer.Amount
		if take > remaining {
			take = remaining
		}
		cost = cost.Add(offer.PricePerItem.Mul(take))
		fulfillable += take
		remaining -= take
	}
	return fulfillable, cost
}

// Buy executes a real purchase, consuming offers cheapest-first. Each step is
// capped by the remaining request, the offer's remainder, and what the
// payer's balance still affords at that offer's price, so the payer can never
// go negative. Every unit of money paid is queued as a pending credit to the
// selling factory. The purchased goods are deposited into dest at their
// weighted average purchase cost. Returns the quantity actually bought.
func (m *Market) Buy(wa economy.WareAmount, dest *warehouse.Warehouse, balance *economy.Money) uint64 {
	book := m.sortedBook(wa.Ware)
	if book == nil {
		return 0
	}
	remaining := wa.Amount
	var bought uint64
	var paid economy.Money
	for remaining > 0 && len(book.offers) > 0 {
		tail := len(book.offers) - 1
		offer := &book.offers[tail]

		take := remaining
		if offer.Amount < take {
			take = offer.Amount
		}
		if offer.PricePerItem > 0 {
			affordable := uint64(*balance / offer.PricePerItem)
			if affordable < take {
				take = affordable
			}
		}
		if take == 0 {
			break // out of money; cheaper offers do not exist
		}

		price := offer.PricePerItem.Mul(take)
		*balance = balance.Sub(price)
		paid = paid.Add(price)
		m.pendingCredits[offer.Source] = append(m.pendingCredits[offer.Source], price)

		offer.Amount -= take
		if offer.Amount == 0 {
			book.offers = book.offers[:tail]
		}
		bought += take
		remaining -= take
	}
	if bought > 0 {
		dest.Insert(economy.NewWareAmount(wa.Ware, bought), paid.Approximate().Div(bought))
	}
	return bought
}

// ConsumeAtCurrentPrice takes goods from the single cheapest offer only,
// capped by that offer's remainder and the requested quantity, with no budget
// constraint. The seller is credited as in Buy; the buyer's money comes from
// outside the modeled economy. Callers that want more than one offer's worth
// reissue the call after recomputing their demand at the new cheapest price.
func (m *Market) ConsumeAtCurrentPrice(wa economy.WareAmount) uint64 {
	book := m.sortedBook(wa.Ware)
	if book == nil || len(book.offers) == 0 || wa.Amount == 0 {
		return 0
	}
	tail := len(book.offers) - 1
	offer := &book.offers[tail]

	take := wa.Amount
	if offer.Amount < take {
		take = offer.Amount
	}
	m.pendingCredits[offer.Source] = append(m.pendingCredits[offer.Source], offer.PricePerItem.Mul(take))

	offer.Amount -= take
	if offer.Amount == 0 {
		book.offers = book.offers[:tail]
	}
	return take
}

// TransferMoney drains all pending credits owed to a factory into its
// balance. A no-op for factories with nothing pending.
func (m *Market) TransferMoney(balance *economy.Money, id economy.FactoryID) {
	for _, credit := range m.pendingCredits[id] {
		*balance = balance.Add(credit)
	}
	delete(m.pendingCredits, id)
}

// PendingCredits sums the not-yet-transferred proceeds of a factory.
func (m *Market) PendingCredits(id economy.FactoryID) economy.Money {
	var total economy.Money
	for _, credit := range m.pendingCredits[id] {
		total = total.Add(credit)
	}
	return total
}

// OfferedAmount returns the total quantity currently offered for a ware.
// Unlike the price queries it is valid on an unsorted book.
func (m *Market) OfferedAmount(ware economy.Ware) uint64 {
	book, ok := m.books[ware]
	if !ok {
		return 0
	}
	var total uint64
	for _, offer := range book.offers {
		total += offer.Amount
	}
	return total
}
