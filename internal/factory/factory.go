package factory

import (
	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/market"
	"github.com/ISibboI/economy-sim/internal/warehouse"
)

// Factory owns an input warehouse, an output warehouse, and a money balance.
// Its balance changes only through wage payments, input purchases, and
// collection of sale proceeds, and can never go negative: production and
// purchases are pre-constrained to affordability.
type Factory struct {
	template Template
	input    *warehouse.Warehouse
	output   *warehouse.Warehouse
	money    economy.Money
}

// New creates a factory with empty warehouses and a starting balance.
func New(template Template, startingBalance economy.Money) *Factory {
	return &Factory{
		template: template,
		input:    warehouse.New(),
		output:   warehouse.New(),
		money:    startingBalance,
	}
}

// Template returns the factory's blueprint.
func (f *Factory) Template() *Template {
	return &f.template
}

// Money returns the current balance.
func (f *Factory) Money() economy.Money {
	return f.money
}

// InputWarehouse exposes the input store, mainly for seeding and inspection.
func (f *Factory) InputWarehouse() *warehouse.Warehouse {
	return f.input
}

// OutputWarehouse exposes the output store.
func (f *Factory) OutputWarehouse() *warehouse.Warehouse {
	return f.output
}

// ProduceOneHour runs production for a single simulated hour.
func (f *Factory) ProduceOneHour() uint64 {
	return f.Produce(1)
}

// Produce applies the recipe as many times as the duration, the scarcest
// input, and the affordable wages allow. Wages are incurred per whole hour of
// operation, rounded up. Zero possible applications is a silent no-op: no
// wages are paid and no inputs are consumed. Returns the applications run.
func (f *Factory) Produce(hours uint64) uint64 {
	recipe := f.template.Recipe()
	perHour := recipe.Rate().PerHour()

	// Cap by rate, then by the scarcest input.
	applications := recipe.Rate().Over(hours)
	for _, in := range recipe.Inputs() {
		required := in.Mul(applications)
		available := f.input.WareAmount(in.Ware)
		if available.Amount < required.Amount {
			applications = available.Div(in)
		}
	}

	// Cap by affordable wage-hours: running ceil(apps/perHour) hours must not
	// cost more than the balance.
	if f.template.HourlyWages() > 0 {
		affordableHours := uint64(f.money / f.template.HourlyWages())
		if maxByWages := affordableHours * perHour; applications > maxByWages {
			applications = maxByWages
		}
	}
	if applications == 0 {
		return 0
	}

	hoursOperated := (applications + perHour - 1) / perHour
	wages := f.template.HourlyWages().Mul(hoursOperated)
	f.money = f.money.Sub(wages)

	// The sourcing cost of this run is the wages plus the true historical
	// cost of the consumed inputs, spread uniformly over all output units.
	sourcing := wages.Approximate()
	for _, in := range recipe.Inputs() {
		consumed := in.Mul(applications)
		avgCost := f.input.Remove(consumed)
		sourcing += avgCost.MulCount(consumed.Amount)
	}
	perItem := sourcing.Div(recipe.OutputUnits(applications))
	for _, out := range recipe.Outputs() {
		f.output.Insert(out.Mul(applications), perItem)
	}
	return applications
}

// ReuseInputs satisfies the next hour's input shortfall from the factory's
// own output stock before it is offered externally, at the already-known
// sourcing cost. This keeps vertically-integrated goods (seed feeding back
// into seed) off the market round-trip.
func (f *Factory) ReuseInputs() {
	recipe := f.template.Recipe()
	perHour := recipe.Rate().PerHour()
	for _, in := range recipe.Inputs() {
		required := in.Amount * perHour
		have := f.input.WareAmount(in.Ware).Amount
		if have >= required {
			continue
		}
		shortfall := required - have
		if reusable := f.output.WareAmount(in.Ware).Amount; reusable < shortfall {
			shortfall = reusable
		}
		if shortfall == 0 {
			continue
		}
		moved := economy.NewWareAmount(in.Ware, shortfall)
		f.input.Insert(moved, f.output.Remove(moved))
	}
}

// OfferOutputs drains the output warehouse onto the market, pricing each
// batch at its sourcing cost rounded up to the next whole currency unit.
// A factory never knowingly sells below cost.
func (f *Factory) OfferOutputs(m *market.Market, id economy.FactoryID) {
	for _, batch := range f.output.Drain() {
		m.Offer(batch.Ware, batch.Amount, batch.CostPerItem.MoneyCeil(), id)
	}
}

// BuyInputs buys the inputs for as many production-hours as the factory can
// afford while reserving the next hour's wages. The market's per-unit cost is
// a non-decreasing step function of quantity, so total projected input cost
// is monotone in the hour target and a binary search finds the exact
// affordability boundary in logarithmic time.
func (f *Factory) BuyInputs(m *market.Market) {
	budget := economy.Money(0)
	if wages := f.template.HourlyWages(); f.money > wages {
		budget = f.money.Sub(wages)
	}
	target := f.affordableHours(m, budget)
	for _, in := range f.template.Recipe().Inputs() {
		shortfall := f.shortfallAt(in, target)
		if shortfall.Amount > 0 {
			m.Buy(shortfall, f.input, &f.money)
		}
	}
}

// shortfallAt returns how much of one input is missing for the given number
// of production-hours.
func (f *Factory) shortfallAt(in economy.WareAmount, hours uint64) economy.WareAmount {
	required := in.Amount * f.template.Recipe().Rate().PerHour() * hours
	have := f.input.WareAmount(in.Ware).Amount
	if have >= required {
		return economy.NewWareAmount(in.Ware, 0)
	}
	return economy.NewWareAmount(in.Ware, required-have)
}

// projectedCost simulates, without buying, what filling every input
// shortfall for the given hour target would cost at current book state.
func (f *Factory) projectedCost(m *market.Market, hours uint64) economy.Money {
	var cost economy.Money
	for _, in := range f.template.Recipe().Inputs() {
		if shortfall := f.shortfallAt(in, hours); shortfall.Amount > 0 {
			_, c := m.TotalPrice(shortfall)
			cost = cost.Add(c)
		}
	}
	return cost
}

// affordableHours finds the largest hour target whose projected input cost
// stays within the budget. Beyond saturationHours the cost curve is flat
// (every input shortfall already exceeds the market's liquidity), so the
// search space is [0, saturation]. The bisection alternates floor and
// ceiling midpoints between iterations so it converges to the exact boundary
// regardless of interval parity.
func (f *Factory) affordableHours(m *market.Market, budget economy.Money) uint64 {
	saturation := f.saturationHours(m)
	if f.projectedCost(m, saturation) <= budget {
		return saturation
	}

	lo, hi := uint64(0), saturation // cost(lo) <= budget < cost(hi)
	floorMid := true
	for hi-lo > 1 {
		var mid uint64
		if floorMid {
			mid = (lo + hi) / 2
		} else {
			mid = (lo + hi + 1) / 2
		}
		floorMid = !floorMid
		if f.projectedCost(m, mid) <= budget {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// saturationHours returns the smallest hour target at which every input's
// shortfall meets or exceeds the quantity offered on the market. Larger
// targets cannot change what is bought.
func (f *Factory) saturationHours(m *market.Market) uint64 {
	perHour := f.template.Recipe().Rate().PerHour()
	saturation := uint64(1)
	for _, in := range f.template.Recipe().Inputs() {
		if in.Amount == 0 {
			continue
		}
		have := f.input.WareAmount(in.Ware).Amount
		offered := m.OfferedAmount(in.Ware)
		hours := (have+offered)/(in.Amount*perHour) + 1
		if hours > saturation {
			saturation = hours
		}
	}
	return saturation
}

// CollectMoney pulls the credits owed for this factory's cleared sales into
// its balance.
func (f *Factory) CollectMoney(m *market.Market, id economy.FactoryID) {
	m.TransferMoney(&f.money, id)
}
