package statistics

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/engine"
	"github.com/ISibboI/economy-sim/internal/factory"
)

// ConsoleSummary prints a closing report of the run: final factory balances,
// remaining market liquidity, and consumer fulfilment. Collect keeps only the
// most recent snapshot; all output happens at finalisation.
type ConsoleSummary struct {
	hours      uint64
	factories  []factorySnapshot
	prices     []priceSnapshot
	fulfilment []float64
}

type factorySnapshot struct {
	id      economy.FactoryID
	outputs string
	balance economy.Money
	pending economy.Money
}

type priceSnapshot struct {
	ware    economy.Ware
	price   economy.Money
	offered uint64
}

// NewConsoleSummary creates the console observer.
func NewConsoleSummary() *ConsoleSummary {
	return &ConsoleSummary{}
}

// Collect replaces the stored snapshot with the current world state.
func (s *ConsoleSummary) Collect(w *engine.World) {
	s.hours = w.Hours()

	s.factories = s.factories[:0]
	w.ForEachFactory(func(id economy.FactoryID, f *factory.Factory) {
		s.factories = append(s.factories, factorySnapshot{
			id:      id,
			outputs: outputNames(f),
			balance: f.Money(),
			pending: w.Market().PendingCredits(id),
		})
	})

	s.prices = s.prices[:0]
	for _, ware := range economy.AllWares() {
		offered := w.Market().OfferedAmount(ware)
		if offered == 0 {
			continue
		}
		price, _ := w.Market().CurrentPrice(ware)
		s.prices = append(s.prices, priceSnapshot{ware: ware, price: price, offered: offered})
	}

	s.fulfilment = s.fulfilment[:0]
	for _, c := range w.Consumers() {
		s.fulfilment = append(s.fulfilment, c.Fulfilment())
	}
}

// Finalise renders the snapshot to stdout.
func (s *ConsoleSummary) Finalise() error {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("\nEconomy after %s hours\n\n", humanize.Comma(int64(s.hours)))

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Factory", "Produces", "Balance", "Pending"}),
	)
	for _, f := range s.factories {
		table.Append([]string{
			fmt.Sprintf("#%d", f.id),
			f.outputs,
			humanize.Comma(int64(f.balance)) + "€",
			humanize.Comma(int64(f.pending)) + "€",
		})
	}
	table.Render()

	if len(s.prices) > 0 {
		fmt.Println()
		prices := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"Ware", "Cheapest", "Offered"}),
		)
		for _, p := range s.prices {
			prices.Append([]string{
				p.ware.String(),
				p.price.String(),
				humanize.Comma(int64(p.offered)),
			})
		}
		prices.Render()
	}

	for i, f := range s.fulfilment {
		fmt.Printf("consumer %d fulfilment: %.3f\n", i, f)
	}
	return nil
}

func outputNames(f *factory.Factory) string {
	names := ""
	for i, out := range f.Template().Recipe().Outputs() {
		if i > 0 {
			names += ", "
		}
		names += out.Ware.String()
	}
	return names
}
