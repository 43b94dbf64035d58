// Package factory implements production facilities: recipe application,
// input budgeting against the market, and settlement of sale proceeds.
package factory

import (
	"fmt"

	"github.com/ISibboI/economy-sim/internal/economy"
	"github.com/ISibboI/economy-sim/internal/market"
)

// Template is the immutable economic blueprint of a factory: what it
// produces and what its workers cost per hour of operation.
type Template struct {
	recipe      economy.Recipe
	hourlyWages economy.Money
}

// NewTemplate creates a template. Wages are paid per recipe application, so
// the hourly wage must be an exact multiple of the recipe's hourly rate.
func NewTemplate(recipe economy.Recipe, hourlyWages economy.Money) Template {
	if hourlyWages.Mod(recipe.Rate().PerHour()) != 0 {
		panic(fmt.Sprintf("factory: hourly wages %v not divisible by production rate %d/h",
			hourlyWages, recipe.Rate().PerHour()))
	}
	return Template{recipe: recipe, hourlyWages: hourlyWages}
}

// Recipe returns the production recipe.
func (t *Template) Recipe() *economy.Recipe {
	return &t.recipe
}

// HourlyWages returns the wage cost per hour of operation.
func (t *Template) HourlyWages() economy.Money {
	return t.hourlyWages
}

// MarginStatus tells whether a profit margin could be estimated.
type MarginStatus uint8

const (
	// MarginKnown means all inputs and outputs have quoted market prices.
	MarginKnown MarginStatus = iota
	// MarginMissingInput means some input has no offers on the market.
	MarginMissingInput
	// MarginMissingOutput means some output has no offers on the market.
	MarginMissingOutput
)

// EstimatedProfitMargin estimates the ratio between hourly income and hourly
// expenses at current market prices. A margin of 1.0 means break-even; below
// 1.0 the factory would operate at a loss. The estimate is only available
// when every input and output ware has a quoted price.
func (t *Template) EstimatedProfitMargin(m *market.Market) (float64, MarginStatus) {
	perHour := t.recipe.Rate().PerHour()

	expenses := t.hourlyWages
	for _, in := range t.recipe.Inputs() {
		price, ok := m.CurrentPrice(in.Ware)
		if !ok {
			return 0, MarginMissingInput
		}
		expenses = expenses.Add(price.Mul(in.Amount).Mul(perHour))
	}

	var income economy.Money
	for _, out := range t.recipe.Outputs() {
		price, ok := m.CurrentPrice(out.Ware)
		if !ok {
			return 0, MarginMissingOutput
		}
		income = income.Add(price.Mul(out.Amount).Mul(perHour))
	}

	return float64(income) / float64(expenses), MarginKnown
}
