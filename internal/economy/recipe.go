package economy

// ProductionRate is the maximum number of recipe applications per hour.
type ProductionRate struct {
	perHour uint64
}

// NewProductionRate creates a rate of applications per hour.
func NewProductionRate(perHour uint64) ProductionRate {
	return ProductionRate{perHour: perHour}
}

// PerHour returns the applications allowed in one hour.
func (r ProductionRate) PerHour() uint64 {
	return r.perHour
}

// Over returns the applications allowed across the given number of hours.
func (r ProductionRate) Over(hours uint64) uint64 {
	return r.perHour * hours
}

// Recipe declares what one application consumes and produces.
// Empty inputs are legal and model primary extraction (mining water,
// harvesting seed). Outputs should be non-empty for the factory to be
// economically meaningful, though that is not structurally enforced.
type Recipe struct {
	inputs  []WareAmount
	outputs []WareAmount
	rate    ProductionRate
}

// NewRecipe creates a recipe from per-application inputs and outputs.
func NewRecipe(inputs, outputs []WareAmount, rate ProductionRate) Recipe {
	return Recipe{
		inputs:  append([]WareAmount(nil), inputs...),
		outputs: append([]WareAmount(nil), outputs...),
		rate:    rate,
	}
}

// Inputs returns the ware amounts consumed per application.
func (r *Recipe) Inputs() []WareAmount {
	return r.inputs
}

// Outputs returns the ware amounts produced per application.
func (r *Recipe) Outputs() []WareAmount {
	return r.outputs
}

// Rate returns the recipe's maximum throughput.
func (r *Recipe) Rate() ProductionRate {
	return r.rate
}

// OutputUnits returns the total number of items produced by the given
// number of applications, across all output wares.
func (r *Recipe) OutputUnits(applications uint64) uint64 {
	var units uint64
	for _, out := range r.outputs {
		units += out.Amount * applications
	}
	return units
}
