package economy

import (
	"fmt"
	"math"
)

// Ware identifies a commodity kind. The set is closed for a given build;
// adding a ware means adding a constant here.
type Ware uint8

const (
	WareWater Ware = iota
	WareSeed
	WareApple

	wareCount
)

// AllWares lists every commodity in canonical (sorted) order.
// Iteration over ware-keyed maps goes through this list so that runs are
// reproducible for a fixed seed.
func AllWares() []Ware {
	wares := make([]Ware, 0, wareCount)
	for w := Ware(0); w < wareCount; w++ {
		wares = append(wares, w)
	}
	return wares
}

func (w Ware) String() string {
	switch w {
	case WareWater:
		return "water"
	case WareSeed:
		return "seed"
	case WareApple:
		return "apple"
	default:
		return fmt.Sprintf("ware(%d)", uint8(w))
	}
}

// ParseWare resolves a commodity name from configuration.
func ParseWare(name string) (Ware, error) {
	for w := Ware(0); w < wareCount; w++ {
		if w.String() == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown ware %q", name)
}

// WareAmount is a quantity of a single commodity.
type WareAmount struct {
	Ware   Ware
	Amount uint64
}

// NewWareAmount pairs a commodity with a quantity.
func NewWareAmount(ware Ware, amount uint64) WareAmount {
	return WareAmount{Ware: ware, Amount: amount}
}

// Mul scales the quantity by an integer factor, panicking on overflow.
func (wa WareAmount) Mul(factor uint64) WareAmount {
	if factor != 0 && wa.Amount > math.MaxUint64/factor {
		panic(fmt.Sprintf("ware amount overflow: %v * %d", wa, factor))
	}
	return WareAmount{Ware: wa.Ware, Amount: wa.Amount * factor}
}

// Div returns how many times other fits into wa, flooring.
// Both amounts must refer to the same ware.
func (wa WareAmount) Div(other WareAmount) uint64 {
	if wa.Ware != other.Ware {
		panic(fmt.Sprintf("ware mismatch: %v / %v", wa, other))
	}
	if other.Amount == 0 {
		panic(fmt.Sprintf("ware amount division by zero: %v", wa))
	}
	return wa.Amount / other.Amount
}

func (wa WareAmount) String() string {
	return fmt.Sprintf("%d %s", wa.Amount, wa.Ware)
}

// FactoryID is a stable handle for a factory within a single run.
// Handles are issued monotonically and never reused, so the market's
// pending-credit ledger can never confuse two factories.
type FactoryID int
