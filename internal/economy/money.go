// Package economy provides the core value types of the simulation:
// currency, commodities, and production recipes.
package economy

import (
	"fmt"
	"math"
)

// Money is an exact, non-negative amount of currency.
// All arithmetic is checked: overflow or underflow is a programming error
// and panics rather than silently wrapping.
type Money uint64

// Add returns m + other, panicking on overflow.
func (m Money) Add(other Money) Money {
	sum := m + other
	if sum < m {
		panic(fmt.Sprintf("money overflow: %v + %v", m, other))
	}
	return sum
}

// Sub returns m - other, panicking on underflow.
func (m Money) Sub(other Money) Money {
	if other > m {
		panic(fmt.Sprintf("money underflow: %v - %v", m, other))
	}
	return m - other
}

// Mul returns m scaled by an integer factor, panicking on overflow.
func (m Money) Mul(factor uint64) Money {
	if factor != 0 && uint64(m) > math.MaxUint64/factor {
		panic(fmt.Sprintf("money overflow: %v * %d", m, factor))
	}
	return m * Money(factor)
}

// Mod returns the remainder of dividing m by an integer divisor.
func (m Money) Mod(divisor uint64) Money {
	if divisor == 0 {
		panic("money modulo by zero")
	}
	return m % Money(divisor)
}

func (m Money) String() string {
	return fmt.Sprintf("%d€", uint64(m))
}

// ApproximateMoney is a floating-point companion to Money, used only where
// fractional per-item costs must be tracked (weighted averages). It never
// takes part in balance accounting.
type ApproximateMoney float64

// Approximate converts an exact amount to its floating-point companion.
func (m Money) Approximate() ApproximateMoney {
	return ApproximateMoney(m)
}

// Money converts back to exact currency by rounding to the nearest unit.
// Negative amounts are a programming error and panic.
func (a ApproximateMoney) Money() Money {
	if a < 0 {
		panic(fmt.Sprintf("negative money: %v", float64(a)))
	}
	return Money(math.Round(float64(a)))
}

// MoneyCeil converts to exact currency rounding up to the next whole unit.
func (a ApproximateMoney) MoneyCeil() Money {
	if a < 0 {
		panic(fmt.Sprintf("negative money: %v", float64(a)))
	}
	return Money(math.Ceil(float64(a)))
}

// Div divides a total across count items, yielding a per-item cost.
func (a ApproximateMoney) Div(count uint64) ApproximateMoney {
	if count == 0 {
		panic("approximate money division by zero")
	}
	return a / ApproximateMoney(count)
}

// MulCount scales a per-item cost by an item count.
func (a ApproximateMoney) MulCount(count uint64) ApproximateMoney {
	return a * ApproximateMoney(count)
}
