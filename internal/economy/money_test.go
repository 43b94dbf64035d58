package economy

import (
	"math"
	"testing"
)

func TestMoneyCheckedArithmetic(t *testing.T) {
	if got := Money(3).Add(4); got != 7 {
		t.Fatalf("3+4 got %v", got)
	}
	if got := Money(10).Sub(4); got != 6 {
		t.Fatalf("10-4 got %v", got)
	}
	if got := Money(10).Mul(3); got != 30 {
		t.Fatalf("10*3 got %v", got)
	}
	if got := Money(10).Mod(3); got != 1 {
		t.Fatalf("10%%3 got %v", got)
	}
}

func TestMoneyOverflowPanics(t *testing.T) {
	assertPanics(t, "add overflow", func() {
		Money(math.MaxUint64).Add(1)
	})
	assertPanics(t, "sub underflow", func() {
		Money(1).Sub(2)
	})
	assertPanics(t, "mul overflow", func() {
		Money(math.MaxUint64 / 2).Mul(3)
	})
	assertPanics(t, "mod by zero", func() {
		Money(1).Mod(0)
	})
}

func TestApproximateMoneyRounding(t *testing.T) {
	if got := ApproximateMoney(2.4).Money(); got != 2 {
		t.Fatalf("round(2.4) got %v", got)
	}
	if got := ApproximateMoney(2.5).Money(); got != 3 {
		t.Fatalf("round(2.5) got %v", got)
	}
	if got := ApproximateMoney(2.01).MoneyCeil(); got != 3 {
		t.Fatalf("ceil(2.01) got %v", got)
	}
	if got := ApproximateMoney(2.0).MoneyCeil(); got != 2 {
		t.Fatalf("ceil(2.0) got %v", got)
	}
	assertPanics(t, "negative conversion", func() {
		ApproximateMoney(-0.5).Money()
	})
}

func TestApproximateMoneyDiv(t *testing.T) {
	perItem := Money(100).Approximate().Div(8)
	if perItem != 12.5 {
		t.Fatalf("100/8 got %v", perItem)
	}
	assertPanics(t, "div by zero", func() {
		ApproximateMoney(1).Div(0)
	})
}

func assertPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	f()
}
