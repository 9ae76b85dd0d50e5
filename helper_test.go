package sactorium

import (
	"testing"

	"github.com/shopspring/decimal"
)

// test helpers shared across the package tests.

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return v
}

func brl(t *testing.T, s string) Money {
	t.Helper()
	return M(d(t, s), "BRL")
}

func usd(t *testing.T, s string) Money {
	t.Helper()
	return M(d(t, s), "USD")
}

// assertMoney fails when got differs from want in value or currency.
func assertMoney(t *testing.T, label string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s %s, want %s %s", label, got.Amount(), got.Currency(), want.Amount(), want.Currency())
	}
}

// percentTax builds a percent tax entry from a float rate.
func percentTax(name string, rate float64) TaxEntry {
	return TaxEntry{Name: name, Rate: decimal.NewFromFloat(rate), Kind: KindPercent}
}

// fixedTax builds a fixed per-unit tax entry from a float amount.
func fixedTax(name string, amount float64) TaxEntry {
	return TaxEntry{Name: name, Rate: decimal.NewFromFloat(amount), Kind: KindFixed}
}
