package sactorium

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// baseInput is the reference shipment used across the calculator tests:
// a 100 USD, 10 kg box of 5 units at a 5.50 exchange rate with a 50 BRL
// broker fee.
func baseInput() CostInput {
	return CostInput{
		DeclaredCost: decimal.NewFromInt(100),
		Weight:       decimal.NewFromInt(10),
		Quantity:     5,
		USDRate:      decimal.NewFromFloat(5.50),
		BrokerFee:    decimal.NewFromInt(50),
	}
}

func baseNCM() NCMRecord {
	return NCMRecord{
		Code:        "85171231",
		Description: "Telefones móveis (celulares) - smartphones",
		Category:    "Eletrônicos",
		Taxes:       []TaxEntry{percentTax("Imposto Importação", 16)},
	}
}

func TestCalculateReference(t *testing.T) {
	b, err := Calculate(baseInput(), baseNCM())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	assertMoney(t, "Insurance", b.Insurance, usd(t, "1"))
	assertMoney(t, "Freight", b.Freight, usd(t, "50"))
	assertMoney(t, "CIFUSD", b.CIFUSD, usd(t, "151"))
	assertMoney(t, "CIFBRL", b.CIFBRL, brl(t, "830.50"))
	assertMoney(t, "TotalTax", b.TotalTax, brl(t, "132.88"))
	assertMoney(t, "IVA", b.IVA, brl(t, "96.338"))
	assertMoney(t, "Landed", b.Landed, brl(t, "1109.718"))
	assertMoney(t, "UnitCost", b.UnitCost, brl(t, "221.9436"))

	if len(b.TaxLines) != 1 {
		t.Fatalf("TaxLines count = %d, want 1", len(b.TaxLines))
	}
	assertMoney(t, "TaxLines[0].Value", b.TaxLines[0].Value, brl(t, "132.88"))
	if !b.CIFPYG.IsZero() {
		t.Errorf("CIFPYG = %s, want zero without a PYG rate", b.CIFPYG.Amount())
	}
	if !b.RealUnitCost.IsZero() {
		t.Errorf("RealUnitCost = %s, want zero without a real cost", b.RealUnitCost.Amount())
	}
}

// The 10% IVA must track CIF plus NCM taxes whatever the slot count.
func TestCalculateIVAInvariant(t *testing.T) {
	slots := []TaxEntry{
		percentTax("Imposto Importação", 16),
		percentTax("IPI", 15),
		percentTax("PIS/COFINS", 9.25),
		percentTax("ICMS", 18),
		fixedTax("Taxa fixa", 2.50),
	}
	for n := 0; n <= MaxTaxSlots; n++ {
		ncm := baseNCM()
		ncm.Taxes = slots[:n]
		b, err := Calculate(baseInput(), ncm)
		if err != nil {
			t.Fatalf("Calculate() with %d slots: %v", n, err)
		}
		want := b.CIFBRL.Add(b.TotalTax).MulRate(decimal.NewFromFloat(0.10))
		assertMoney(t, "IVA", b.IVA, want)
		if len(b.TaxLines) != n {
			t.Errorf("TaxLines count = %d, want %d", len(b.TaxLines), n)
		}
	}
}

func TestCalculateLandedIdentity(t *testing.T) {
	in := baseInput()
	in.OtherCosts = decimal.NewFromFloat(37.25)
	ncm := baseNCM()
	ncm.Taxes = append(ncm.Taxes, percentTax("ICMS", 18), fixedTax("Selo", 1.10))

	b, err := Calculate(in, ncm)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	sum := b.CIFBRL.Add(b.TotalTax).Add(b.IVA).Add(b.BrokerFee).Add(b.OtherCosts)
	assertMoney(t, "Landed", b.Landed, sum)

	// Unit cost times quantity reconstructs the landed total.
	assertMoney(t, "UnitCost*qty", b.UnitCost.Mul(Q(in.Quantity)), b.Landed)

	// Tax lines sum to the total.
	lines := M(0, "BRL")
	for _, l := range b.TaxLines {
		lines = lines.Add(l.Value)
	}
	assertMoney(t, "sum(TaxLines)", lines, b.TotalTax)
}

func TestCalculateFixedTaxScalesWithQuantity(t *testing.T) {
	ncm := baseNCM()
	ncm.Taxes = []TaxEntry{fixedTax("Taxa fixa", 2.50)}
	b, err := Calculate(baseInput(), ncm)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	assertMoney(t, "TotalTax", b.TotalTax, brl(t, "12.50"))
}

func TestCalculateSecondaryCurrency(t *testing.T) {
	in := baseInput()
	in.PYGRate = decimal.NewFromInt(7300)
	b, err := Calculate(in, baseNCM())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	assertMoney(t, "CIFPYG", b.CIFPYG, M(d(t, "1102300"), "PYG"))
}

// A real purchase value recomputes the CIF base, but duties stay on the
// declared invoice.
func TestCalculateRealCost(t *testing.T) {
	in := baseInput()
	in.RealCost = decimal.NewFromInt(80)
	b, err := Calculate(in, baseNCM())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	// real CIF = (80 + 0.80 + 50) * 5.50 = 719.40
	// real landed = 719.40 + 132.88 + 96.338 + 50 = 998.618
	assertMoney(t, "RealUnitCost", b.RealUnitCost, brl(t, "199.7236"))
	// The declared figures are untouched.
	assertMoney(t, "TotalTax", b.TotalTax, brl(t, "132.88"))
	assertMoney(t, "UnitCost", b.UnitCost, brl(t, "221.9436"))
}

func TestCalculatePricing(t *testing.T) {
	in := baseInput()
	in.Margin = decimal.NewFromInt(30)
	in.Commission = decimal.NewFromInt(17)
	b, err := Calculate(in, baseNCM())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	assertMoney(t, "DirectPrice", b.DirectPrice, b.UnitCost.MulRate(decimal.NewFromFloat(1.30)))
	assertMoney(t, "DirectProfit", b.DirectProfit, b.DirectPrice.Sub(b.UnitCost))

	wantMarket := b.UnitCost.Amount().Div(d(t, "0.53"))
	assertMoney(t, "MarketPrice", b.MarketPrice, M(wantMarket, "BRL"))
	assertMoney(t, "MarketNet", b.MarketNet, b.MarketPrice.MulRate(d(t, "0.83")))
	assertMoney(t, "MarketProfit", b.MarketProfit, b.MarketNet.Sub(b.UnitCost))
}

func TestCalculateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CostInput)
		wantErr error
	}{
		{"zero quantity", func(in *CostInput) { in.Quantity = 0 }, ErrDivideByZero},
		{"negative quantity", func(in *CostInput) { in.Quantity = -3 }, ErrDivideByZero},
		{"zero cost", func(in *CostInput) { in.DeclaredCost = decimal.Zero }, ErrInvalidInput},
		{"negative cost", func(in *CostInput) { in.DeclaredCost = decimal.NewFromInt(-1) }, ErrInvalidInput},
		{"zero weight", func(in *CostInput) { in.Weight = decimal.Zero }, ErrInvalidInput},
		{"zero exchange rate", func(in *CostInput) { in.USDRate = decimal.Zero }, ErrInvalidInput},
		{"negative broker fee", func(in *CostInput) { in.BrokerFee = decimal.NewFromInt(-1) }, ErrInvalidInput},
		{"negative margin", func(in *CostInput) { in.Margin = decimal.NewFromInt(-5) }, ErrInvalidInput},
		{"negative real cost", func(in *CostInput) { in.RealCost = decimal.NewFromInt(-80) }, ErrInvalidInput},
		{"margin plus commission at 100", func(in *CostInput) {
			in.Margin = decimal.NewFromInt(60)
			in.Commission = decimal.NewFromInt(40)
		}, ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			tc.mutate(&in)
			if _, err := Calculate(in, baseNCM()); !errors.Is(err, tc.wantErr) {
				t.Errorf("Calculate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCalculateCustomRates(t *testing.T) {
	in := baseInput()
	in.InsuranceRate = decimal.NewFromFloat(0.003) // 0.3%
	in.FreightPerKg = decimal.NewFromInt(8)
	b, err := Calculate(in, baseNCM())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	assertMoney(t, "Insurance", b.Insurance, usd(t, "0.3"))
	assertMoney(t, "Freight", b.Freight, usd(t, "80"))
}
