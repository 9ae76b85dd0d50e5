package sactorium

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default CIF constants for imports via Paraguay.
var (
	// DefaultInsuranceRate is the insurance premium as a fraction of the
	// declared purchase value.
	DefaultInsuranceRate = decimal.NewFromFloat(0.01)
	// DefaultFreightPerKg is the freight rate in USD per kg.
	DefaultFreightPerKg = decimal.NewFromFloat(5.00)
)

// ivaRate is the fixed 10% surcharge applied after the NCM taxes.
var ivaRate = decimal.NewFromFloat(0.10)

var oneHundred = decimal.NewFromInt(100)

// CostInput is the bundle of user-entered values for one import
// calculation. It is ephemeral: built per calculation, never persisted.
type CostInput struct {
	DeclaredCost decimal.Decimal // total purchase value on the invoice, USD
	RealCost     decimal.Decimal // actual purchase value when it differs, USD (optional)
	Weight       decimal.Decimal // total shipment weight, kg
	Quantity     int             // units in the shipment
	USDRate      decimal.Decimal // USD to BRL exchange rate
	PYGRate      decimal.Decimal // USD to PYG exchange rate (optional)
	BrokerFee    decimal.Decimal // customs broker fee, BRL
	OtherCosts   decimal.Decimal // other landing costs, BRL
	Margin       decimal.Decimal // target resale margin, percent
	Commission   decimal.Decimal // marketplace commission, percent

	// InsuranceRate and FreightPerKg override the defaults when positive.
	InsuranceRate decimal.Decimal
	FreightPerKg  decimal.Decimal
}

func (in CostInput) insuranceRate() decimal.Decimal {
	if in.InsuranceRate.IsPositive() {
		return in.InsuranceRate
	}
	return DefaultInsuranceRate
}

func (in CostInput) freightPerKg() decimal.Decimal {
	if in.FreightPerKg.IsPositive() {
		return in.FreightPerKg
	}
	return DefaultFreightPerKg
}

// validate rejects a bundle the calculator cannot compute from. Checked
// before any arithmetic so a partial breakdown is never produced.
func (in CostInput) validate() error {
	if !in.DeclaredCost.IsPositive() {
		return fmt.Errorf("%w: declared cost must be positive, got %s", ErrInvalidInput, in.DeclaredCost)
	}
	if in.RealCost.IsNegative() {
		return fmt.Errorf("%w: real cost cannot be negative, got %s", ErrInvalidInput, in.RealCost)
	}
	if !in.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be positive, got %s", ErrInvalidInput, in.Weight)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrDivideByZero, in.Quantity)
	}
	if !in.USDRate.IsPositive() {
		return fmt.Errorf("%w: USD exchange rate must be positive, got %s", ErrInvalidInput, in.USDRate)
	}
	if in.PYGRate.IsNegative() {
		return fmt.Errorf("%w: PYG exchange rate cannot be negative, got %s", ErrInvalidInput, in.PYGRate)
	}
	if in.BrokerFee.IsNegative() || in.OtherCosts.IsNegative() {
		return fmt.Errorf("%w: broker fee and other costs cannot be negative", ErrInvalidInput)
	}
	if in.Margin.IsNegative() {
		return fmt.Errorf("%w: margin cannot be negative, got %s", ErrInvalidInput, in.Margin)
	}
	if in.Commission.IsNegative() {
		return fmt.Errorf("%w: commission cannot be negative, got %s", ErrInvalidInput, in.Commission)
	}
	if in.Margin.Add(in.Commission).GreaterThanOrEqual(oneHundred) {
		return fmt.Errorf("%w: margin plus commission must stay below 100%%", ErrInvalidInput)
	}
	if in.InsuranceRate.IsNegative() || in.FreightPerKg.IsNegative() {
		return fmt.Errorf("%w: insurance rate and freight rate cannot be negative", ErrInvalidInput)
	}
	return nil
}

// TaxLine is one applied NCM tax in a breakdown.
type TaxLine struct {
	Name  string
	Rate  decimal.Decimal
	Kind  TaxKind
	Value Money // BRL
}

// Breakdown is the layered result of one import calculation. Pure derived
// data, recomputed on every input change and never persisted.
type Breakdown struct {
	NCMCode string

	Insurance Money // USD
	Freight   Money // USD
	CIFUSD    Money
	CIFBRL    Money
	CIFPYG    Money // zero unless a PYG rate was given

	TaxLines []TaxLine
	TotalTax Money // BRL
	IVA      Money // BRL

	BrokerFee  Money // BRL
	OtherCosts Money // BRL
	Landed     Money // BRL
	UnitCost   Money // BRL

	// RealUnitCost is the unit cost recomputed from the real purchase
	// value, with duties still based on the declared invoice. Zero when
	// no real cost was given.
	RealUnitCost Money

	DirectPrice  Money // BRL
	DirectProfit Money // BRL

	MarketPrice  Money // BRL
	MarketNet    Money // BRL
	MarketProfit Money // BRL
	MarketMargin Percent
}

// Calculate produces the full cost and pricing breakdown for one shipment
// under the given NCM classification. It is a pure function: no I/O, no
// hidden state, and it refuses to produce a partial breakdown on invalid
// input.
//
// The steps are ordered and each feeds the next: insurance and freight
// build the CIF value in USD, the exchange rate converts it to BRL, every
// configured NCM tax applies against that same BRL base (no compounding
// across slots), the 10% IVA applies on CIF plus NCM taxes, and broker
// and other costs complete the landed total.
func Calculate(in CostInput, ncm NCMRecord) (*Breakdown, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	for _, t := range ncm.ActiveTaxes() {
		if t.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: ncm %q tax %q has a negative rate", ErrInvalidInput, ncm.Code, t.Name)
		}
	}

	quantity := Q(in.Quantity)

	// CIF in USD.
	insurance := in.DeclaredCost.Mul(in.insuranceRate())
	freight := in.Weight.Mul(in.freightPerKg())
	cifUSD := in.DeclaredCost.Add(insurance).Add(freight)
	cifBRL := cifUSD.Mul(in.USDRate)

	b := &Breakdown{
		NCMCode:   ncm.Code,
		Insurance: M(insurance, "USD"),
		Freight:   M(freight, "USD"),
		CIFUSD:    M(cifUSD, "USD"),
		CIFBRL:    M(cifBRL, "BRL"),
	}
	if in.PYGRate.IsPositive() {
		b.CIFPYG = M(cifUSD.Mul(in.PYGRate), "PYG")
	}

	// NCM taxes, each against the same CIF base in BRL. Fixed taxes are
	// an absolute amount per unit.
	totalTax := decimal.Zero
	for _, t := range ncm.ActiveTaxes() {
		var value decimal.Decimal
		switch t.Kind {
		case KindPercent:
			value = cifBRL.Mul(t.Rate.Div(oneHundred))
		case KindFixed:
			value = t.Rate.Mul(quantity.Decimal())
		}
		totalTax = totalTax.Add(value)
		b.TaxLines = append(b.TaxLines, TaxLine{
			Name:  t.Name,
			Rate:  t.Rate,
			Kind:  t.Kind,
			Value: M(value, "BRL"),
		})
	}
	b.TotalTax = M(totalTax, "BRL")

	// IVA applies after the NCM taxes, configured or not.
	iva := cifBRL.Add(totalTax).Mul(ivaRate)
	b.IVA = M(iva, "BRL")

	landed := cifBRL.Add(totalTax).Add(iva).Add(in.BrokerFee).Add(in.OtherCosts)
	unit := landed.Div(quantity.Decimal())
	b.BrokerFee = M(in.BrokerFee, "BRL")
	b.OtherCosts = M(in.OtherCosts, "BRL")
	b.Landed = M(landed, "BRL")
	b.UnitCost = M(unit, "BRL")

	if in.RealCost.IsPositive() {
		// Customs works off the declared invoice; only the purchase value
		// itself (and its insurance premium) changes.
		realInsurance := in.RealCost.Mul(in.insuranceRate())
		realCIF := in.RealCost.Add(realInsurance).Add(freight).Mul(in.USDRate)
		realLanded := realCIF.Add(totalTax).Add(iva).Add(in.BrokerFee).Add(in.OtherCosts)
		b.RealUnitCost = M(realLanded.Div(quantity.Decimal()), "BRL")
	}

	// Direct resale.
	marginFrac := in.Margin.Div(oneHundred)
	direct := unit.Mul(decimal.NewFromInt(1).Add(marginFrac))
	b.DirectPrice = M(direct, "BRL")
	b.DirectProfit = M(direct.Sub(unit), "BRL")

	// Marketplace resale: price such that, net of commission, the target
	// margin over unit cost is preserved.
	commissionFrac := in.Commission.Div(oneHundred)
	market := unit.Div(decimal.NewFromInt(1).Sub(marginFrac).Sub(commissionFrac))
	net := market.Mul(decimal.NewFromInt(1).Sub(commissionFrac))
	profit := net.Sub(unit)
	b.MarketPrice = M(market, "BRL")
	b.MarketNet = M(net, "BRL")
	b.MarketProfit = M(profit, "BRL")
	b.MarketMargin = Percent(profit.Div(unit).Mul(oneHundred).InexactFloat64())

	return b, nil
}
