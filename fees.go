package sactorium

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// marketplaceCommissions are the candidate commission tiers compared by
// CompareMarketplaceFees: the classic and the premium listing.
var marketplaceCommissions = []decimal.Decimal{
	decimal.NewFromFloat(17),
	decimal.NewFromFloat(12),
}

// FeeInput is the bundle for a marketplace fee comparison: a product
// already in hand, priced at a candidate listing price.
type FeeInput struct {
	Cost       decimal.Decimal // unit cost, BRL
	Price      decimal.Decimal // candidate listing price, BRL
	Shipping   decimal.Decimal // shipping paid by the seller, BRL
	TaxPercent decimal.Decimal // sales tax over the listing price, percent
}

func (in FeeInput) validate() error {
	if !in.Cost.IsPositive() {
		return fmt.Errorf("%w: cost must be positive, got %s", ErrInvalidInput, in.Cost)
	}
	if !in.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, in.Price)
	}
	if in.Shipping.IsNegative() {
		return fmt.Errorf("%w: shipping cannot be negative, got %s", ErrInvalidInput, in.Shipping)
	}
	if in.TaxPercent.IsNegative() {
		return fmt.Errorf("%w: tax cannot be negative, got %s", ErrInvalidInput, in.TaxPercent)
	}
	return nil
}

// FeeOption is the outcome of listing under one commission tier.
type FeeOption struct {
	Commission Percent
	Fee        Money // BRL
	Net        Money // BRL, profit after fee, shipping and tax
	Margin     Percent
	Best       bool
}

// CompareMarketplaceFees evaluates the candidate commission tiers for one
// listing and marks the most profitable option. The gross profit (price
// minus cost, shipping and sales tax) is shared by every option; only the
// commission fee differs.
func CompareMarketplaceFees(in FeeInput) ([]FeeOption, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tax := in.Price.Mul(in.TaxPercent.Div(oneHundred))
	gross := in.Price.Sub(in.Cost).Sub(in.Shipping).Sub(tax)

	options := make([]FeeOption, 0, len(marketplaceCommissions))
	best := 0
	for i, c := range marketplaceCommissions {
		fee := in.Price.Mul(c.Div(oneHundred))
		net := gross.Sub(fee)
		options = append(options, FeeOption{
			Commission: Percent(c.InexactFloat64()),
			Fee:        M(fee, "BRL"),
			Net:        M(net, "BRL"),
			Margin:     Percent(net.Div(in.Cost).Mul(oneHundred).InexactFloat64()),
		})
		if net.GreaterThan(options[best].Net.Amount()) {
			best = i
		}
	}
	options[best].Best = true
	return options, nil
}
