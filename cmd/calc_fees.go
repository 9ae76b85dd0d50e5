package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium"
	"github.com/sactorium/sactorium/renderer"
)

type calcFeesCmd struct {
	cost     string
	price    string
	shipping string
	tax      string
}

func (*calcFeesCmd) Name() string     { return "calc-fees" }
func (*calcFeesCmd) Synopsis() string { return "compare marketplace commission tiers for a listing" }
func (*calcFeesCmd) Usage() string {
	return `sct calc-fees -cost <brl> -price <brl> [-shipping <brl>] [-tax <pct>]

  Compares the marketplace commission tiers for one listing and flags
  the most profitable option.

Usage Examples:
$ sct calc-fees -cost 200 -price 400 -shipping 20 -tax 5

`
}

func (p *calcFeesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.cost, "cost", "", "Unit cost, BRL.")
	f.StringVar(&p.price, "price", "", "Candidate listing price, BRL.")
	f.StringVar(&p.shipping, "shipping", "0", "Shipping paid by the seller, BRL.")
	f.StringVar(&p.tax, "tax", "0", "Sales tax over the listing price, percent.")
}

func (p *calcFeesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var in sactorium.FeeInput
	var err error
	if in.Cost, err = decimalFlag("cost", p.cost); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if in.Price, err = decimalFlag("price", p.price); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if in.Shipping, err = decimalFlag("shipping", p.shipping); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if in.TaxPercent, err = decimalFlag("tax", p.tax); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	options, err := sactorium.CompareMarketplaceFees(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.FeeOptions(options))
	return subcommands.ExitSuccess
}
