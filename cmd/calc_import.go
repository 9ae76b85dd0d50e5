package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium"
	"github.com/sactorium/sactorium/renderer"
	"github.com/shopspring/decimal"
)

type calcImportCmd struct {
	ncm        string
	cost       string
	realCost   string
	weight     string
	qty        int
	usdRate    string
	pygRate    string
	broker     string
	other      string
	insurance  string
	freight    string
	margin     string
	commission string
	save       bool
	name       string
}

func (*calcImportCmd) Name() string     { return "calc-import" }
func (*calcImportCmd) Synopsis() string { return "calculate the landed cost of an import" }
func (*calcImportCmd) Usage() string {
	return `sct calc-import -ncm <code> -cost <usd> -weight <kg> -qty <n> [options]

  Calculates the full import cost breakdown for one shipment: insurance,
  freight, CIF, the NCM taxes, the 10% IVA, broker and other costs, down
  to the landed unit cost and suggested resale prices.

  Unset rate flags fall back to the customs defaults (see sct defaults).

Usage Examples:
$ sct calc-import -ncm 85171231 -cost 100 -weight 10 -qty 5 -usd-rate 5.50 -broker 50
$ sct calc-import -ncm 85171231 -cost 100 -weight 10 -qty 5 -save -name "Smartphone XYZ"

`
}

func (p *calcImportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ncm, "ncm", "", "NCM code of the goods.")
	f.StringVar(&p.cost, "cost", "", "Declared purchase value, USD.")
	f.StringVar(&p.realCost, "real-cost", "", "Actual purchase value when it differs, USD.")
	f.StringVar(&p.weight, "weight", "", "Total shipment weight, kg.")
	f.IntVar(&p.qty, "qty", 0, "Units in the shipment.")
	f.StringVar(&p.usdRate, "usd-rate", "", "USD to BRL exchange rate.")
	f.StringVar(&p.pygRate, "pyg-rate", "", "USD to PYG exchange rate, for a CIF in guaranis.")
	f.StringVar(&p.broker, "broker", "", "Customs broker fee, BRL.")
	f.StringVar(&p.other, "other", "", "Other landing costs, BRL.")
	f.StringVar(&p.insurance, "insurance", "", "Insurance rate, percent of the declared value.")
	f.StringVar(&p.freight, "freight", "", "Freight rate, USD per kg.")
	f.StringVar(&p.margin, "margin", "30", "Target resale margin, percent.")
	f.StringVar(&p.commission, "commission", "17", "Marketplace commission, percent.")
	f.BoolVar(&p.save, "save", false, "Record the product in the catalog at the landed unit cost.")
	f.StringVar(&p.name, "name", "", "Product name, required with -save.")
}

func (p *calcImportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.save && p.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -save requires -name.")
		return subcommands.ExitUsageError
	}

	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ncm, err := s.FindByCode(p.ncm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	in, status := p.costInput(s.Defaults())
	if status != subcommands.ExitSuccess {
		return status
	}
	b, err := sactorium.Calculate(in, ncm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Breakdown(b))

	if p.save {
		c, err := OpenCatalog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		id, err := c.AddProduct(sactorium.Product{
			Name:     p.name,
			Category: ncm.Category,
			NCMCode:  ncm.Code,
			Cost:     b.UnitCost.Amount(),
			Stock:    sactorium.Q(p.qty),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Recorded product %d %q at %s\n", id, p.name, b.UnitCost)
	}
	return subcommands.ExitSuccess
}

// costInput builds the calculation input, filling unset flags from the
// customs defaults.
func (p *calcImportCmd) costInput(defaults sactorium.CustomsDefaults) (sactorium.CostInput, subcommands.ExitStatus) {
	in := sactorium.CostInput{Quantity: p.qty}

	fail := func(err error) (sactorium.CostInput, subcommands.ExitStatus) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return sactorium.CostInput{}, subcommands.ExitUsageError
	}

	var err error
	if in.DeclaredCost, err = decimalFlag("cost", p.cost); err != nil {
		return fail(err)
	}
	if in.Weight, err = decimalFlag("weight", p.weight); err != nil {
		return fail(err)
	}
	if p.realCost != "" {
		if in.RealCost, err = decimalFlag("real-cost", p.realCost); err != nil {
			return fail(err)
		}
	}
	if p.pygRate != "" {
		if in.PYGRate, err = decimalFlag("pyg-rate", p.pygRate); err != nil {
			return fail(err)
		}
	}
	if in.Margin, err = decimalFlag("margin", p.margin); err != nil {
		return fail(err)
	}
	if in.Commission, err = decimalFlag("commission", p.commission); err != nil {
		return fail(err)
	}

	in.USDRate = defaults.USDRate
	if p.usdRate != "" {
		if in.USDRate, err = decimalFlag("usd-rate", p.usdRate); err != nil {
			return fail(err)
		}
	}
	in.BrokerFee = defaults.BrokerFee
	if p.broker != "" {
		if in.BrokerFee, err = decimalFlag("broker", p.broker); err != nil {
			return fail(err)
		}
	}
	in.OtherCosts = defaults.OtherCosts
	if p.other != "" {
		if in.OtherCosts, err = decimalFlag("other", p.other); err != nil {
			return fail(err)
		}
	}

	// Rate flags are in percent and per-kg; the defaults store them the
	// same way. The insurance rate becomes a fraction for the calculator.
	insurance := defaults.InsuranceRate
	if p.insurance != "" {
		if insurance, err = decimalFlag("insurance", p.insurance); err != nil {
			return fail(err)
		}
	}
	in.InsuranceRate = insurance.Div(decimal.NewFromInt(100))

	in.FreightPerKg = defaults.FreightRate
	if p.freight != "" {
		if in.FreightPerKg, err = decimalFlag("freight", p.freight); err != nil {
			return fail(err)
		}
	}
	return in, subcommands.ExitSuccess
}
