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

type defaultsCmd struct {
	freight   string
	insurance string
	broker    string
	other     string
	usdRate   string
	notes     string
}

func (*defaultsCmd) Name() string     { return "defaults" }
func (*defaultsCmd) Synopsis() string { return "show or update the customs defaults" }
func (*defaultsCmd) Usage() string {
	return `sct defaults [-freight <usd/kg>] [-insurance <pct>] [-broker <brl>] [-other <brl>] [-usd-rate <rate>] [-notes <text>]

  Without flags, shows the customs defaults used to prefill import
  calculations. With flags, updates the given values.

Usage Examples:
$ sct defaults
$ sct defaults -usd-rate 5.80

`
}

func (p *defaultsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.freight, "freight", "", "Default freight rate, USD per kg.")
	f.StringVar(&p.insurance, "insurance", "", "Default insurance rate, percent.")
	f.StringVar(&p.broker, "broker", "", "Default customs broker fee, BRL.")
	f.StringVar(&p.other, "other", "", "Default other costs, BRL.")
	f.StringVar(&p.usdRate, "usd-rate", "", "Default USD to BRL exchange rate.")
	f.StringVar(&p.notes, "notes", "", "Notes about the defaults.")
}

func (p *defaultsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var patch sactorium.DefaultsPatch
	dirty := false
	if p.freight != "" {
		v, err := decimalFlag("freight", p.freight)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.FreightRate = &v
		dirty = true
	}
	if p.insurance != "" {
		v, err := decimalFlag("insurance", p.insurance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.InsuranceRate = &v
		dirty = true
	}
	if p.broker != "" {
		v, err := decimalFlag("broker", p.broker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.BrokerFee = &v
		dirty = true
	}
	if p.other != "" {
		v, err := decimalFlag("other", p.other)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.OtherCosts = &v
		dirty = true
	}
	if p.usdRate != "" {
		v, err := decimalFlag("usd-rate", p.usdRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		patch.USDRate = &v
		dirty = true
	}
	if p.notes != "" {
		patch.Notes = &p.notes
		dirty = true
	}

	if dirty {
		if _, err := s.UpdateDefaults(patch); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.Defaults(s.Defaults()))
	return subcommands.ExitSuccess
}
