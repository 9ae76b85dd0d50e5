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

type productsCmd struct {
	margin string
	export bool
	delim  string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list the catalog products" }
func (*productsCmd) Usage() string {
	return `sct products [-margin <pct>] [-export [-delim <c>]]

  Lists the catalog. With -margin, an extra column shows the resale
  price at that margin. With -export, writes the catalog to stdout in
  the bulk import format instead.

Usage Examples:
$ sct products -margin 30
$ sct products -export -delim ";" > produtos.csv

`
}

func (p *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.margin, "margin", "", "Show resale prices at this margin, percent.")
	f.BoolVar(&p.export, "export", false, "Write the catalog in the bulk import format.")
	f.StringVar(&p.delim, "delim", ";", "Column delimiter for -export.")
}

func (p *productsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if p.export {
		delim, status := delimiter(p.delim)
		if status != subcommands.ExitSuccess {
			return status
		}
		if err := sactorium.ExportProducts(os.Stdout, delim, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	margin := decimal.Zero
	if p.margin != "" {
		if margin, err = decimalFlag("margin", p.margin); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	printMarkdown(renderer.Products(c.Products(), margin))
	return subcommands.ExitSuccess
}

// delimiter validates a single-character delimiter flag.
func delimiter(s string) (rune, subcommands.ExitStatus) {
	runes := []rune(s)
	if len(runes) != 1 {
		fmt.Fprintf(os.Stderr, "Error: -delim must be a single character, got %q.\n", s)
		return 0, subcommands.ExitUsageError
	}
	return runes[0], subcommands.ExitSuccess
}
