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

type importProductsCmd struct {
	file  string
	delim string
}

func (*importProductsCmd) Name() string     { return "import-products" }
func (*importProductsCmd) Synopsis() string { return "bulk import products from a delimited file" }
func (*importProductsCmd) Usage() string {
	return `sct import-products -file <path> [-delim <c>]

  Imports products from a delimited file with a header row. Required
  columns: nome, preco_custo, estoque. Optional: descricao, categoria,
  ncm, fabricante. Invalid rows are skipped and reported one by one.

Usage Examples:
$ sct import-products -file produtos.csv -delim ";"

`
}

func (p *importProductsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "file", "", "File to import.")
	f.StringVar(&p.delim, "delim", ";", "Column delimiter.")
}

func (p *importProductsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}
	delim, status := delimiter(p.delim)
	if status != subcommands.ExitSuccess {
		return status
	}

	file, err := os.Open(p.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	result, err := sactorium.ImportProducts(file, delim, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ImportReport(result))
	return subcommands.ExitSuccess
}
