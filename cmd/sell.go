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

type sellCmd struct {
	id     int
	qty    int
	price  string
	client string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale and decrement the stock" }
func (*sellCmd) Usage() string {
	return `sct sell -id <n> -qty <n> -price <brl> [-client <name>]

  Records a sale of a catalog product and decrements its stock. A sale
  larger than the available stock is refused.

Usage Examples:
$ sct sell -id 1 -qty 2 -price 300 -client "João"

`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.id, "id", 0, "Product id.")
	f.IntVar(&p.qty, "qty", 0, "Units sold.")
	f.StringVar(&p.price, "price", "", "Unit price, BRL.")
	f.StringVar(&p.client, "client", "", "Client name.")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	price, err := decimalFlag("price", p.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	id, err := c.AddSale(sactorium.Sale{
		ProductID: p.id,
		Quantity:  sactorium.Q(p.qty),
		UnitPrice: price,
		Client:    p.client,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	product, err := c.Product(p.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded sale %d: %d x %q, %s left in stock\n", id, p.qty, product.Name, product.Stock)
	return subcommands.ExitSuccess
}

type salesCmd struct {
	head int
}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "list the sales ledger, most recent first" }
func (*salesCmd) Usage() string {
	return `sct sales [-head <n>]

  Lists the sales ledger, most recent first, with each sale joined to
  its product's current name.

`
}

func (p *salesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N sales.")
}

func (p *salesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	views := c.Sales()
	if p.head > 0 && len(views) > p.head {
		views = views[:p.head]
	}
	printMarkdown(renderer.Sales(views))
	return subcommands.ExitSuccess
}
