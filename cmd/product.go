package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium"
)

type addProductCmd struct {
	name         string
	description  string
	category     string
	ncm          string
	manufacturer string
	cost         string
	stock        int
}

func (*addProductCmd) Name() string     { return "add-product" }
func (*addProductCmd) Synopsis() string { return "add a product to the catalog" }
func (*addProductCmd) Usage() string {
	return `sct add-product -name <text> -cost <brl> [-stock <n>] [options]

  Adds a product to the catalog. Cost is the landed unit cost in BRL;
  calc-import -save computes and records it in one step.

Usage Examples:
$ sct add-product -name "Fone BT" -cost 40 -stock 10 -category Acessórios

`
}

func (p *addProductCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Product name.")
	f.StringVar(&p.description, "description", "", "Description.")
	f.StringVar(&p.category, "category", "", "Category.")
	f.StringVar(&p.ncm, "ncm", "", "NCM code of the product.")
	f.StringVar(&p.manufacturer, "manufacturer", "", "Manufacturer.")
	f.StringVar(&p.cost, "cost", "", "Landed unit cost, BRL.")
	f.IntVar(&p.stock, "stock", 0, "Units in stock.")
}

func (p *addProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cost, err := decimalFlag("cost", p.cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	id, err := c.AddProduct(sactorium.Product{
		Name:         p.name,
		Description:  p.description,
		Category:     p.category,
		NCMCode:      p.ncm,
		Manufacturer: p.manufacturer,
		Cost:         cost,
		Stock:        sactorium.Q(p.stock),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added product %d %q\n", id, p.name)
	return subcommands.ExitSuccess
}

type updateProductCmd struct {
	id           int
	name         string
	description  string
	category     string
	ncm          string
	manufacturer string
	cost         string
	stock        int
}

func (*updateProductCmd) Name() string     { return "update-product" }
func (*updateProductCmd) Synopsis() string { return "update a product in the catalog" }
func (*updateProductCmd) Usage() string {
	return `sct update-product -id <n> [options]

  Updates a product. Only the given flags change.

`
}

func (p *updateProductCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.id, "id", 0, "Product id to update.")
	f.StringVar(&p.name, "name", "", "New name.")
	f.StringVar(&p.description, "description", "", "New description.")
	f.StringVar(&p.category, "category", "", "New category.")
	f.StringVar(&p.ncm, "ncm", "", "New NCM code.")
	f.StringVar(&p.manufacturer, "manufacturer", "", "New manufacturer.")
	f.StringVar(&p.cost, "cost", "", "New landed unit cost, BRL.")
	f.IntVar(&p.stock, "stock", 0, "New stock count.")
}

func (p *updateProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var patch sactorium.ProductPatch
	var flagErr error
	// Only flags the user actually set become part of the patch.
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			patch.Name = &p.name
		case "description":
			patch.Description = &p.description
		case "category":
			patch.Category = &p.category
		case "ncm":
			patch.NCMCode = &p.ncm
		case "manufacturer":
			patch.Manufacturer = &p.manufacturer
		case "cost":
			v, err := decimalFlag("cost", p.cost)
			if err != nil {
				flagErr = err
				return
			}
			patch.Cost = &v
		case "stock":
			q := sactorium.Q(p.stock)
			patch.Stock = &q
		}
	})
	if flagErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", flagErr)
		return subcommands.ExitUsageError
	}

	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	updated, err := c.UpdateProduct(p.id, patch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated product %d %q\n", updated.ID, updated.Name)
	return subcommands.ExitSuccess
}

type deleteProductCmd struct {
	id int
}

func (*deleteProductCmd) Name() string     { return "delete-product" }
func (*deleteProductCmd) Synopsis() string { return "delete a product from the catalog" }
func (*deleteProductCmd) Usage() string {
	return `sct delete-product -id <n>

  Deletes a product. Its sales stay in the ledger under "Produto
  removido".

`
}

func (p *deleteProductCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.id, "id", 0, "Product id to delete.")
}

func (p *deleteProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.DeleteProduct(p.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted product %d\n", p.id)
	return subcommands.ExitSuccess
}
