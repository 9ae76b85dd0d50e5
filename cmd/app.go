// Package cmd implements the CLI application to manage import costs and
// the product catalog.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/sactorium/sactorium"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addNCMCmd{}, "ncm")
	c.Register(&updateNCMCmd{}, "ncm")
	c.Register(&deleteNCMCmd{}, "ncm")
	c.Register(&showNCMCmd{}, "ncm")
	c.Register(&searchNCMCmd{}, "ncm")
	c.Register(&categoriesCmd{}, "ncm")
	c.Register(&defaultsCmd{}, "ncm")

	c.Register(&calcImportCmd{}, "calculator")
	c.Register(&calcFeesCmd{}, "calculator")

	c.Register(&addProductCmd{}, "catalog")
	c.Register(&updateProductCmd{}, "catalog")
	c.Register(&deleteProductCmd{}, "catalog")
	c.Register(&productsCmd{}, "catalog")
	c.Register(&sellCmd{}, "catalog")
	c.Register(&salesCmd{}, "catalog")
	c.Register(&importProductsCmd{}, "catalog")

	c.Register(&fmtCmd{}, "tooling")
	c.Register(&queryCmd{}, "tooling")
	c.Register(&topicCmd{}, "tooling")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Path to the data directory (default ~/.sactorium)")

// DataDir returns the directory holding the data files.
func DataDir() string {
	if *dataDir != "" {
		return *dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sactorium"
	}
	return filepath.Join(home, ".sactorium")
}

func schedulePath() string { return filepath.Join(DataDir(), "ncm-data.json") }
func catalogPath() string  { return filepath.Join(DataDir(), "sactorium-data.json") }

// OpenSchedule loads the NCM tax schedule from the app data directory.
func OpenSchedule() (*sactorium.TaxSchedule, error) {
	path := schedulePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Println("warning, tax schedule does not exist yet, starting from the built-in seed")
	}
	return sactorium.OpenTaxSchedule(path)
}

// OpenCatalog loads the product catalog from the app data directory.
func OpenCatalog() (*sactorium.Catalog, error) {
	path := catalogPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Println("warning, catalog does not exist yet, starting empty")
	}
	return sactorium.OpenCatalog(path)
}

// parseTaxes parses the -taxes flag value: comma-separated entries of the
// form "name:rate" or "name:rate:fixed".
func parseTaxes(s string) ([]sactorium.TaxEntry, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var taxes []sactorium.TaxEntry
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("invalid tax entry %q, want name:rate[:fixed]", part)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid rate in tax entry %q: %w", part, err)
		}
		kind := sactorium.KindPercent
		if len(fields) == 3 {
			kind, err = sactorium.ParseTaxKind(strings.TrimSpace(fields[2]))
			if err != nil {
				return nil, fmt.Errorf("invalid tax entry %q: %w", part, err)
			}
		}
		taxes = append(taxes, sactorium.TaxEntry{Name: strings.TrimSpace(fields[0]), Rate: rate, Kind: kind})
	}
	return taxes, nil
}

// decimalFlag parses a decimal flag value, reporting which flag failed.
func decimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid -%s value %q", name, value)
	}
	return d, nil
}
