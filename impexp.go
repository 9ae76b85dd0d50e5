package sactorium

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the bulk product import/export
// format: delimited text with a header row, the format spreadsheets
// export to. Columns may appear in any order.

// Import column names. nome, preco_custo and estoque are required;
// the rest are optional.
const (
	colName         = "nome"
	colCost         = "preco_custo"
	colStock        = "estoque"
	colDescription  = "descricao"
	colCategory     = "categoria"
	colNCM          = "ncm"
	colManufacturer = "fabricante"
)

// ImportResult summarizes one bulk import: rows that became products,
// rows skipped, and one message per skipped row.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// ImportProducts reads delimited product rows from 'r' and adds each
// valid one to the catalog. Invalid rows (missing name, bad numbers,
// negative cost or stock) are skipped and reported in the result rather
// than aborting the whole import. The header row names the columns;
// order does not matter.
func ImportProducts(r io.Reader, delim rune, c *Catalog) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read import header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colName, colCost, colStock} {
		if _, ok := cols[required]; !ok {
			return ImportResult{}, fmt.Errorf("%w: import header misses required column %q", ErrInvalidInput, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var result ImportResult
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		p, err := parseProductRow(row, field)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if _, err := c.AddProduct(p); err != nil {
			// A persistence failure aborts: later rows would fail too.
			if errors.Is(err, ErrPersistence) {
				return result, err
			}
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func parseProductRow(row []string, field func([]string, string) string) (Product, error) {
	name := field(row, colName)
	if name == "" {
		return Product{}, fmt.Errorf("%w: empty product name", ErrInvalidInput)
	}
	cost, err := decimal.NewFromString(field(row, colCost))
	if err != nil {
		return Product{}, fmt.Errorf("%w: invalid cost %q", ErrInvalidInput, field(row, colCost))
	}
	if !cost.IsPositive() {
		return Product{}, fmt.Errorf("%w: cost must be positive, got %s", ErrInvalidInput, cost)
	}
	stock, err := decimal.NewFromString(field(row, colStock))
	if err != nil {
		return Product{}, fmt.Errorf("%w: invalid stock %q", ErrInvalidInput, field(row, colStock))
	}
	if stock.IsNegative() {
		return Product{}, fmt.Errorf("%w: stock cannot be negative, got %s", ErrInvalidInput, stock)
	}

	return Product{
		Name:         name,
		Description:  field(row, colDescription),
		Category:     field(row, colCategory),
		NCMCode:      field(row, colNCM),
		Manufacturer: field(row, colManufacturer),
		Cost:         cost,
		Stock:        Q(stock),
	}, nil
}

// ExportProducts writes the catalog's products to 'w' in the import
// format, so a file can be round-tripped through a spreadsheet.
func ExportProducts(w io.Writer, delim rune, c *Catalog) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := []string{colName, colCost, colStock, colDescription, colCategory, colNCM, colManufacturer}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write export header: %w", err)
	}
	for _, p := range c.Products() {
		row := []string{
			p.Name,
			p.Cost.String(),
			p.Stock.String(),
			p.Description,
			p.Category,
			p.NCMCode,
			p.Manufacturer,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write product %q: %w", p.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
