package sactorium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// This file persists the catalog as a single JSON document:
//
//	{ "produtos": [...], "vendas": [...], "nextProductId": n, "nextSaleId": n }
//
// Field names are the Portuguese keys of the files written by earlier
// versions of the tool; timestamps are RFC 3339.

type jproduct struct {
	ID           int             `json:"id"`
	Name         string          `json:"nome"`
	Description  string          `json:"descricao,omitempty"`
	Category     string          `json:"categoria,omitempty"`
	NCMCode      string          `json:"ncm,omitempty"`
	Manufacturer string          `json:"fabricante,omitempty"`
	Cost         decimal.Decimal `json:"preco_custo"`
	Stock        Quantity        `json:"estoque"`
	Created      string          `json:"data_cadastro,omitempty"`
	Modified     string          `json:"data_modificacao,omitempty"`
}

type jsale struct {
	ID        int             `json:"id"`
	ProductID int             `json:"produto_id"`
	Quantity  Quantity        `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	Total     decimal.Decimal `json:"total"`
	Client    string          `json:"cliente,omitempty"`
	Date      string          `json:"data_venda,omitempty"`
}

type jcatalogFile struct {
	Products      []jproduct `json:"produtos"`
	Sales         []jsale    `json:"vendas"`
	NextProductID int        `json:"nextProductId"`
	NextSaleID    int        `json:"nextSaleId"`
}

// DecodeCatalog reads a catalog from its JSON form.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var jfile jcatalogFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&jfile); err != nil {
		return nil, fmt.Errorf("cannot parse catalog: %w", err)
	}

	c := NewCatalog()
	for _, jp := range jfile.Products {
		created, err := parseStamp(jp.Created)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", jp.ID, err)
		}
		modified, err := parseStamp(jp.Modified)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", jp.ID, err)
		}
		c.products = append(c.products, Product{
			ID:           jp.ID,
			Name:         jp.Name,
			Description:  jp.Description,
			Category:     jp.Category,
			NCMCode:      jp.NCMCode,
			Manufacturer: jp.Manufacturer,
			Cost:         jp.Cost,
			Stock:        jp.Stock,
			Created:      created,
			Modified:     modified,
		})
	}
	for _, js := range jfile.Sales {
		date, err := parseStamp(js.Date)
		if err != nil {
			return nil, fmt.Errorf("sale %d: %w", js.ID, err)
		}
		c.sales = append(c.sales, Sale{
			ID:        js.ID,
			ProductID: js.ProductID,
			Quantity:  js.Quantity,
			UnitPrice: js.UnitPrice,
			Total:     js.Total,
			Client:    js.Client,
			Date:      date,
		})
	}

	// Counters from files written by hand may lag behind the contents.
	c.nextProductID = max(jfile.NextProductID, maxID(c.products, func(p Product) int { return p.ID })+1)
	c.nextSaleID = max(jfile.NextSaleID, maxID(c.sales, func(s Sale) int { return s.ID })+1)
	return c, nil
}

func parseStamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func maxID[T any](items []T, id func(T) int) int {
	m := 0
	for _, it := range items {
		if v := id(it); v > m {
			m = v
		}
	}
	return m
}

// EncodeCatalog writes the catalog in its canonical indented JSON form,
// fields in a stable order.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	products := make([]jproduct, 0, len(c.products))
	for _, p := range c.products {
		products = append(products, jproduct{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Category:     p.Category,
			NCMCode:      p.NCMCode,
			Manufacturer: p.Manufacturer,
			Cost:         p.Cost,
			Stock:        p.Stock,
			Created:      formatStamp(p.Created),
			Modified:     formatStamp(p.Modified),
		})
	}
	sales := make([]jsale, 0, len(c.sales))
	for _, s := range c.sales {
		sales = append(sales, jsale{
			ID:        s.ID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Total:     s.Total,
			Client:    s.Client,
			Date:      formatStamp(s.Date),
		})
	}

	var doc jsonObjectWriter
	doc.Append("produtos", products)
	doc.Append("vendas", sales)
	doc.Append("nextProductId", c.nextProductID)
	doc.Append("nextSaleId", c.nextSaleID)

	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal catalog: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("cannot format catalog: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}

// OpenCatalog loads the catalog from path. A missing file yields an
// empty catalog bound to that path; it is written on the first mutation.
func OpenCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		c := NewCatalog()
		c.path = path
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog %q: %w", path, err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load catalog %q: %w", path, err)
	}
	c.path = path
	return c, nil
}

func saveCatalogFile(path string, c *Catalog) error {
	return atomicWrite(path, func(w io.Writer) error {
		return EncodeCatalog(w, c)
	})
}
