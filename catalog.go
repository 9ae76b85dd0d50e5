package sactorium

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Cost is the landed unit cost in BRL,
// either entered directly or recorded from an import calculation.
type Product struct {
	ID           int
	Name         string
	Description  string
	Category     string
	NCMCode      string
	Manufacturer string
	Cost         decimal.Decimal
	Stock        Quantity
	Created      time.Time
	Modified     time.Time
}

func (p Product) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidRecord)
	}
	if p.Cost.IsNegative() {
		return fmt.Errorf("%w: product cost cannot be negative, got %s", ErrInvalidRecord, p.Cost)
	}
	if p.Stock.IsNegative() {
		return fmt.Errorf("%w: product stock cannot be negative, got %s", ErrInvalidRecord, p.Stock)
	}
	return nil
}

// PriceWithMargin returns the resale price of this product at the given
// margin over its landed cost.
func (p Product) PriceWithMargin(margin decimal.Decimal) Money {
	factor := decimal.NewFromInt(1).Add(margin.Div(oneHundred))
	return M(p.Cost.Mul(factor), "BRL")
}

// Sale is one ledger entry. Sales are append-only: they reference their
// product by id and survive its deletion.
type Sale struct {
	ID        int
	ProductID int
	Quantity  Quantity
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Client    string
	Date      time.Time
}

// SaleView is a sale joined with its product's current name for display.
type SaleView struct {
	Sale
	ProductName string
}

// deletedProductName stands in for products removed after the sale.
const deletedProductName = "Produto removido"

// Catalog owns the product list and the sales ledger, backed by a single
// JSON file. Same persistence contract as the tax schedule: every
// mutation saves synchronously, and a failed save rolls the change back.
type Catalog struct {
	path          string // empty for an in-memory catalog
	products      []Product
	sales         []Sale
	nextProductID int
	nextSaleID    int

	now func() time.Time // test seam for timestamps
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{nextProductID: 1, nextSaleID: 1, now: time.Now}
}

// Products returns every product in insertion order.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Product returns the product with this id.
func (c *Catalog) Product(id int) (Product, error) {
	i := c.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return c.products[i], nil
}

// AddProduct validates and appends a product, stamps it, and persists
// the catalog. Returns the assigned id.
func (c *Catalog) AddProduct(p Product) (int, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	p.ID = c.nextProductID
	p.Created = c.now()
	p.Modified = p.Created

	c.products = append(c.products, p)
	c.nextProductID++
	if err := c.save(); err != nil {
		c.products = c.products[:len(c.products)-1]
		c.nextProductID--
		return 0, err
	}
	return p.ID, nil
}

// ProductPatch holds the fields UpdateProduct merges into an existing
// product. Nil fields are left untouched.
type ProductPatch struct {
	Name         *string
	Description  *string
	Category     *string
	NCMCode      *string
	Manufacturer *string
	Cost         *decimal.Decimal
	Stock        *Quantity
}

// UpdateProduct merges the patch into the product with this id, bumps
// its modification time and persists the catalog.
func (c *Catalog) UpdateProduct(id int, patch ProductPatch) (Product, error) {
	i := c.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	merged := c.products[i]
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.NCMCode != nil {
		merged.NCMCode = *patch.NCMCode
	}
	if patch.Manufacturer != nil {
		merged.Manufacturer = *patch.Manufacturer
	}
	if patch.Cost != nil {
		merged.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		merged.Stock = *patch.Stock
	}
	if err := merged.validate(); err != nil {
		return Product{}, err
	}
	merged.Modified = c.now()

	previous := c.products[i]
	c.products[i] = merged
	if err := c.save(); err != nil {
		c.products[i] = previous
		return Product{}, err
	}
	return merged, nil
}

// DeleteProduct removes the product with this id and persists the
// catalog. Its sales stay in the ledger.
func (c *Catalog) DeleteProduct(id int) error {
	i := c.productIndex(id)
	if i < 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	previous := c.products[i]
	c.products = slices.Delete(c.products, i, i+1)
	if err := c.save(); err != nil {
		c.products = slices.Insert(c.products, i, previous)
		return err
	}
	return nil
}

// AddSale records a sale against a product, decrementing its stock. A
// quantity above the available stock is rejected before anything
// changes. Returns the assigned sale id.
func (c *Catalog) AddSale(s Sale) (int, error) {
	if !s.Quantity.IsPositive() {
		return 0, fmt.Errorf("%w: sale quantity must be positive, got %s", ErrInvalidInput, s.Quantity)
	}
	if s.UnitPrice.IsNegative() {
		return 0, fmt.Errorf("%w: sale price cannot be negative, got %s", ErrInvalidInput, s.UnitPrice)
	}
	i := c.productIndex(s.ProductID)
	if i < 0 {
		return 0, fmt.Errorf("product %d: %w", s.ProductID, ErrNotFound)
	}
	if s.Quantity.GreaterThan(c.products[i].Stock) {
		return 0, fmt.Errorf("%w: sale of %s exceeds stock of %s for product %d",
			ErrInvalidInput, s.Quantity, c.products[i].Stock, s.ProductID)
	}

	s.ID = c.nextSaleID
	s.Total = s.UnitPrice.Mul(s.Quantity.Decimal())
	if s.Date.IsZero() {
		s.Date = c.now()
	}

	previous := c.products[i]
	c.products[i].Stock = previous.Stock.Sub(s.Quantity)
	c.products[i].Modified = c.now()
	c.sales = append(c.sales, s)
	c.nextSaleID++
	if err := c.save(); err != nil {
		c.products[i] = previous
		c.sales = c.sales[:len(c.sales)-1]
		c.nextSaleID--
		return 0, err
	}
	return s.ID, nil
}

// Sales returns the ledger most-recent-first, each entry joined with its
// product's current name. Sales of deleted products are kept and shown
// under a placeholder name.
func (c *Catalog) Sales() []SaleView {
	views := make([]SaleView, 0, len(c.sales))
	for i := len(c.sales) - 1; i >= 0; i-- {
		s := c.sales[i]
		name := deletedProductName
		if j := c.productIndex(s.ProductID); j >= 0 {
			name = c.products[j].Name
		}
		views = append(views, SaleView{Sale: s, ProductName: name})
	}
	return views
}

func (c *Catalog) productIndex(id int) int {
	return slices.IndexFunc(c.products, func(p Product) bool { return p.ID == id })
}

// save persists the whole catalog. An in-memory catalog (empty path) is
// a no-op; the persistence itself lives in encode_catalog.go.
func (c *Catalog) save() error {
	if c.path == "" {
		return nil
	}
	return saveCatalogFile(c.path, c)
}

// Save rewrites the catalog file in canonical form.
func (c *Catalog) Save() error {
	return c.save()
}
