package sactorium

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testProduct() Product {
	return Product{
		Name:     "Smartphone XYZ 128GB",
		Category: "Eletrônicos",
		NCMCode:  "85171231",
		Cost:     decimal.NewFromFloat(221.94),
		Stock:    Q(5),
	}
}

// testCatalog returns an in-memory catalog with a deterministic clock.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	stamp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		stamp = stamp.Add(time.Minute)
		return stamp
	}
	return c
}

func TestCatalogAddProduct(t *testing.T) {
	c := testCatalog(t)

	id, err := c.AddProduct(testProduct())
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if id != 1 {
		t.Errorf("AddProduct() id = %d, want 1", id)
	}
	p, err := c.Product(id)
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if p.Created.IsZero() || !p.Modified.Equal(p.Created) {
		t.Errorf("timestamps = created %v, modified %v", p.Created, p.Modified)
	}

	id2, err := c.AddProduct(Product{Name: "Fone BT", Cost: decimal.NewFromInt(40), Stock: Q(10)})
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if id2 != 2 {
		t.Errorf("second AddProduct() id = %d, want 2", id2)
	}
}

func TestCatalogAddProductInvalid(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		name   string
		mutate func(*Product)
	}{
		{"missing name", func(p *Product) { p.Name = "" }},
		{"negative cost", func(p *Product) { p.Cost = decimal.NewFromInt(-1) }},
		{"negative stock", func(p *Product) { p.Stock = Q(-1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testProduct()
			tc.mutate(&p)
			if _, err := c.AddProduct(p); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("AddProduct() error = %v, want %v", err, ErrInvalidRecord)
			}
		})
	}
}

func TestCatalogUpdateProduct(t *testing.T) {
	c := testCatalog(t)
	id, _ := c.AddProduct(testProduct())
	before, _ := c.Product(id)

	cost := d(t, "199.90")
	got, err := c.UpdateProduct(id, ProductPatch{Cost: &cost})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if !got.Cost.Equal(cost) {
		t.Errorf("UpdateProduct() cost = %s, want %s", got.Cost, cost)
	}
	if got.Name != before.Name {
		t.Errorf("UpdateProduct() name = %q, want untouched %q", got.Name, before.Name)
	}
	if !got.Modified.After(before.Modified) {
		t.Errorf("UpdateProduct() modified = %v, want after %v", got.Modified, before.Modified)
	}
}

func TestCatalogDeleteProductKeepsSales(t *testing.T) {
	c := testCatalog(t)
	id, _ := c.AddProduct(testProduct())
	if _, err := c.AddSale(Sale{ProductID: id, Quantity: Q(1), UnitPrice: d(t, "300")}); err != nil {
		t.Fatalf("AddSale() error = %v", err)
	}
	if err := c.DeleteProduct(id); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if _, err := c.Product(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Product() after delete error = %v, want %v", err, ErrNotFound)
	}

	sales := c.Sales()
	if len(sales) != 1 {
		t.Fatalf("Sales() count = %d, want the sale to survive the delete", len(sales))
	}
	if sales[0].ProductName != "Produto removido" {
		t.Errorf("Sales() product name = %q, want placeholder", sales[0].ProductName)
	}
}

func TestCatalogAddSale(t *testing.T) {
	c := testCatalog(t)
	id, _ := c.AddProduct(testProduct())

	saleID, err := c.AddSale(Sale{ProductID: id, Quantity: Q(2), UnitPrice: d(t, "300"), Client: "João"})
	if err != nil {
		t.Fatalf("AddSale() error = %v", err)
	}
	if saleID != 1 {
		t.Errorf("AddSale() id = %d, want 1", saleID)
	}

	p, _ := c.Product(id)
	if !p.Stock.Equal(Q(3)) {
		t.Errorf("stock after sale = %s, want 3", p.Stock)
	}
	sales := c.Sales()
	if len(sales) != 1 {
		t.Fatalf("Sales() count = %d, want 1", len(sales))
	}
	if !sales[0].Total.Equal(d(t, "600")) {
		t.Errorf("sale total = %s, want 600", sales[0].Total)
	}
	if sales[0].Date.IsZero() {
		t.Error("sale date not stamped")
	}
}

// A sale above the available stock is rejected before anything changes.
func TestCatalogAddSaleUnderflow(t *testing.T) {
	c := testCatalog(t)
	id, _ := c.AddProduct(testProduct()) // stock 5

	if _, err := c.AddSale(Sale{ProductID: id, Quantity: Q(6), UnitPrice: d(t, "300")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("AddSale() error = %v, want %v", err, ErrInvalidInput)
	}
	p, _ := c.Product(id)
	if !p.Stock.Equal(Q(5)) {
		t.Errorf("stock after rejected sale = %s, want untouched 5", p.Stock)
	}
	if len(c.Sales()) != 0 {
		t.Errorf("ledger has %d entries after rejected sale", len(c.Sales()))
	}

	// Selling the exact stock is fine and empties it.
	if _, err := c.AddSale(Sale{ProductID: id, Quantity: Q(5), UnitPrice: d(t, "300")}); err != nil {
		t.Fatalf("AddSale() error = %v", err)
	}
	p, _ = c.Product(id)
	if !p.Stock.IsZero() {
		t.Errorf("stock after full sale = %s, want 0", p.Stock)
	}
}

func TestCatalogSalesMostRecentFirst(t *testing.T) {
	c := testCatalog(t)
	id, _ := c.AddProduct(testProduct())

	for i := 0; i < 3; i++ {
		if _, err := c.AddSale(Sale{ProductID: id, Quantity: Q(1), UnitPrice: d(t, "300")}); err != nil {
			t.Fatalf("AddSale() error = %v", err)
		}
	}
	sales := c.Sales()
	if len(sales) != 3 {
		t.Fatalf("Sales() count = %d, want 3", len(sales))
	}
	for i, want := range []int{3, 2, 1} {
		if sales[i].ID != want {
			t.Errorf("Sales()[%d].ID = %d, want %d", i, sales[i].ID, want)
		}
	}
	if sales[0].ProductName != testProduct().Name {
		t.Errorf("Sales() product name = %q, want %q", sales[0].ProductName, testProduct().Name)
	}
}

func TestProductPriceWithMargin(t *testing.T) {
	p := Product{Name: "x", Cost: decimal.NewFromInt(200)}
	got := p.PriceWithMargin(d(t, "30"))
	assertMoney(t, "PriceWithMargin", got, brl(t, "260"))
}
