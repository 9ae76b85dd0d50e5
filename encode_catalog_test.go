package sactorium

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeCatalogRoundTrip(t *testing.T) {
	c := testCatalog(t)
	id, err := c.AddProduct(testProduct())
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if _, err := c.AddSale(Sale{ProductID: id, Quantity: Q(2), UnitPrice: d(t, "300"), Client: "Maria"}); err != nil {
		t.Fatalf("AddSale() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		t.Fatalf("EncodeCatalog() error = %v", err)
	}
	back, err := DecodeCatalog(&buf)
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}

	p, err := back.Product(id)
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if p.Name != testProduct().Name || !p.Stock.Equal(Q(3)) {
		t.Errorf("round-trip product = %+v", p)
	}
	if p.Created.IsZero() {
		t.Error("round-trip lost the creation timestamp")
	}
	sales := back.Sales()
	if len(sales) != 1 || sales[0].Client != "Maria" || !sales[0].Total.Equal(d(t, "600")) {
		t.Errorf("round-trip sales = %+v", sales)
	}
	// Counters continue where they left off.
	if got, _ := back.AddProduct(Product{Name: "Fone BT", Cost: d(t, "40"), Stock: Q(1)}); got != id+1 {
		t.Errorf("next product id after reload = %d, want %d", got, id+1)
	}
}

// The wire format keeps the Portuguese keys of earlier versions.
func TestEncodeCatalogWireKeys(t *testing.T) {
	c := testCatalog(t)
	if _, err := c.AddProduct(testProduct()); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		t.Fatalf("EncodeCatalog() error = %v", err)
	}
	doc := buf.String()
	for _, key := range []string{`"produtos"`, `"vendas"`, `"nextProductId"`, `"nextSaleId"`, `"nome"`, `"preco_custo"`, `"estoque"`} {
		if !strings.Contains(doc, key) {
			t.Errorf("encoded catalog misses key %s:\n%s", key, doc)
		}
	}
}

// Counters from hand-edited files may lag behind the contents; ids must
// still never collide.
func TestDecodeCatalogStaleCounters(t *testing.T) {
	const doc = `{
	  "produtos": [
	    {"id": 7, "nome": "Fone BT", "preco_custo": 40, "estoque": 3}
	  ],
	  "vendas": [],
	  "nextProductId": 1,
	  "nextSaleId": 1
	}`
	c, err := DecodeCatalog(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	id, err := c.AddProduct(Product{Name: "Capa", Cost: d(t, "10"), Stock: Q(1)})
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if id <= 7 {
		t.Errorf("AddProduct() id = %d, collides with existing ids", id)
	}
}

func TestOpenCatalogMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sactorium-data.json")
	c, err := OpenCatalog(path)
	if err != nil {
		t.Fatalf("OpenCatalog() error = %v", err)
	}
	if len(c.Products()) != 0 {
		t.Fatal("OpenCatalog() on a missing file yields products")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("catalog file created before any mutation: %v", err)
	}

	id, err := c.AddProduct(Product{Name: "Fone BT", Cost: d(t, "40"), Stock: Q(10)})
	if err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	back, err := OpenCatalog(path)
	if err != nil {
		t.Fatalf("OpenCatalog() reload error = %v", err)
	}
	if _, err := back.Product(id); err != nil {
		t.Errorf("reloaded catalog misses added product: %v", err)
	}
}
