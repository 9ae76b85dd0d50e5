package sactorium

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestImportProducts(t *testing.T) {
	const rows = `nome;preco_custo;estoque;categoria;ncm
Smartphone XYZ 128GB;221.94;5;Eletrônicos;85171231
Fone BT;40;10;;
;10;1;;
Capa;abc;1;;
Película;5;-2;;
`
	c := testCatalog(t)
	result, err := ImportProducts(strings.NewReader(rows), ';', c)
	if err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", result.Skipped)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("Errors = %d, want 3: %v", len(result.Errors), result.Errors)
	}
	// Each message names its line.
	for i, want := range []string{"line 4", "line 5", "line 6"} {
		if !strings.Contains(result.Errors[i], want) {
			t.Errorf("Errors[%d] = %q, want mention of %q", i, result.Errors[i], want)
		}
	}

	products := c.Products()
	if len(products) != 2 {
		t.Fatalf("catalog has %d products, want 2", len(products))
	}
	if products[0].NCMCode != "85171231" {
		t.Errorf("imported ncm = %q, want %q", products[0].NCMCode, "85171231")
	}
	if !products[1].Stock.Equal(Q(10)) {
		t.Errorf("imported stock = %s, want 10", products[1].Stock)
	}
}

// Columns may come in any order; unknown columns are ignored.
func TestImportProductsColumnOrder(t *testing.T) {
	const rows = `estoque,extra,nome,preco_custo
3,x,Fone BT,40
`
	c := testCatalog(t)
	result, err := ImportProducts(strings.NewReader(rows), ',', c)
	if err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}
	if result.Imported != 1 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want one clean import", result)
	}
	p := c.Products()[0]
	if p.Name != "Fone BT" || !p.Cost.Equal(d(t, "40")) || !p.Stock.Equal(Q(3)) {
		t.Errorf("imported product = %+v", p)
	}
}

func TestImportProductsMissingRequiredColumn(t *testing.T) {
	const rows = `nome;preco_custo
Fone BT;40
`
	c := testCatalog(t)
	if _, err := ImportProducts(strings.NewReader(rows), ';', c); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ImportProducts() error = %v, want %v", err, ErrInvalidInput)
	}
	if len(c.Products()) != 0 {
		t.Errorf("catalog mutated by rejected import")
	}
}

func TestExportProductsRoundTrip(t *testing.T) {
	c := testCatalog(t)
	if _, err := c.AddProduct(testProduct()); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}
	if _, err := c.AddProduct(Product{Name: "Fone BT", Cost: d(t, "40"), Stock: Q(10), Category: "Acessórios"}); err != nil {
		t.Fatalf("AddProduct() error = %v", err)
	}

	var buf bytes.Buffer
	if err := ExportProducts(&buf, ';', c); err != nil {
		t.Fatalf("ExportProducts() error = %v", err)
	}

	back := testCatalog(t)
	result, err := ImportProducts(&buf, ';', back)
	if err != nil {
		t.Fatalf("ImportProducts() error = %v", err)
	}
	if result.Imported != 2 || result.Skipped != 0 {
		t.Fatalf("round-trip result = %+v", result)
	}
	if got := back.Products()[1]; got.Category != "Acessórios" || !got.Stock.Equal(Q(10)) {
		t.Errorf("round-trip product = %+v", got)
	}
}
