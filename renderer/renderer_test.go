package renderer

import (
	"strings"
	"testing"

	"github.com/sactorium/sactorium"
	"github.com/shopspring/decimal"
)

func TestBreakdown(t *testing.T) {
	b, err := sactorium.Calculate(sactorium.CostInput{
		DeclaredCost: decimal.NewFromInt(100),
		Weight:       decimal.NewFromInt(10),
		Quantity:     5,
		USDRate:      decimal.NewFromFloat(5.50),
		BrokerFee:    decimal.NewFromInt(50),
	}, sactorium.NCMRecord{
		Code:        "85171231",
		Description: "Celulares",
		Taxes: []sactorium.TaxEntry{
			{Name: "Imposto Importação", Rate: decimal.NewFromInt(16), Kind: sactorium.KindPercent},
		},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	md := Breakdown(b)
	for _, want := range []string{"NCM 85171231", "Imposto Importação", "IVA (10%)", "Custo unitário"} {
		if !strings.Contains(md, want) {
			t.Errorf("Breakdown() misses %q:\n%s", want, md)
		}
	}
}

func TestProducts(t *testing.T) {
	products := []sactorium.Product{
		{ID: 1, Name: "Fone BT", Category: "Acessórios", Cost: decimal.NewFromInt(40), Stock: sactorium.Q(10)},
	}

	plain := Products(products, decimal.Zero)
	if strings.Contains(plain, "Preço") {
		t.Errorf("Products() without margin shows a price column:\n%s", plain)
	}
	priced := Products(products, decimal.NewFromInt(30))
	if !strings.Contains(priced, "Preço (30%)") {
		t.Errorf("Products() with margin misses the price column:\n%s", priced)
	}
	if !strings.Contains(priced, "Fone BT") {
		t.Errorf("Products() misses the product row:\n%s", priced)
	}
}

func TestNCMTableRowPerRecord(t *testing.T) {
	s := sactorium.NewTaxSchedule()
	md := NCMTable(s.All())
	rows := strings.Count(md, "\n") - 2 // header and separator
	if rows != len(s.All()) {
		t.Errorf("NCMTable() rows = %d, want %d", rows, len(s.All()))
	}
}
