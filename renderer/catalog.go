package renderer

import (
	"github.com/sactorium/sactorium"
	"github.com/shopspring/decimal"
)

// Products generates the markdown product listing. When margin is
// positive an extra column shows the resale price at that margin.
func Products(products []sactorium.Product, margin decimal.Decimal) string {
	r := newBuilder()
	withPrice := margin.IsPositive()

	r.Printf("| ID | Produto | Categoria | NCM | Custo | Estoque |")
	if withPrice {
		r.Printf(" Preço (%s%%) |", margin)
	}
	r.Printf("\n")
	r.Printf("|---:|:---|:---|:---|---:|---:|")
	if withPrice {
		r.Printf("---:|")
	}
	r.Printf("\n")

	for _, p := range products {
		cost := sactorium.M(p.Cost, "BRL")
		r.Printf("| %d | %s | %s | %s | %s | %s |", p.ID, p.Name, p.Category, p.NCMCode, cost, p.Stock)
		if withPrice {
			r.Printf(" %s |", p.PriceWithMargin(margin))
		}
		r.Printf("\n")
	}
	return r.String()
}

// Sales generates the markdown sales ledger, most recent first.
func Sales(views []sactorium.SaleView) string {
	r := newBuilder()
	r.Printf("| ID | Data | Produto | Qtd | Preço unit. | Total | Cliente |\n")
	r.Printf("|---:|:---|:---|---:|---:|---:|:---|\n")
	for _, v := range views {
		unit := sactorium.M(v.UnitPrice, "BRL")
		total := sactorium.M(v.Total, "BRL")
		r.Printf("| %d | %s | %s | %s | %s | %s | %s |\n",
			v.ID, v.Date.Format("2006-01-02"), v.ProductName, v.Quantity, unit, total, v.Client)
	}
	return r.String()
}

// ImportReport generates the markdown summary of one bulk import.
func ImportReport(res sactorium.ImportResult) string {
	r := newBuilder()
	r.Printf("## Importação de produtos\n\n")
	r.Printf("* Importados: %d\n", res.Imported)
	r.Printf("* Ignorados: %d\n", res.Skipped)
	if len(res.Errors) > 0 {
		r.Printf("\n### Linhas ignoradas\n\n")
		for _, msg := range res.Errors {
			r.Printf("* %s\n", msg)
		}
	}
	return r.String()
}
