package renderer

import (
	"github.com/sactorium/sactorium"
)

// Breakdown generates the markdown report of one import calculation: the
// CIF build-up, the tax lines, the landed total and the suggested prices.
func Breakdown(b *sactorium.Breakdown) string {
	r := newBuilder()

	r.Printf("## Custo de Importação (NCM %s)\n\n", b.NCMCode)
	r.Printf("| Etapa | Valor |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Seguro | %s |\n", b.Insurance)
	r.Printf("| Frete | %s |\n", b.Freight)
	r.Printf("| CIF (USD) | %s |\n", b.CIFUSD)
	r.Printf("| CIF (BRL) | %s |\n", b.CIFBRL)
	if !b.CIFPYG.IsZero() {
		r.Printf("| CIF (PYG) | %s |\n", b.CIFPYG)
	}
	r.Printf("\n")

	if len(b.TaxLines) > 0 {
		r.Printf("### Impostos NCM\n\n")
		r.Printf("| Imposto | Alíquota | Valor |\n")
		r.Printf("|:---|---:|---:|\n")
		for _, l := range b.TaxLines {
			switch l.Kind {
			case sactorium.KindFixed:
				r.Printf("| %s | %s/un | %s |\n", l.Name, l.Rate, l.Value)
			default:
				r.Printf("| %s | %s%% | %s |\n", l.Name, l.Rate, l.Value)
			}
		}
		r.Printf("\n")
	}

	r.Printf("### Total\n\n")
	r.Printf("| | Valor |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Impostos NCM | %s |\n", b.TotalTax)
	r.Printf("| IVA (10%%) | %s |\n", b.IVA)
	r.Printf("| Despachante | %s |\n", b.BrokerFee)
	r.Printf("| Outros custos | %s |\n", b.OtherCosts)
	r.Printf("| **Custo total** | **%s** |\n", b.Landed)
	r.Printf("| **Custo unitário** | **%s** |\n", b.UnitCost)
	if !b.RealUnitCost.IsZero() {
		r.Printf("| Custo unitário real | %s |\n", b.RealUnitCost)
	}
	r.Printf("\n")

	r.Printf("### Preços sugeridos\n\n")
	r.Printf("| Canal | Preço | Lucro |\n")
	r.Printf("|:---|---:|---:|\n")
	r.Printf("| Venda direta | %s | %s |\n", b.DirectPrice, b.DirectProfit)
	r.Printf("| Marketplace | %s | %s (%s) |\n", b.MarketPrice, b.MarketProfit, b.MarketMargin)
	return r.String()
}

// FeeOptions generates the markdown comparison of marketplace commission
// tiers, flagging the most profitable one.
func FeeOptions(options []sactorium.FeeOption) string {
	r := newBuilder()
	r.Printf("## Comparação de comissões\n\n")
	r.Printf("| Comissão | Tarifa | Lucro líquido | Margem | |\n")
	r.Printf("|---:|---:|---:|---:|:---|\n")
	for _, o := range options {
		mark := ""
		if o.Best {
			mark = "✓ melhor opção"
		}
		r.Printf("| %s | %s | %s | %s | %s |\n", o.Commission, o.Fee, o.Net, o.Margin, mark)
	}
	return r.String()
}
