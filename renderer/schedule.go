package renderer

import (
	"github.com/sactorium/sactorium"
)

// NCMTable generates a markdown table of NCM records, one row per code.
func NCMTable(records []sactorium.NCMRecord) string {
	r := newBuilder()
	r.Printf("| NCM | Descrição | Categoria | Impostos |\n")
	r.Printf("|:---|:---|:---|---:|\n")
	for _, rec := range records {
		r.Printf("| %s | %s | %s | %d |\n", rec.Code, rec.Description, rec.Category, len(rec.ActiveTaxes()))
	}
	return r.String()
}

// NCMDetail generates the full markdown view of one record, tax slots
// included.
func NCMDetail(rec sactorium.NCMRecord) string {
	r := newBuilder()
	r.Printf("## NCM %s\n\n", rec.Code)
	r.Printf("%s\n\n", rec.Description)
	r.Printf("* Categoria: %s\n", rec.Category)
	if rec.Notes != "" {
		r.Printf("* Observações: %s\n", rec.Notes)
	}
	r.Printf("\n")

	taxes := rec.ActiveTaxes()
	if len(taxes) == 0 {
		r.Printf("Sem impostos configurados.\n")
		return r.String()
	}
	r.Printf("| Imposto | Alíquota |\n")
	r.Printf("|:---|---:|\n")
	for _, t := range taxes {
		switch t.Kind {
		case sactorium.KindFixed:
			r.Printf("| %s | %s/un |\n", t.Name, t.Rate)
		default:
			r.Printf("| %s | %s%% |\n", t.Name, t.Rate)
		}
	}
	return r.String()
}

// Defaults generates the markdown view of the customs defaults.
func Defaults(d sactorium.CustomsDefaults) string {
	r := newBuilder()
	r.Printf("## Padrões de importação\n\n")
	r.Printf("| Parâmetro | Valor |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Frete (USD/kg) | %s |\n", d.FreightRate)
	r.Printf("| Seguro (%%) | %s |\n", d.InsuranceRate)
	r.Printf("| Despachante (BRL) | %s |\n", d.BrokerFee)
	r.Printf("| Outros custos (BRL) | %s |\n", d.OtherCosts)
	r.Printf("| Câmbio USD | %s |\n", d.USDRate)
	if d.Notes != "" {
		r.Printf("\n%s\n", d.Notes)
	}
	return r.String()
}
