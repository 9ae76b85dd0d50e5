package sactorium

import "github.com/shopspring/decimal"

// seedSchedule builds the initial store: the NCM codes most commonly
// imported through Ciudad del Este and the Paraguay customs defaults.
func seedSchedule() *TaxSchedule {
	return &TaxSchedule{
		ncms: []NCMRecord{
			// Eletrônicos
			seedNCM("85171231", "Telefones móveis (celulares) - smartphones", "Eletrônicos",
				"Produtos mais comuns via Paraguai", 16, 15, 9.25, 18),
			seedNCM("85171219", "Telefones móveis (celulares) - outros", "Eletrônicos",
				"", 16, 15, 9.25, 18),
			seedNCM("85285290", "Monitores e projetores de vídeo", "Eletrônicos",
				"", 16, 10, 9.25, 18),
			seedNCM("84713020", "Computadores portáteis (notebooks)", "Informática",
				"IPI zero conforme lei", 16, 0, 9.25, 18),
			seedNCM("84713090", "Computadores - outros", "Informática",
				"", 16, 0, 9.25, 18),

			// Acessórios
			seedNCM("85444290", "Cabos para informática/eletrônicos", "Acessórios",
				"", 16, 5, 9.25, 18),
			seedNCM("85177000", "Partes de telefones (capas, película, etc)", "Acessórios",
				"", 16, 15, 9.25, 18),
			seedNCM("85183000", "Fones de ouvido/microfones", "Acessórios",
				"", 16, 10, 9.25, 18),

			// Brinquedos
			seedNCM("95030000", "Brinquedos de madeira", "Brinquedos",
				"Tributação mais alta", 20, 0, 9.25, 18),
			seedNCM("95049000", "Brinquedos - outros", "Brinquedos",
				"", 20, 0, 9.25, 18),

			// Vestuário e calçados
			seedNCM("61091000", "Camisetas de malha - algodão", "Vestuário",
				"Tributação muito alta - cuidado", 35, 0, 9.25, 18),
			seedNCM("64039900", "Calçados - outros", "Calçados",
				"Tributação muito alta", 35, 0, 9.25, 18),

			// Ferramentas
			seedNCM("82019000", "Ferramentas manuais - outras", "Ferramentas",
				"", 16, 5, 9.25, 18),

			// Cosméticos
			seedNCM("33049900", "Produtos de beleza - outros", "Cosméticos",
				"", 16, 0, 9.25, 18),

			// Genérico
			seedNCM("00000000", "NCM Genérico - Definir taxas manualmente", "Genérico",
				"Use para produtos sem NCM específico", 16, 10, 9.25, 18),
		},
		customs: CustomsDefaults{
			FreightRate:   decimal.NewFromFloat(8.0),
			InsuranceRate: decimal.NewFromFloat(0.3),
			BrokerFee:     decimal.NewFromFloat(300.00),
			OtherCosts:    decimal.NewFromFloat(150.00),
			USDRate:       decimal.NewFromFloat(5.50),
			Notes:         "Taxas baseadas em importação via Paraguai - Ciudad del Este",
		},
	}
}

// seedNCM builds a record with the four standard Brazilian import taxes.
func seedNCM(code, description, category, notes string, ii, ipi, pis, icms float64) NCMRecord {
	return NCMRecord{
		Code:        code,
		Description: description,
		Category:    category,
		Taxes: []TaxEntry{
			{Name: "Imposto Importação", Rate: decimal.NewFromFloat(ii), Kind: KindPercent},
			{Name: "IPI", Rate: decimal.NewFromFloat(ipi), Kind: KindPercent},
			{Name: "PIS/COFINS", Rate: decimal.NewFromFloat(pis), Kind: KindPercent},
			{Name: "ICMS", Rate: decimal.NewFromFloat(icms), Kind: KindPercent},
		},
		Notes: notes,
	}
}
