package sactorium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the tax schedule as a single JSON document:
//
//	{ "ncms": [ ... ], "customs": { ... } }
//
// Each record encodes its taxes under fixed slot keys ("tax1".."tax5") for
// compatibility with files written by earlier versions of the tool. Older
// files that predate the slots and carry flat tax fields (import_tax, ipi,
// pis_cofins, icms) are migrated once at load time.

// jtax is the wire form of a tax entry.
type jtax struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
	Type string          `json:"type"`
}

// jncm is the wire form of an NCM record, accepting both the slot map and
// the legacy flat tax fields.
type jncm struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Taxes       map[string]jtax `json:"taxes"`
	Notes       string          `json:"notes"`

	// legacy flat fields, pre-slot schema
	ImportTax *decimal.Decimal `json:"import_tax"`
	IPI       *decimal.Decimal `json:"ipi"`
	PisCofins *decimal.Decimal `json:"pis_cofins"`
	ICMS      *decimal.Decimal `json:"icms"`
}

// jcustoms is the wire form of the customs defaults.
type jcustoms struct {
	FreightRate   decimal.Decimal `json:"default_freight_rate"`
	InsuranceRate decimal.Decimal `json:"default_insurance_rate"`
	BrokerFee     decimal.Decimal `json:"default_broker_fee"`
	OtherCosts    decimal.Decimal `json:"default_other_costs"`
	USDRate       decimal.Decimal `json:"usd_rate"`
	Notes         string          `json:"notes,omitempty"`
}

type jscheduleFile struct {
	Ncms    []jncm   `json:"ncms"`
	Customs jcustoms `json:"customs"`
}

// DecodeTaxSchedule reads a schedule from its JSON form, migrating legacy
// flat tax fields into the bounded slot sequence.
func DecodeTaxSchedule(r io.Reader) (*TaxSchedule, error) {
	var jfile jscheduleFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&jfile); err != nil {
		return nil, fmt.Errorf("cannot parse tax schedule: %w", err)
	}

	s := &TaxSchedule{}
	for _, jr := range jfile.Ncms {
		rec, err := decodeNCM(jr)
		if err != nil {
			return nil, err
		}
		if s.indexOf(rec.Code) >= 0 {
			return nil, fmt.Errorf("format error: ncm %q is defined twice", rec.Code)
		}
		s.ncms = append(s.ncms, rec)
	}
	s.customs = CustomsDefaults{
		FreightRate:   jfile.Customs.FreightRate,
		InsuranceRate: jfile.Customs.InsuranceRate,
		BrokerFee:     jfile.Customs.BrokerFee,
		OtherCosts:    jfile.Customs.OtherCosts,
		USDRate:       jfile.Customs.USDRate,
		Notes:         jfile.Customs.Notes,
	}
	return s, nil
}

func decodeNCM(jr jncm) (NCMRecord, error) {
	rec := NCMRecord{
		Code:        jr.Code,
		Description: jr.Description,
		Category:    jr.Category,
		Notes:       jr.Notes,
	}

	if len(jr.Taxes) > 0 {
		for i := 1; i <= MaxTaxSlots; i++ {
			jt, ok := jr.Taxes[fmt.Sprintf("tax%d", i)]
			if !ok {
				continue
			}
			kind, err := ParseTaxKind(jt.Type)
			if err != nil {
				return NCMRecord{}, fmt.Errorf("ncm %q slot %d: %w", jr.Code, i, err)
			}
			entry := TaxEntry{Name: jt.Name, Rate: jt.Rate, Kind: kind}
			if entry.IsZero() {
				continue
			}
			rec.Taxes = append(rec.Taxes, entry)
		}
		return rec, nil
	}

	// Legacy schema: flat fields with the original migration fallbacks.
	rec.Taxes = []TaxEntry{
		{Name: "Imposto Importação", Rate: legacyRate(jr.ImportTax, 16), Kind: KindPercent},
		{Name: "IPI", Rate: legacyRate(jr.IPI, 0), Kind: KindPercent},
		{Name: "PIS/COFINS", Rate: legacyRate(jr.PisCofins, 9.25), Kind: KindPercent},
		{Name: "ICMS", Rate: legacyRate(jr.ICMS, 18), Kind: KindPercent},
	}
	return rec, nil
}

func legacyRate(v *decimal.Decimal, fallback float64) decimal.Decimal {
	if v == nil || v.IsZero() {
		return decimal.NewFromFloat(fallback)
	}
	return *v
}

// EncodeTaxSchedule writes the schedule in its canonical indented JSON
// form, fields in a stable order and all five tax slots materialized.
func EncodeTaxSchedule(w io.Writer, s *TaxSchedule) error {
	var doc jsonObjectWriter

	records := make([]json.RawMessage, 0, len(s.ncms))
	for _, r := range s.ncms {
		raw, err := encodeNCM(r)
		if err != nil {
			return fmt.Errorf("cannot marshal ncm %q: %w", r.Code, err)
		}
		records = append(records, raw)
	}
	doc.Append("ncms", records)
	doc.Append("customs", jcustoms{
		FreightRate:   s.customs.FreightRate,
		InsuranceRate: s.customs.InsuranceRate,
		BrokerFee:     s.customs.BrokerFee,
		OtherCosts:    s.customs.OtherCosts,
		USDRate:       s.customs.USDRate,
		Notes:         s.customs.Notes,
	})

	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal tax schedule: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("cannot format tax schedule: %w", err)
	}
	indented.WriteByte('\n')
	_, err = w.Write(indented.Bytes())
	return err
}

// encodeNCM marshals one record with a stable field order. Unconfigured
// slots are written as empty percent entries, as the original files did.
func encodeNCM(r NCMRecord) (json.RawMessage, error) {
	var taxes jsonObjectWriter
	for i := 1; i <= MaxTaxSlots; i++ {
		entry := TaxEntry{Kind: KindPercent}
		if i <= len(r.Taxes) {
			entry = r.Taxes[i-1]
		}
		taxes.Append(fmt.Sprintf("tax%d", i), jtax{
			Name: entry.Name,
			Rate: entry.Rate,
			Type: entry.Kind.String(),
		})
	}

	var obj jsonObjectWriter
	obj.Append("code", r.Code)
	obj.Append("description", r.Description)
	obj.Append("category", r.Category)
	obj.Append("taxes", &taxes)
	obj.Append("notes", r.Notes)
	return obj.MarshalJSON()
}

// OpenTaxSchedule loads the schedule from path. A missing file yields the
// seeded schedule bound to that path; it is written on the first mutation.
func OpenTaxSchedule(path string) (*TaxSchedule, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		s := seedSchedule()
		s.path = path
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open tax schedule %q: %w", path, err)
	}
	defer f.Close()

	s, err := DecodeTaxSchedule(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load tax schedule %q: %w", path, err)
	}
	s.path = path
	return s, nil
}

// saveTaxScheduleFile persists the whole store atomically: the document is
// written to a temporary file in the same directory, then renamed over the
// previous one.
func saveTaxScheduleFile(path string, s *TaxSchedule) error {
	return atomicWrite(path, func(w io.Writer) error {
		return EncodeTaxSchedule(w, s)
	})
}

// atomicWrite writes a file via temp-then-rename so a failed write never
// corrupts the previous content. Failures are reported as ErrPersistence.
func atomicWrite(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory %q: %v", ErrPersistence, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: cannot create temp file for %q: %v", ErrPersistence, path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: cannot write %q: %v", ErrPersistence, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: cannot close temp file for %q: %v", ErrPersistence, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: cannot replace %q: %v", ErrPersistence, path, err)
	}
	return nil
}
