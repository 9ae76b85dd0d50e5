package sactorium

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxTaxSlots is the maximum number of taxes configurable per NCM record.
const MaxTaxSlots = 5

// TaxKind defines how a tax rate applies to the customs value.
type TaxKind int

const (
	// KindPercent applies the rate against the CIF value in local currency.
	KindPercent TaxKind = iota
	// KindFixed applies the rate as an absolute amount per unit.
	KindFixed
)

func (k TaxKind) String() string {
	switch k {
	case KindPercent:
		return "percent"
	case KindFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseTaxKind parses a string into a TaxKind. The empty string parses as
// KindPercent, matching the legacy file format where the type was optional.
func ParseTaxKind(s string) (TaxKind, error) {
	switch s {
	case "percent", "":
		return KindPercent, nil
	case "fixed":
		return KindFixed, nil
	default:
		return 0, fmt.Errorf("unknown tax kind: %q", s)
	}
}

func (k TaxKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TaxKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTaxKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// TaxEntry is one configured tax on an NCM record.
type TaxEntry struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
	Kind TaxKind         `json:"type"`
}

// IsZero reports whether the entry is an unconfigured slot.
func (t TaxEntry) IsZero() bool {
	return t.Name == "" && t.Rate.IsZero()
}

// active reports whether the calculator should apply this entry. Matches
// the legacy behavior: a tax needs both a name and a positive rate.
func (t TaxEntry) active() bool {
	return t.Name != "" && t.Rate.IsPositive()
}

// NCMRecord is one Mercosur customs classification and its tax schedule.
type NCMRecord struct {
	Code        string
	Description string
	Category    string
	// Taxes is a bounded ordered sequence; unconfigured slots are absent.
	Taxes []TaxEntry
	Notes string
}

// ActiveTaxes returns the entries the calculator applies, in slot order.
func (r NCMRecord) ActiveTaxes() []TaxEntry {
	var active []TaxEntry
	for _, t := range r.Taxes {
		if t.active() {
			active = append(active, t)
		}
	}
	return active
}

// validate checks the record before it enters the store.
func (r NCMRecord) validate() error {
	if r.Code == "" || r.Description == "" {
		return fmt.Errorf("%w: code and description are required", ErrInvalidRecord)
	}
	for _, c := range r.Code {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: code %q must contain only digits", ErrInvalidRecord, r.Code)
		}
	}
	if len(r.Taxes) > MaxTaxSlots {
		return fmt.Errorf("%w: at most %d taxes per record, got %d", ErrInvalidRecord, MaxTaxSlots, len(r.Taxes))
	}
	for i, t := range r.Taxes {
		if t.Rate.IsNegative() {
			return fmt.Errorf("%w: tax %d (%s) has a negative rate", ErrInvalidRecord, i+1, t.Name)
		}
	}
	return nil
}

// normalize drops unconfigured slots and applies the default category.
func (r NCMRecord) normalize() NCMRecord {
	if r.Category == "" {
		r.Category = "Outros"
	}
	taxes := make([]TaxEntry, 0, len(r.Taxes))
	for _, t := range r.Taxes {
		if t.IsZero() {
			continue
		}
		taxes = append(taxes, t)
	}
	r.Taxes = taxes
	return r
}
