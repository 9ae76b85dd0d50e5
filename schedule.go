package sactorium

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// CustomsDefaults is the singleton record of Paraguay-specific default
// rates used to prefill a cost input bundle.
type CustomsDefaults struct {
	FreightRate   decimal.Decimal
	InsuranceRate decimal.Decimal
	BrokerFee     decimal.Decimal
	OtherCosts    decimal.Decimal
	USDRate       decimal.Decimal
	Notes         string
}

// TaxSchedule owns the set of NCM records and the customs defaults. It is
// the single source of truth the calculator reads from.
//
// Records keep their insertion order, which is also the persisted order.
// Every mutation persists the whole store synchronously before returning;
// on a persistence failure the in-memory change is rolled back and the
// error is returned to the caller.
type TaxSchedule struct {
	path    string // empty for an in-memory store
	ncms    []NCMRecord
	customs CustomsDefaults
}

// NewTaxSchedule creates an in-memory schedule preloaded with the common
// Paraguay-import NCM records and customs defaults.
func NewTaxSchedule() *TaxSchedule {
	return seedSchedule()
}

// FindByCode returns the record with this exact code.
func (s *TaxSchedule) FindByCode(code string) (NCMRecord, error) {
	i := s.indexOf(code)
	if i < 0 {
		return NCMRecord{}, fmt.Errorf("ncm %q: %w", code, ErrNotFound)
	}
	return s.ncms[i], nil
}

// Search returns records whose description or category contains the query,
// case-insensitively. Codes are deliberately not matched here: code lookup
// is exact-match only, via FindByCode.
func (s *TaxSchedule) Search(query string) []NCMRecord {
	term := strings.ToLower(query)
	var found []NCMRecord
	for _, r := range s.ncms {
		if strings.Contains(strings.ToLower(r.Description), term) ||
			strings.Contains(strings.ToLower(r.Category), term) {
			found = append(found, r)
		}
	}
	return found
}

// All returns every record in insertion order.
func (s *TaxSchedule) All() []NCMRecord {
	return slices.Clone(s.ncms)
}

// ByCategory returns the records of one category, in insertion order.
func (s *TaxSchedule) ByCategory(category string) []NCMRecord {
	var found []NCMRecord
	for _, r := range s.ncms {
		if r.Category == category {
			found = append(found, r)
		}
	}
	return found
}

// Categories returns the distinct category names, alphabetically ordered.
// It is recomputed on every call since records change.
func (s *TaxSchedule) Categories() []string {
	visited := make(map[string]struct{})
	var categories []string
	for _, r := range s.ncms {
		if _, ok := visited[r.Category]; !ok {
			visited[r.Category] = struct{}{}
			categories = append(categories, r.Category)
		}
	}
	slices.Sort(categories)
	return categories
}

// Add validates and appends a new record, then persists the store.
// The category defaults to "Outros" when omitted.
func (s *TaxSchedule) Add(r NCMRecord) (NCMRecord, error) {
	if err := r.validate(); err != nil {
		return NCMRecord{}, err
	}
	if s.indexOf(r.Code) >= 0 {
		return NCMRecord{}, fmt.Errorf("ncm %q: %w", r.Code, ErrDuplicateCode)
	}
	r = r.normalize()
	s.ncms = append(s.ncms, r)
	if err := s.save(); err != nil {
		s.ncms = s.ncms[:len(s.ncms)-1]
		return NCMRecord{}, err
	}
	return r, nil
}

// NCMPatch holds the fields Update merges into an existing record.
// Nil fields are left untouched; the code itself is immutable.
type NCMPatch struct {
	Description *string
	Category    *string
	Notes       *string
	Taxes       *[]TaxEntry
}

// Update shallow-merges the patch into the record with this code and
// persists the store.
func (s *TaxSchedule) Update(code string, patch NCMPatch) (NCMRecord, error) {
	i := s.indexOf(code)
	if i < 0 {
		return NCMRecord{}, fmt.Errorf("ncm %q: %w", code, ErrNotFound)
	}
	merged := s.ncms[i]
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}
	if patch.Taxes != nil {
		merged.Taxes = slices.Clone(*patch.Taxes)
	}
	if err := merged.validate(); err != nil {
		return NCMRecord{}, err
	}
	merged = merged.normalize()

	previous := s.ncms[i]
	s.ncms[i] = merged
	if err := s.save(); err != nil {
		s.ncms[i] = previous
		return NCMRecord{}, err
	}
	return merged, nil
}

// Delete removes the record with this code and persists the store.
func (s *TaxSchedule) Delete(code string) error {
	i := s.indexOf(code)
	if i < 0 {
		return fmt.Errorf("ncm %q: %w", code, ErrNotFound)
	}
	previous := s.ncms[i]
	s.ncms = slices.Delete(s.ncms, i, i+1)
	if err := s.save(); err != nil {
		s.ncms = slices.Insert(s.ncms, i, previous)
		return err
	}
	return nil
}

// Defaults returns the customs defaults.
func (s *TaxSchedule) Defaults() CustomsDefaults {
	return s.customs
}

// DefaultsPatch holds the fields UpdateDefaults merges into the customs
// defaults. Nil fields are left untouched.
type DefaultsPatch struct {
	FreightRate   *decimal.Decimal
	InsuranceRate *decimal.Decimal
	BrokerFee     *decimal.Decimal
	OtherCosts    *decimal.Decimal
	USDRate       *decimal.Decimal
	Notes         *string
}

// UpdateDefaults merges the patch into the customs defaults and persists
// the store.
func (s *TaxSchedule) UpdateDefaults(patch DefaultsPatch) (CustomsDefaults, error) {
	merged := s.customs
	if patch.FreightRate != nil {
		merged.FreightRate = *patch.FreightRate
	}
	if patch.InsuranceRate != nil {
		merged.InsuranceRate = *patch.InsuranceRate
	}
	if patch.BrokerFee != nil {
		merged.BrokerFee = *patch.BrokerFee
	}
	if patch.OtherCosts != nil {
		merged.OtherCosts = *patch.OtherCosts
	}
	if patch.USDRate != nil {
		merged.USDRate = *patch.USDRate
	}
	if patch.Notes != nil {
		merged.Notes = *patch.Notes
	}

	previous := s.customs
	s.customs = merged
	if err := s.save(); err != nil {
		s.customs = previous
		return CustomsDefaults{}, err
	}
	return merged, nil
}

func (s *TaxSchedule) indexOf(code string) int {
	return slices.IndexFunc(s.ncms, func(r NCMRecord) bool { return r.Code == code })
}

// save persists the whole store. An in-memory store (empty path) is a
// no-op; the persistence itself lives in encode_schedule.go.
func (s *TaxSchedule) save() error {
	if s.path == "" {
		return nil
	}
	return saveTaxScheduleFile(s.path, s)
}

// Save rewrites the store file in canonical form.
func (s *TaxSchedule) Save() error {
	return s.save()
}
