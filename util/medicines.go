package util

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// MaxMedicineResults caps a catalog search.
const MaxMedicineResults = 20

// CatalogMedicine is one entry of the medicine catalog.
type CatalogMedicine struct {
	Name         string `json:"name" example:"Paracetamol 500mg"`
	Manufacturer string `json:"manufacturer,omitempty" example:"Acme Pharma"`
	Form         string `json:"form,omitempty" example:"tablet"`
}

// MedicineCatalog serves case-insensitive substring searches over a static list.
type MedicineCatalog struct {
	items   []CatalogMedicine
	lowered []string
	results *cache.Cache
}

// NewMedicineCatalog builds a catalog sorted by name.
func NewMedicineCatalog(items []CatalogMedicine) *MedicineCatalog {
	sorted := append([]CatalogMedicine(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	lowered := make([]string, len(sorted))
	for i, m := range sorted {
		lowered[i] = strings.ToLower(m.Name)
	}
	return &MedicineCatalog{
		items:   sorted,
		lowered: lowered,
		results: cache.New(10*time.Minute, 30*time.Minute),
	}
}

// LoadMedicineCatalog reads a JSON array of medicines from path. A missing file yields an
// empty catalog.
func LoadMedicineCatalog(path string) (*MedicineCatalog, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		Log.WithField("path", path).Warn("medicine catalog not found, search will return no results")
		return NewMedicineCatalog(nil), nil
	}
	if err != nil {
		return nil, err
	}
	var items []CatalogMedicine
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse medicine catalog %s: %w", path, err)
	}
	return NewMedicineCatalog(items), nil
}

// Search returns up to MaxMedicineResults medicines whose name contains query.
func (m *MedicineCatalog) Search(query string) []CatalogMedicine {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []CatalogMedicine{}
	}
	if v, ok := m.results.Get(q); ok {
		return v.([]CatalogMedicine)
	}

	out := []CatalogMedicine{}
	for i, name := range m.lowered {
		if strings.Contains(name, q) {
			out = append(out, m.items[i])
			if len(out) == MaxMedicineResults {
				break
			}
		}
	}
	m.results.Set(q, out, cache.DefaultExpiration)
	return out
}

// Len returns the catalog size.
func (m *MedicineCatalog) Len() int {
	return len(m.items)
}
