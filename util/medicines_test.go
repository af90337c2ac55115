package util

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineCatalog_Search(t *testing.T) {
	catalog := NewMedicineCatalog([]CatalogMedicine{
		{Name: "Paracetamol 500mg"},
		{Name: "Amoxicillin 250mg"},
		{Name: "paracetamol syrup"},
		{Name: "Ibuprofen"},
	})

	got := catalog.Search("PARA")
	require.Len(t, got, 2)
	assert.Equal(t, "Paracetamol 500mg", got[0].Name)

	assert.Len(t, catalog.Search("cillin"), 1)
	assert.Empty(t, catalog.Search("zzz"))
	assert.Empty(t, catalog.Search("   "))

	// memoized result is returned on the second call
	assert.Equal(t, got, catalog.Search("para"))
}

func TestMedicineCatalog_CapsResults(t *testing.T) {
	items := make([]CatalogMedicine, 50)
	for i := range items {
		items[i] = CatalogMedicine{Name: fmt.Sprintf("Vitamin %02d", i)}
	}
	catalog := NewMedicineCatalog(items)

	assert.Len(t, catalog.Search("vitamin"), MaxMedicineResults)
	assert.Equal(t, 50, catalog.Len())
}

func TestLoadMedicineCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medicines.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Cetirizine","form":"tablet"}]`), 0o600))

	catalog, err := LoadMedicineCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	empty, err := LoadMedicineCatalog(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = LoadMedicineCatalog(path)
	assert.Error(t, err)
}
