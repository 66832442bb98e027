package methodology

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `{
  "methodologies": [
    {
      "id": "VM0042",
      "name": "Improved Agricultural Land Management",
      "standard": "Verra",
      "project_types": ["agriculture"],
      "countries": ["us", "br"],
      "min_scale": 20,
      "max_scale": 0,
      "technologies": ["cover crops"],
      "requirements": ["Baseline soil sampling"],
      "exclusions": ["Drained peat soils"]
    }
  ]
}`

const yamlCatalog = `
methodologies:
  - id: CAR-GRASS
    name: Grassland Project Protocol
    standard: Climate Action Reserve
    project_types: [grassland]
    countries: [us]
    min_scale: 40
    max_scale: 100000
    requirements:
      - Land ownership documentation
    exclusions:
      - Wetland areas
    monitoring_requirements:
      - Annual attestation
`

func TestDecodeCatalogJSON(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(jsonCatalog), CatalogFormatJSON)
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())

	m, ok := catalog.ByID("VM0042")
	require.True(t, ok)
	assert.Equal(t, StandardVerra, m.Standard)
	assert.Equal(t, 20.0, m.MinScale)
	assert.Equal(t, []string{"cover crops"}, m.Technologies)
}

func TestDecodeCatalogYAML(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(yamlCatalog), CatalogFormatYAML)
	require.NoError(t, err)

	m, ok := catalog.ByID("CAR-GRASS")
	require.True(t, ok)
	assert.Equal(t, StandardClimateActionReserve, m.Standard)
	assert.Equal(t, []string{"Annual attestation"}, m.MonitoringRequirements)
}

func TestDecodeCatalogEmptyYAML(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(""), CatalogFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Len())
}

func TestDecodeCatalogErrors(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader(`{"methodologies": [{"id": "X", "standard": "Plan Vivo"}]}`), CatalogFormatJSON)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = DecodeCatalog(strings.NewReader(`{"methodologies": [{"id": "X", "colour": "green"}]}`), CatalogFormatJSON)
	assert.Error(t, err)

	_, err = DecodeCatalog(strings.NewReader(`{}`), CatalogFormat("toml"))
	assert.Error(t, err)
}

func TestCatalogFormatFromPath(t *testing.T) {
	format, err := CatalogFormatFromPath("/etc/portal/catalog.JSON")
	require.NoError(t, err)
	assert.Equal(t, CatalogFormatJSON, format)

	format, err = CatalogFormatFromPath("catalog.yml")
	require.NoError(t, err)
	assert.Equal(t, CatalogFormatYAML, format)

	_, err = CatalogFormatFromPath("catalog.csv")
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Len(), catalog.Len())

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o644))

	catalog, err = LoadCatalog(path)
	require.NoError(t, err)
	m, ok := catalog.ByID("CAR-GRASS")
	require.True(t, ok)
	assert.Equal(t, StandardClimateActionReserve, m.Standard)

	_, err = LoadCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"methodologies":[{"id":"X","standard":"Plan Vivo"}]}`), 0o644))
	_, err = LoadCatalog(bad)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}
