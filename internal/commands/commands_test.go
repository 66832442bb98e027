package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

const testCatalog = `
methodologies:
  - id: VM-TEST
    name: Test Forestry
    standard: Verra
    project_types: [forestry]
    countries: [us]
    min_scale: 50
    max_scale: 100000
    requirements:
      - Monitoring plan
  - id: GS-TEST
    name: Test Cookstoves
    standard: Gold Standard
    project_types: [cookstoves]
    countries: [ke]
`

const testProject = `{"project_type":"forestry","country":"us","land_area":150}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchFromStdin(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, testProject, "match", "--catalog", catalog)
	require.NoError(t, err)

	var matches []methodology.MethodologyMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "VM-TEST", matches[0].MethodologyID)
	assert.Equal(t, 70.0, matches[0].MatchScore)
}

func TestMatchFromFilePrecise(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)
	project := writeFile(t, "project.json", testProject)

	out, err := run(t, "", "match", project, "--mode", "precise", "--catalog", catalog)
	require.NoError(t, err)

	var matches []methodology.MethodologyMatch
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.Equal(t, 78.0, matches[0].MatchScore)
	assert.Equal(t, []string{"Address: Monitoring plan"}, matches[0].Improvements)
}

func TestMatchCSV(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, testProject, "match", "-", "--catalog", catalog, "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "methodology_id", records[0][0])
	assert.Equal(t, "VM-TEST", records[1][0])
	assert.Equal(t, "70", records[1][3])
}

func TestFeasibilityXLSXToFile(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)
	output := filepath.Join(t.TempDir(), "feasibility.xlsx")

	out, err := run(t, testProject, "feasibility", "--catalog", catalog, "--format", "xlsx", "--output", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("feasibility", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Verra", value)
}

func TestFeasibilityDefaultCatalog(t *testing.T) {
	out, err := run(t, testProject, "feasibility")
	require.NoError(t, err)

	var results map[string]methodology.FeasibilityResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Contains(t, results, methodology.OverallKey)
	assert.Len(t, results, 5)
}

func TestCatalogCommands(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, "", "catalog", "list", "--catalog", catalog, "--standard", "goldstandard")
	require.NoError(t, err)
	var list []methodology.Methodology
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "GS-TEST", list[0].ID)

	out, err = run(t, "", "catalog", "show", "VM-TEST", "--catalog", catalog)
	require.NoError(t, err)
	var m methodology.Methodology
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "Test Forestry", m.Name)

	_, err = run(t, "", "catalog", "show", "missing", "--catalog", catalog)
	assert.Error(t, err)
}

func TestCommandErrors(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", testCatalog)

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"invalid mode", testProject, []string{"match", "--mode", "fuzzy", "--catalog", catalog}},
		{"unknown field", `{"project_kind":"forestry"}`, []string{"match", "--catalog", catalog}},
		{"unknown format", testProject, []string{"match", "--format", "pdf", "--catalog", catalog}},
		{"missing catalog", testProject, []string{"match", "--catalog", filepath.Join(t.TempDir(), "none.yaml")}},
		{"missing project file", "", []string{"feasibility", filepath.Join(t.TempDir(), "none.json")}},
		{"unknown standard", "", []string{"catalog", "list", "--standard", "plan vivo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "matchctl v"+Version+"\n", out)
}
