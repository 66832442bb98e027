package export

import (
	"fmt"
	"io"
	"strings"

	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a requested export format
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: must be %q or %q", value, FormatCSV, FormatXLSX)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Extension returns the file extension of the format
func (f Format) Extension() string {
	return string(f)
}

// Table is a header plus rows of cell values
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// MatchColumns are the columns of an exported match list
var MatchColumns = []string{"methodology_id", "name", "standard", "score", "eligible", "reasoning", "improvements"}

// FeasibilityColumns are the columns of an exported feasibility rollup
var FeasibilityColumns = []string{"standard", "eligible", "score", "best_methodology", "reasoning", "improvements"}

// MatchTable flattens ranked matches, preserving rank order
func MatchTable(matches []methodology.MethodologyMatch) Table {
	table := Table{Columns: MatchColumns, Rows: make([][]interface{}, 0, len(matches))}
	for _, m := range matches {
		table.Rows = append(table.Rows, []interface{}{
			m.MethodologyID,
			m.Name,
			string(m.Standard),
			m.MatchScore,
			m.Eligibility,
			m.Reasoning,
			strings.Join(m.Improvements, "; "),
		})
	}
	return table
}

// FeasibilityTable flattens a feasibility map in standard order, overall last
func FeasibilityTable(results map[string]methodology.FeasibilityResult) Table {
	table := Table{Columns: FeasibilityColumns}

	keys := make([]string, 0, len(methodology.Standards())+1)
	for _, std := range methodology.Standards() {
		keys = append(keys, std.Key())
	}
	keys = append(keys, methodology.OverallKey)

	for _, key := range keys {
		r, ok := results[key]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, []interface{}{
			r.Standard,
			r.Eligible,
			r.Score,
			r.BestMethodologyID,
			r.Reasoning,
			strings.Join(r.Improvements, "; "),
		})
	}
	return table
}

// Write encodes table to w in the given format. sheet names the XLSX sheet.
func Write(w io.Writer, format Format, sheet string, table Table) error {
	switch format {
	case FormatCSV:
		exporter := NewCSVExporter(w, DefaultCSVOptions())
		if err := exporter.WriteHeader(table.Columns); err != nil {
			return err
		}
		for _, row := range table.Rows {
			if err := exporter.WriteRow(row); err != nil {
				return err
			}
		}
		return exporter.Flush()
	case FormatXLSX:
		options := DefaultExcelOptions()
		options.SheetName = sheetName(sheet)
		exporter := NewExcelExporter(options)
		defer exporter.Close()

		if err := exporter.WriteHeader(table.Columns); err != nil {
			return err
		}
		if err := exporter.WriteRows(table.Rows); err != nil {
			return err
		}
		return exporter.WriteTo(w)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// sheetName trims a name to Excel's 31 character sheet limit
func sheetName(name string) string {
	if name == "" {
		return "Results"
	}
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
