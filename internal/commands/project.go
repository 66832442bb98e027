package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"carbon-scribe/project-portal/methodology-engine/internal/matching/export"
	"carbon-scribe/project-portal/methodology-engine/internal/methodology"
)

const formatJSON = "json"

// outputOptions are shared by commands that emit results
type outputOptions struct {
	format string
	output string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatJSON, "Output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write to a file instead of stdout")
}

// readProject decodes a descriptor from the named file, or stdin for "" and "-"
func readProject(cmd *cobra.Command, args []string) (methodology.ProjectDescriptor, error) {
	var project methodology.ProjectDescriptor

	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return project, fmt.Errorf("failed to open project file: %w", err)
		}
		defer f.Close()
		r = f
	}

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&project); err != nil {
		return project, fmt.Errorf("failed to decode project descriptor: %w", err)
	}
	return project, nil
}

// write emits value as indented JSON, or table in a spreadsheet format
func (o *outputOptions) write(cmd *cobra.Command, value interface{}, sheet string, table export.Table) (err error) {
	var format export.Format
	if o.format != formatJSON {
		if format, err = export.ParseFormat(o.format); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if o.output != "" {
		f, createErr := os.Create(o.output)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if o.format == formatJSON {
		return encodeJSON(w, value)
	}
	return export.Write(w, format, sheet, table)
}

func encodeJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
