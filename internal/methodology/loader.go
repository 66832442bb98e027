package methodology

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogFormat is the encoding of a catalog document
type CatalogFormat string

const (
	CatalogFormatJSON CatalogFormat = "json"
	CatalogFormatYAML CatalogFormat = "yaml"
)

// catalogDocument is the on-disk layout: a top-level methodologies list
type catalogDocument struct {
	Methodologies []Methodology `json:"methodologies" yaml:"methodologies"`
}

// CatalogFormatFromPath infers the catalog format from a file extension
func CatalogFormatFromPath(path string) (CatalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return CatalogFormatJSON, nil
	case ".yaml", ".yml":
		return CatalogFormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// DecodeCatalog reads a catalog document and validates it with NewCatalog
func DecodeCatalog(r io.Reader, format CatalogFormat) (*Catalog, error) {
	var doc catalogDocument

	switch format {
	case CatalogFormatJSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON catalog: %w", err)
		}
	case CatalogFormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode YAML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	return NewCatalog(doc.Methodologies)
}

// LoadCatalog reads a catalog file, inferring the format from its extension.
// An empty path returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	format, err := CatalogFormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	catalog, err := DecodeCatalog(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return catalog, nil
}
