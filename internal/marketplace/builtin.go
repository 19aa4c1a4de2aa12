package marketplace

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var builtinCatalogData []byte

// catalogFile is the on-disk layout of a catalog document.
type catalogFile struct {
	Services map[string]Entry `yaml:"services"`
	Agents   map[string]Entry `yaml:"agents"`
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	c, err := Load(builtinCatalogData)
	if err != nil {
		return nil, fmt.Errorf("failed to load builtin marketplace catalog: %w", err)
	}
	return c, nil
}

// Load parses a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(file.Services, file.Agents)
}
