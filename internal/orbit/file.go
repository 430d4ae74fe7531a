package orbit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk layout of a period table.
type tableFile struct {
	Reference string   `yaml:"reference"`
	Planets   []Period `yaml:"planets"`
}

// WriteTable writes a table to a YAML file
func WriteTable(t *Table, path string) error {
	data, err := yaml.Marshal(tableFile{
		Reference: t.Reference().Planet,
		Planets:   t.Periods(),
	})
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadTable reads and validates a table from a YAML file.
// The reference defaults to Earth when the file omits it.
func ReadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Reference == "" {
		f.Reference = DefaultReference
	}

	return NewTable(f.Planets, f.Reference)
}
