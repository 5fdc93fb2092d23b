package quoteform

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type definitionFile struct {
	Name         string           `yaml:"name"`
	Steps        []Step           `yaml:"steps"`
	Confirmation ConfirmationText `yaml:"confirmation"`
}

// LoadDefinition decodes a YAML form definition.
func LoadDefinition(r io.Reader) (*Definition, error) {
	var file definitionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("quoteform: decode definition: %w", err)
	}
	return NewDefinition(file.Name, file.Steps, file.Confirmation)
}

// LoadDefinitionFile reads a YAML definition from path. An empty path yields
// the built-in window replacement form.
func LoadDefinitionFile(path string) (*Definition, error) {
	if path == "" {
		return WindowReplacement(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("quoteform: open definition: %w", err)
	}
	defer f.Close()
	return LoadDefinition(f)
}
