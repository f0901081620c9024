package imagegen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParams reads a parameter set from a YAML file. Defaults are not
// applied; the caller decides when to fill optional geometry.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read config: %w", err)
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return p, nil
}

// SaveParams writes a parameter set to a YAML file, overwriting any
// existing file at path.
func SaveParams(p Params, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
