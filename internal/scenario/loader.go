package scenario

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var validate = validator.New()

// Parse decodes and validates a scenario definition.
func Parse(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}
	return s, nil
}

// LoadFile reads one scenario from a YAML file.
func LoadFile(fs afero.Fs, path string) (Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}
	return Parse(data)
}

// Builtin returns the scenarios embedded in the binary, sorted by name.
func Builtin() ([]Scenario, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin scenarios: %w", err)
	}

	var scenarios []Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin scenario %s: %w", entry.Name(), err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Name < scenarios[j].Name
	})
	return scenarios, nil
}

// ByName returns the named builtin scenario.
func ByName(name string) (Scenario, error) {
	scenarios, err := Builtin()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}
