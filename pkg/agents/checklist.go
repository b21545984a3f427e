package agents

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed features.yaml
var defaultChecklist []byte

// Feature is one entry of the reference checklist the coverage check runs
// against.
type Feature struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type checklistFile struct {
	Features []Feature `yaml:"features"`
}

// LoadChecklist reads the reference feature checklist from path, or the
// embedded default when path is empty.
func LoadChecklist(path string) ([]Feature, error) {
	data := defaultChecklist
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read checklist: %w", err)
		}
	}

	var f checklistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse checklist: %w", err)
	}
	return f.Features, nil
}
