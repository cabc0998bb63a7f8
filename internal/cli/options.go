package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OptionsFile is the YAML shape accepted by --options. Every field has the
// same meaning as the corresponding flag; flags set explicitly on the
// command line win over the file.
type OptionsFile struct {
	Policy    string `yaml:"policy"`
	DayFirst  bool   `yaml:"day_first"`
	YearFirst bool   `yaml:"year_first"`
	UTC       bool   `yaml:"utc"`
	StrictISO bool   `yaml:"strict_iso"`
	Unit      string `yaml:"unit"`
	Layout    string `yaml:"layout"`
	Zone      string `yaml:"zone"`
	NullRepr  string `yaml:"null_repr"`
}

// LoadOptionsFile reads and decodes a YAML options file.
func LoadOptionsFile(path string) (*OptionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}
	var opts OptionsFile
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse options file %s: %w", path, err)
	}
	return &opts, nil
}
