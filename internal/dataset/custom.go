package dataset

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/cfb-realignment/realign-cli/internal/conference"
)

// customFile is the top-level layout of a custom conference YAML file.
type customFile struct {
	CustomConferences []conference.CustomDefinition `yaml:"custom_conferences"`
}

// LoadCustomConferences reads custom conference definitions from a YAML file.
func LoadCustomConferences(path string) ([]conference.CustomDefinition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read custom conferences %s", path)
	}
	return ParseCustomConferences(data)
}

// ParseCustomConferences decodes custom conference definitions from YAML.
func ParseCustomConferences(data []byte) ([]conference.CustomDefinition, error) {
	var f customFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "dataset: parse custom conferences")
	}
	for i, d := range f.CustomConferences {
		if len(d.Schools) == 0 {
			return nil, eris.Errorf("dataset: custom conference %d (%q) has no schools", i+1, d.Name)
		}
	}
	return f.CustomConferences, nil
}
