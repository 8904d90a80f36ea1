package dashboard

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ome/status-dashboard/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for structurally broken dashboard configurations
var ErrInvalidConfig = goerr.New("invalid dashboard configuration")

// Load reads a dashboard configuration. Files ending in .toml are parsed as
// TOML with a top-level [[sections]] array, anything else as a YAML list of
// sections.
func Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dashboard configuration", goerr.V("path", path))
	}

	var cfg *model.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = ParseTOML(data)
	default:
		cfg, err = ParseYAML(data)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse dashboard configuration", goerr.V("path", path))
	}
	return cfg, nil
}

// ParseYAML parses a YAML list of sections
func ParseYAML(data []byte) (*model.Config, error) {
	var sections []*model.Section
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, goerr.Wrap(err, "failed to decode YAML")
	}
	if err := validate(sections); err != nil {
		return nil, err
	}
	return &model.Config{Sections: sections}, nil
}

// ParseTOML parses a TOML document with a sections array of tables
func ParseTOML(data []byte) (*model.Config, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode TOML")
	}

	sections, ok := doc["sections"]
	if !ok {
		return nil, goerr.Wrap(ErrInvalidConfig, "missing sections array")
	}

	// Sections go through the YAML decoder so both formats keep unknown keys
	raw, err := yaml.Marshal(normalizeTOML(sections))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to normalize TOML sections")
	}
	return ParseYAML(raw)
}

// normalizeTOML turns TOML local date and time values into their TOML text
// so they reach the snapshot as plain strings instead of nested maps.
func normalizeTOML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeTOML(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeTOML(item)
		}
		return v
	case []map[string]any:
		for _, item := range v {
			normalizeTOML(item)
		}
		return v
	case toml.LocalDate:
		return v.String()
	case toml.LocalTime:
		return v.String()
	case toml.LocalDateTime:
		return v.String()
	default:
		return v
	}
}

func validate(sections []*model.Section) error {
	for i, s := range sections {
		if s == nil {
			return goerr.Wrap(ErrInvalidConfig, "empty section", goerr.V("index", i))
		}
		if s.Packages == nil {
			return goerr.Wrap(ErrInvalidConfig, "section has no packages list",
				goerr.V("index", i),
				goerr.V("section", s.Name),
			)
		}
		for j, p := range s.Packages {
			if p == nil {
				return goerr.Wrap(ErrInvalidConfig, "empty package entry",
					goerr.V("section", s.Name),
					goerr.V("index", j),
				)
			}
		}
	}
	return nil
}
