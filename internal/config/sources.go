package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// OverlaySources replaces the source list from a standalone sources.yml so
// the board list can be edited without touching filter settings. A missing
// file is not an error; the sources already in cfg stay in place.
func OverlaySources(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var sf sourcesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Sources) > 0 {
		cfg.Sources = sf.Sources
	}
	return nil
}

// ApplyURLFilter appends the parser kind's configured query parameter to a
// board URL, once. Boards without a configured filter pass through.
func ApplyURLFilter(cfg Config, rawURL, parser string) string {
	param, ok := cfg.URLFilters[parser]
	if !ok || param == "" {
		return rawURL
	}
	if strings.Contains(rawURL, param) {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + param
	}
	return rawURL + "?" + param
}

// EnabledSources returns enabled sources, optionally restricted to ids, with
// URL filters applied. unknown collects requested ids that match nothing.
func EnabledSources(cfg Config, ids []string) (out []Source, unknown []string) {
	want := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			want[id] = true
		}
	}

	valid := map[string]bool{}
	for _, s := range cfg.Sources {
		valid[s.ID] = true
		if !s.Enabled {
			continue
		}
		if len(want) > 0 && !want[s.ID] {
			continue
		}
		s.URL = ApplyURLFilter(cfg, s.URL, s.Parser)
		out = append(out, s)
	}

	for id := range want {
		if !valid[id] {
			unknown = append(unknown, id)
		}
	}
	return out, unknown
}
