package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Upwork struct {
	SearchURLTemplate  string   `yaml:"searchUrlTemplate"`
	SearchURLTemplates []string `yaml:"searchUrlTemplates"` // optional extra queries
	MaxItems           int      `yaml:"maxItems"`
	MaxPages           int      `yaml:"maxPages"`
	DelaySeconds       float64  `yaml:"delaySeconds"`
	Proxy              string   `yaml:"proxy"`
	UserAgent          string   `yaml:"userAgent"`
}

type Export struct {
	Format     string `yaml:"format"`
	OutputDir  string `yaml:"outputDir"`
	FilePrefix string `yaml:"filePrefix"`
}

type Config struct {
	Upwork Upwork `yaml:"upwork"`
	Export Export `yaml:"export"`
}

// Load reads a settings file. YAML is a superset of JSON, so legacy
// settings.json files parse through the same path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Templates merges the single template and the optional list, trimmed and
// deduplicated, preserving order.
func (u Upwork) Templates() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range append([]string{u.SearchURLTemplate}, u.SearchURLTemplates...) {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
