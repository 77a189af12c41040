// Package config loads the optional .genbadge.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/chmouel/go-genbadge/internal/badge"
	"github.com/chmouel/go-genbadge/internal/model"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".genbadge.yaml"

// Config represents the application configuration structure.
type Config struct {
	Mode       string `yaml:"mode"`
	ShieldsURL string `yaml:"shields_url"`

	Font struct {
		Path    string   `yaml:"path,omitempty"`
		Names   []string `yaml:"names,omitempty"`
		Dirs    []string `yaml:"dirs,omitempty"`
		Bundled *bool    `yaml:"bundled,omitempty"`
	} `yaml:"font"`

	Flake8 struct {
		Severities      map[string]int `yaml:"severities,omitempty"`
		DefaultSeverity *int           `yaml:"default_severity,omitempty"`
	} `yaml:"flake8"`

	Labels map[string]string `yaml:"labels,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:       string(badge.ModeLocal),
		ShieldsURL: badge.DefaultShieldsURL,
	}
}

// LoadConfig reads and parses the YAML configuration file. A missing file
// yields the defaults unless required is set.
func LoadConfig(filePath string, required bool) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // path is from the --config flag
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := badge.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.ShieldsURL != "" {
		u, err := url.Parse(c.ShieldsURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("shields_url must be an absolute URL, got %q", c.ShieldsURL)
		}
	}
	for prefix, sev := range c.Flake8.Severities {
		if prefix == "" {
			return fmt.Errorf("flake8.severities: empty code prefix")
		}
		if !model.Severity(sev).Valid() {
			return fmt.Errorf("flake8.severities.%s: severity must be 1, 2 or 3, got %d", prefix, sev)
		}
	}
	if d := c.Flake8.DefaultSeverity; d != nil && *d != 0 && !model.Severity(*d).Valid() {
		return fmt.Errorf("flake8.default_severity must be 0, 1, 2 or 3, got %d", *d)
	}
	return nil
}

// RenderMode returns the configured rendering mode.
func (c *Config) RenderMode() badge.Mode {
	m, _ := badge.ParseMode(c.Mode)
	return m
}

// Label returns the configured label for a report kind, or def.
func (c *Config) Label(kind, def string) string {
	if l, ok := c.Labels[kind]; ok {
		return l
	}
	return def
}

// FontSources returns the font lookup chain: explicit file, system font
// store, then the bundled font unless disabled.
func (c *Config) FontSources() []badge.FontSource {
	var sources []badge.FontSource
	if c.Font.Path != "" {
		sources = append(sources, badge.FileFont{Path: c.Font.Path})
	}
	sources = append(sources, badge.SystemFont{Names: c.Font.Names, Dirs: c.Font.Dirs})
	if c.Font.Bundled == nil || *c.Font.Bundled {
		sources = append(sources, badge.BundledFont{})
	}
	return sources
}

// Classifier returns the flake8 severity table. Without configured
// severities the flake8-html table is used. Longer prefixes are tried first.
func (c *Config) Classifier() *model.PrefixClassifier {
	if len(c.Flake8.Severities) == 0 {
		cl := model.DefaultClassifier()
		if c.Flake8.DefaultSeverity != nil {
			cl.Default = model.Severity(*c.Flake8.DefaultSeverity)
		}
		return cl
	}

	cl := &model.PrefixClassifier{}
	for prefix, sev := range c.Flake8.Severities {
		cl.Rules = append(cl.Rules, model.PrefixRule{Prefix: prefix, Severity: model.Severity(sev)})
	}
	sort.Slice(cl.Rules, func(i, j int) bool {
		if len(cl.Rules[i].Prefix) != len(cl.Rules[j].Prefix) {
			return len(cl.Rules[i].Prefix) > len(cl.Rules[j].Prefix)
		}
		return cl.Rules[i].Prefix < cl.Rules[j].Prefix
	})
	if c.Flake8.DefaultSeverity != nil {
		cl.Default = model.Severity(*c.Flake8.DefaultSeverity)
	}
	return cl
}
