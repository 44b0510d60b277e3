package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"intlpipe/pkg/compiler"
)

// Config is the project-level pipeline configuration, typically read from an
// intlpipe.yaml at the workspace root.
type Config struct {
	Roots       []string `yaml:"roots"`
	DenyDirs    []string `yaml:"deny_dirs"`
	Locale      string   `yaml:"locale"`
	Format      string   `yaml:"format"`
	Watch       *bool    `yaml:"watch"`
	Keys        bool     `yaml:"keys"`
	KeysPackage string   `yaml:"keys_package"`
}

// LoadConfig parses a YAML config file and applies defaults: locale "en",
// the JSON artifact format, watching enabled.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("pipeline: parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if len(cfg.Roots) == 0 {
		return Config{}, fmt.Errorf("pipeline: config %s: at least one root is required", path)
	}
	return cfg, nil
}

// ApplyDefaults fills locale, format, and watch with their defaults when
// unset.
func (c *Config) ApplyDefaults() {
	if c.Locale == "" {
		c.Locale = defaultLocale
	}
	if c.Format == "" {
		c.Format = compiler.FormatJSON
	}
	if c.Watch == nil {
		watch := true
		c.Watch = &watch
	}
}

// Options projects the config onto runner options.
func (c Config) Options() Options {
	watch := true
	if c.Watch != nil {
		watch = *c.Watch
	}
	return Options{
		Roots:    c.Roots,
		DenyDirs: c.DenyDirs,
		Watch:    watch,
	}
}
