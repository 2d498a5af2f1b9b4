package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Log verbosity levels, lowest to highest severity.
const (
	LogDebug   = 1
	LogInfo    = 2
	LogWarning = 3
	LogError   = 4
)

// Config drives one build. Call Normalize before handing it to the builder;
// the build itself never modifies it.
type Config struct {
	SourceDir string   `yaml:"source"`
	OutputDir string   `yaml:"output"`
	Ignore    []string `yaml:"ignore"`    // regular expressions matched against absolute paths
	Languages []string `yaml:"languages"` // empty for a single unlocalized build
	Minify    Minify   `yaml:"minify"`
	LogLevel  int      `yaml:"log-level"`
	LogFormat string   `yaml:"log-format"`

	ignore []*regexp.Regexp
}

type Minify struct {
	HTML bool `yaml:"html"`
	CSS  bool `yaml:"css"`
	XML  bool `yaml:"xml"`
}

// LoadConfig reads a yaml config file. Relative source and output
// directories are resolved against the directory of the file.
func LoadConfig(fn string) (*Config, error) {
	fn, err := filepath.Abs(fn)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err = yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, fn, err)
	}

	dir := filepath.Dir(fn)
	if cfg.SourceDir, err = normalizePath(dir, cfg.SourceDir); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = normalizePath(dir, cfg.OutputDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize validates the configuration, makes both directories absolute and
// compiles the ignore patterns.
func (c *Config) Normalize() (err error) {
	if c.SourceDir == "" {
		return fmt.Errorf("%w: missing source directory", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: missing output directory", ErrInvalidConfig)
	}
	if c.SourceDir, err = filepath.Abs(c.SourceDir); err != nil {
		return err
	}
	if c.OutputDir, err = filepath.Abs(c.OutputDir); err != nil {
		return err
	}
	if within(c.SourceDir, c.OutputDir) {
		return fmt.Errorf("%w: output directory '%s' would remove the source directory", ErrInvalidConfig, c.OutputDir)
	}

	c.ignore = c.ignore[:0]
	for _, p := range c.Ignore {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("%w: ignore pattern '%s': %v", ErrInvalidConfig, p, err)
		}
		c.ignore = append(c.ignore, re)
	}

	seen := map[string]struct{}{}
	for _, lang := range c.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: language '%s': %v", ErrInvalidConfig, lang, err)
		}
		if _, dup := seen[lang]; dup {
			return fmt.Errorf("%w: language '%s' listed twice", ErrInvalidConfig, lang)
		}
		seen[lang] = struct{}{}
	}

	if c.LogLevel == 0 {
		c.LogLevel = LogInfo
	}
	if c.LogLevel < LogDebug || c.LogLevel > LogError {
		return fmt.Errorf("%w: log level %d is outside 1..4", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unsupported log format '%s'", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Ignored reports whether path matches any of the ignore patterns.
func (c *Config) Ignored(path string) bool {
	for _, re := range c.ignore {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Targets lists the languages to render. An unlocalized build has a single
// empty target.
func (c *Config) Targets() []string {
	if len(c.Languages) == 0 {
		return []string{""}
	}
	return c.Languages
}
