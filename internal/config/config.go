package config

import (
	"slices"
	"strings"
)

// Config represents the application configuration
type Config struct {
	Packaging PackagingConfig `mapstructure:"packaging" yaml:"packaging"`
	Minify    MinifyConfig    `mapstructure:"minify" yaml:"minify"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// PackagingConfig contains package assembly settings
type PackagingConfig struct {
	// Manifest is an explicit manifest file. Empty means auto-detect in the source directory.
	Manifest     string   `mapstructure:"manifest" yaml:"manifest"`
	DocBlocks    bool     `mapstructure:"doc_blocks" yaml:"doc_blocks"`
	PrependPath  bool     `mapstructure:"prepend_path" yaml:"prepend_path"`
	FilterType   []string `mapstructure:"filter_type" yaml:"filter_type"`
	StrictMinify bool     `mapstructure:"strict_minify" yaml:"strict_minify"`
	DefaultType  string   `mapstructure:"default_type" yaml:"default_type"`
}

// MinifyConfig contains minifier settings per content type
type MinifyConfig struct {
	JS  JSMinifyConfig  `mapstructure:"js" yaml:"js"`
	CSS CSSMinifyConfig `mapstructure:"css" yaml:"css"`
}

// JSMinifyConfig contains JavaScript minifier settings
type JSMinifyConfig struct {
	Enabled      bool `mapstructure:"enabled" yaml:"enabled"`
	KeepVarNames bool `mapstructure:"keep_var_names" yaml:"keep_var_names"`
	Precision    int  `mapstructure:"precision" yaml:"precision"`
}

// CSSMinifyConfig contains stylesheet minifier settings
type CSSMinifyConfig struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled"`
	KeepCSS2  bool `mapstructure:"keep_css2" yaml:"keep_css2"`
	Precision int  `mapstructure:"precision" yaml:"precision"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validLogFormats = []string{"pretty", "json"}
)

// Validate validates the configuration, replacing unusable values with defaults
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		c.Logging.Level = DefaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Minify.JS.Precision < 0 {
		c.Minify.JS.Precision = 0
	}
	if c.Minify.CSS.Precision < 0 {
		c.Minify.CSS.Precision = 0
	}

	c.Packaging.DefaultType = strings.TrimSpace(c.Packaging.DefaultType)
	if c.Packaging.DefaultType == "" {
		c.Packaging.DefaultType = DefaultItemType
	}

	filters := make([]string, 0, len(c.Packaging.FilterType))
	for _, f := range c.Packaging.FilterType {
		if f = strings.TrimSpace(f); f != "" {
			filters = append(filters, f)
		}
	}
	c.Packaging.FilterType = filters
	return nil
}
