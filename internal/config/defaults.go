package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// Packaging defaults
	DefaultDocBlocks    = true
	DefaultPrependPath  = true
	DefaultStrictMinify = false
	DefaultItemType     = "js"

	// Minify defaults
	DefaultJSMinify  = true
	DefaultCSSMinify = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".packager"
	}
	return filepath.Join(home, ".packager")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Packaging: PackagingConfig{
			DocBlocks:    DefaultDocBlocks,
			PrependPath:  DefaultPrependPath,
			FilterType:   []string{},
			StrictMinify: DefaultStrictMinify,
			DefaultType:  DefaultItemType,
		},
		Minify: MinifyConfig{
			JS:  JSMinifyConfig{Enabled: DefaultJSMinify},
			CSS: CSSMinifyConfig{Enabled: DefaultCSSMinify},
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
