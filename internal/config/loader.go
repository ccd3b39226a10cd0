package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (PACKAGER_LOGGING_LEVEL, ...)
const EnvPrefix = "PACKAGER"

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return load(viper.GetViper(), "")
}

// LoadFile is like Load but reads an explicit config file, which must exist.
// An empty path falls back to Load.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	return load(viper.GetViper(), path)
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")

		// Read config file (ignore if not found)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Packaging defaults
	v.SetDefault("packaging.manifest", "")
	v.SetDefault("packaging.doc_blocks", DefaultDocBlocks)
	v.SetDefault("packaging.prepend_path", DefaultPrependPath)
	v.SetDefault("packaging.filter_type", []string{})
	v.SetDefault("packaging.strict_minify", DefaultStrictMinify)
	v.SetDefault("packaging.default_type", DefaultItemType)

	// Minify defaults
	v.SetDefault("minify.js.enabled", DefaultJSMinify)
	v.SetDefault("minify.js.keep_var_names", false)
	v.SetDefault("minify.js.precision", 0)
	v.SetDefault("minify.css.enabled", DefaultCSSMinify)
	v.SetDefault("minify.css.keep_css2", false)
	v.SetDefault("minify.css.precision", 0)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
