// Package config layers asdlc options from defaults, an optional YAML
// config file, ASDLC_* environment variables and command-line flags, in
// increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read from the working directory when no --config
// flag is given and the file exists.
const DefaultConfigFile = ".asdlc.yaml"

// Config holds the options shared by every code generation action.
type Config struct {
	PrettyPrint   bool   `mapstructure:"pretty_print"`
	InitZero      bool   `mapstructure:"init_zero"`
	InitN         bool   `mapstructure:"init_n"`
	Format        string `mapstructure:"format"`
	Verbose       bool   `mapstructure:"verbose"`
	CompanionRoot string `mapstructure:"companion_root"`
}

// flagKeys maps config keys to the flag names bound onto them.
var flagKeys = map[string]string{
	"pretty_print":   "pretty-print-methods",
	"init_zero":      "init-zero",
	"init_n":         "init-n",
	"format":         "format",
	"verbose":        "verbose",
	"companion_root": "companion-root",
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("pretty_print", true)
	v.SetDefault("init_zero", true)
	v.SetDefault("init_n", true)
	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("companion_root", ".")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ASDLC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// BindFlags binds every flag in fs that backs a config key. Flags that
// are absent from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// Load reads path (or DefaultConfigFile in dir, if present) into v and
// returns the merged configuration.
func Load(v *viper.Viper, path, dir string) (*Config, error) {
	if path == "" {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, errors.Newf("invalid format %q: must be text or json", cfg.Format)
	}
	return &cfg, nil
}
