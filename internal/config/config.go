// Package config resolves qconv settings from flags, QCONV_* environment
// variables, an optional qconv.yaml and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/ceexam/qconv/internal/corpus"
)

// EnvPrefix prefixes every environment override, e.g. QCONV_START_ID.
const EnvPrefix = "QCONV"

// DefaultOutput is the corpus location relative to the base directory.
const DefaultOutput = "flutter_app/assets/questions.json"

// Config is the resolved run configuration.
type Config struct {
	BaseDir        string `mapstructure:"base_dir"`
	Output         string `mapstructure:"output"`
	Manifest       string `mapstructure:"manifest"`
	StartID        int    `mapstructure:"start_id"`
	ProtectedBelow int    `mapstructure:"protected_below"`
	DB             string `mapstructure:"db"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
	MetricsFile    string `mapstructure:"metrics_file"`
	DryRun         bool   `mapstructure:"dry_run"`
	Plain          bool   `mapstructure:"plain"`

	// Record writes the run to the ledger at DB, or at the default
	// ledger path when DB is empty. Setting DB alone also records.
	Record bool `mapstructure:"record"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

var defaults = map[string]any{
	"base_dir":        ".",
	"output":          DefaultOutput,
	"manifest":        "",
	"start_id":        1000,
	"protected_below": 1000,
	"db":              "",
	"log_level":       "info",
	"log_file":        "",
	"metrics_file":    "",
	"dry_run":         false,
	"plain":           false,
	"record":          false,
}

// Load resolves the configuration. file names an explicit config file,
// which must exist; when empty, qconv.yaml in the working directory is
// read if present. Flags that were set on fs override everything else.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("qconv")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if fs != nil {
		for key := range defaults {
			if f := fs.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}

// Validate reports settings that cannot produce a correct run.
func (c *Config) Validate() error {
	if c.StartID < c.ProtectedBelow {
		return fmt.Errorf("%w: start id %d, protected below %d", corpus.ErrBadStartID, c.StartID, c.ProtectedBelow)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path is empty")
	}
	return nil
}

// Recording reports whether runs go to the ledger.
func (c *Config) Recording() bool {
	return c.Record || c.DB != ""
}

// OutputPath returns the corpus path, joined to the base directory when
// relative.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(c.BaseDir, c.Output)
}

// Assembler returns the corpus settings with the standard validators.
func (c *Config) Assembler() corpus.Config {
	cfg := corpus.DefaultConfig()
	cfg.BaseDir = c.BaseDir
	cfg.StartID = c.StartID
	cfg.ProtectedBelow = c.ProtectedBelow
	return cfg
}
