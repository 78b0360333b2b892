package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. TABLEDB_LOG_LEVEL=debug.
const EnvPrefix = "TABLEDB"

type Config struct {
	DataDir     string `mapstructure:"data_dir"`
	DefaultFile string `mapstructure:"default_file"`

	Log struct {
		Level  string `mapstructure:"level"`
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"log"`

	REPL struct {
		Prompt       string `mapstructure:"prompt"`
		HistoryFile  string `mapstructure:"history_file"`
		AutoDisplay  bool   `mapstructure:"auto_display"`
		DisplayLimit int    `mapstructure:"display_limit"`
	} `mapstructure:"repl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("default_file", "table.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.seq_url", "")
	v.SetDefault("repl.prompt", "tabledb> ")
	v.SetDefault("repl.history_file", "")
	v.SetDefault("repl.auto_display", true)
	v.SetDefault("repl.display_limit", 50)
}

// Load reads the YAML config at path. An empty path loads defaults plus
// environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with
func (c *Config) Validate() error {
	if c.DefaultFile == "" {
		return errors.New("config: default_file must not be empty")
	}
	if c.REPL.DisplayLimit <= 0 {
		return fmt.Errorf("config: repl.display_limit must be positive, got %d", c.REPL.DisplayLimit)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// ResolvePath maps a file name given on the command line to a path.
// Relative names live under DataDir; absolute paths are kept.
func (c *Config) ResolvePath(name string) string {
	if name == "" {
		name = c.DefaultFile
	}
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
