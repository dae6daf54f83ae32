// Package config resolves polines settings from .polines.yaml, .env files
// and POLINES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Bridge kinds.
const (
	BridgeLog    = "log"
	BridgeStdout = "stdout"
	BridgeOutbox = "outbox"
)

// Config is the resolved configuration.
type Config struct {
	Script  string `mapstructure:"script" json:"script" yaml:"script"`
	Bridge  string `mapstructure:"bridge" json:"bridge" yaml:"bridge"`
	Outbox  string `mapstructure:"outbox" json:"outbox" yaml:"outbox"`
	Inbox   string `mapstructure:"inbox" json:"inbox" yaml:"inbox"`
	Variant string `mapstructure:"variant" json:"variant" yaml:"variant"`
	// Status overrides the production status vocabulary, one token per entry.
	Status []string `mapstructure:"status" json:"status,omitempty" yaml:"status,omitempty"`
	Log    Log      `mapstructure:"log" json:"log" yaml:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" json:"-" yaml:"-"`
}

type Log struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
	File   string `mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

// Options control where Load looks.
type Options struct {
	// Paths are searched for .polines.yaml after $POLINES_CONFIG_PATH.
	Paths []string
	// EnvFiles are loaded into the environment before reading. Missing files
	// are ignored. Defaults to ".env".
	EnvFiles []string
}

func defaults(v *viper.Viper) {
	v.SetDefault("script", "Manage: PO Lines")
	v.SetDefault("bridge", BridgeLog)
	v.SetDefault("outbox", "~/.polines/outbox")
	v.SetDefault("inbox", "")
	v.SetDefault("variant", "apparel")
	v.SetDefault("status", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// Load reads configuration. A missing config file is not an error.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.SetConfigName(".polines") // .yaml is implicit
	v.SetEnvPrefix("POLINES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("POLINES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	paths := opts.Paths
	if paths == nil {
		paths = []string{"./", "$HOME"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	// AutomaticEnv does not split lists.
	if raw := os.Getenv("POLINES_STATUS"); raw != "" {
		cfg.Status = splitList(raw)
	}
	cfg.File = v.ConfigFileUsed()

	var err error
	if cfg.Outbox, err = expand(cfg.Outbox); err != nil {
		return nil, err
	}
	if cfg.Inbox, err = expand(cfg.Inbox); err != nil {
		return nil, err
	}
	if cfg.Log.File, err = expand(cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Bridge {
	case BridgeLog, BridgeStdout, BridgeOutbox:
	default:
		return fmt.Errorf("config: unknown bridge %q", c.Bridge)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

func expand(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	return p, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
