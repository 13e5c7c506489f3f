// Package config loads tada's settings from defaults, an optional config
// file, TADA_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "tada"
	envPrefix  = "TADA"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file bolt sqlite memory"`
	// Path is a directory for the file backend, a database file otherwise.
	// Empty means the backend's default.
	Path string `mapstructure:"path"`
	Key  string `mapstructure:"key" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json logfmt"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme" validate:"oneof=classic neon mono"`
	Group bool   `mapstructure:"group"`
}

// Binding ties a config key to a command-line flag. The flag only wins when
// it was set explicitly.
type Binding struct {
	Key  string
	Flag *pflag.Flag
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", "todo-storage")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.group", false)
}

// Load reads the configuration. With file empty, tada.{yaml,toml,json} is
// looked up in the working directory and the user config directory; a
// missing file is fine. An explicit file must exist.
func Load(file string, bindings ...Binding) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", b.Flag.Name, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: "file", Key: "todo-storage"},
		Log:     LogConfig{Level: "warn", Format: "text"},
		UI:      UIConfig{Theme: "classic"},
	}
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.Key = strings.TrimSpace(c.Storage.Key)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
}

var validate = newValidator()

// newValidator reports fields by their config key (the mapstructure tag).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s=%q (%s %s)", configKey(fe.Namespace()), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// configKey drops the root type name from a validator namespace, turning
// "Config.storage.backend" into "storage.backend".
func configKey(ns string) string {
	if _, key, ok := strings.Cut(ns, "."); ok {
		return key
	}
	return ns
}
