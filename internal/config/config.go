// Package config loads runtime settings from defaults, an optional
// cityscape.yaml file and CITYSCAPE_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "CITYSCAPE"
	FileName  = "cityscape"
)

type Config struct {
	AppID string `mapstructure:"app_id"`
	Title string `mapstructure:"title"`

	Window struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"window"`

	Log struct {
		Level string `mapstructure:"level"`
		// JSON switches console output from the pretty writer to JSON lines.
		JSON bool `mapstructure:"json"`
		// File is used by release builds, which have no console. Empty means
		// the default path under the user cache directory.
		File string `mapstructure:"file"`
	} `mapstructure:"log"`

	Shutdown struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"shutdown"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_id", "dev.cityscape.app")
	v.SetDefault("title", "Cityscape")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("shutdown.timeout", 10*time.Second)
}

// DefaultSearchPaths lists where cityscape.yaml is looked up.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "cityscape"))
	}
	return paths
}

// Load reads the configuration. A missing config file is not an error.
func Load(searchPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if len(searchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.AppID) == "":
		return fmt.Errorf("%w: app_id is empty", ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Shutdown.Timeout <= 0:
		return fmt.Errorf("%w: shutdown.timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// LogFilePath resolves the release-build log destination.
func (c *Config) LogFilePath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cityscape", "cityscape.log")
}
