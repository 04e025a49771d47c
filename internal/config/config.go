// Package config loads lugat's settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	Sound SoundConfig `yaml:"sound"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"LUGAT_API_URL"     env-default:"http://localhost:8000" validate:"required,http_url"`
	Timeout time.Duration `yaml:"timeout"  env:"LUGAT_API_TIMEOUT" env-default:"15s"                   validate:"gt=0"`
}

// StoreConfig locates the local database. An empty path means the
// platform default.
type StoreConfig struct {
	Path string `yaml:"path" env:"LUGAT_DB"`
}

// LogConfig holds logging settings. An empty file means the platform default.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LUGAT_LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `yaml:"format" env:"LUGAT_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	File   string `yaml:"file"   env:"LUGAT_LOG_FILE"`
}

// SoundConfig toggles the answer feedback cue. The cue plays unless muted.
type SoundConfig struct {
	Muted bool `yaml:"muted" env:"LUGAT_MUTE"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path if non-empty, else $LUGAT_CONFIG, else DefaultPath().
// A missing file is only an error when it was named explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("LUGAT_CONFIG")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints and reports the first violation by
// its YAML name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("%s: invalid value %v (%s)", yamlName(fe.Namespace()), fe.Value(), fe.Tag())
}

// DefaultPath returns $XDG_CONFIG_HOME/lugat/config.yaml, falling back to
// ~/.config/lugat/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, "lugat", "config.yaml")
}

var yamlNames = map[string]string{
	"Config.API.BaseURL": "api.base_url",
	"Config.API.Timeout": "api.timeout",
	"Config.Log.Level":   "log.level",
	"Config.Log.Format":  "log.format",
}

func yamlName(ns string) string {
	if n, ok := yamlNames[ns]; ok {
		return n
	}
	return ns
}
