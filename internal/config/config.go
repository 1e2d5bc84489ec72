package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AppConfig is unmarshalled from viper (file, env and flags).
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	JSON     bool           `mapstructure:"json"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Server   ServerConfig   `mapstructure:"server"`
	View     ViewConfig     `mapstructure:"view"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	Path    string `mapstructure:"path"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=json yaml toml"`
}

// SeedConfig points at the read-only tasks.json / archive.json bootstrap files.
type SeedConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	Watch          bool     `mapstructure:"watch"`
}

// ViewConfig tunes list sizes.
type ViewConfig struct {
	Suggestions   int `mapstructure:"suggestions" validate:"min=1,max=100"`
	HistogramDays int `mapstructure:"histogramDays" validate:"min=1,max=366"`
}

// CalendarConfig configures the Google Calendar export.
type CalendarConfig struct {
	Name            string `mapstructure:"name"`
	CredentialsFile string `mapstructure:"credentialsFile"`
	TokenFile       string `mapstructure:"tokenFile"`
}

var validate = validator.New()

// Validate checks the config and reports every failing field at once.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value: '%v')", strings.ToLower(e.Namespace()), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
