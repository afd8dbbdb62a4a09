package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/example/meeting-planner/internal/reminder"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MEETINGS"

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageJSON   = "json"
)

// Config captures the settings of the meetings command line tool.
type Config struct {
	Storage       string `mapstructure:"storage" validate:"required,oneof=sqlite json"`
	DataFile      string `mapstructure:"data_file" validate:"required_if=Storage json"`
	SQLiteDSN     string `mapstructure:"sqlite_dsn" validate:"required_if=Storage sqlite"`
	LogLevel      string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat     string `mapstructure:"log_format" validate:"required,oneof=text json"`
	Timezone      string `mapstructure:"timezone" validate:"required,timezone"`
	ReminderHours int    `mapstructure:"reminder_hours" validate:"gte=0"`
	ReminderCron  string `mapstructure:"reminder_cron" validate:"required,schedule"`
}

var defaults = map[string]any{
	"storage":        StorageJSON,
	"data_file":      "meetings.json",
	"sqlite_dsn":     "meetings.db",
	"log_level":      "warn",
	"log_format":     "text",
	"timezone":       "UTC",
	"reminder_hours": 1,
	"reminder_cron":  reminder.DefaultSchedule,
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

// Load reads configuration from defaults, an optional YAML file at path, and
// MEETINGS_* environment variables, in increasing order of precedence. The
// result is validated before it is returned.
func Load(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all offending keys at once.
func (c Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}

	keys := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		keys = append(keys, fe.Field())
	}
	sort.Strings(keys)
	return fmt.Errorf("config: invalid values for: %s", strings.Join(keys, ", "))
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("schedule", func(fl validator.FieldLevel) bool {
		return reminder.ValidateSchedule(fl.Field().String()) == nil
	})
	return validate
}
