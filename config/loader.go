package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/stop-calendar/calendar"
)

// Config is the global application configuration
var Config = Default()

// DefaultPaths is the search list used when LoadAppConfig gets no paths.
var DefaultPaths = []string{"config.yml", "./configs/config.yml"}

// Default returns the configuration used for every unset field.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:              3000,
			BasePath:          "/api",
			ShutdownTimeoutMS: 10000,
			MaxBodyBytes:      1 << 20,
		},
		Dataset: DatasetConfig{
			Source:    "routes.json",
			TimeoutMS: 10000,
		},
		Export: ExportConfig{
			Timezone:     "America/Halifax",
			Filename:     "kv-go-schedule.ics",
			CalendarName: "KV Go Schedule",
			ProductID:    "-//KV Go//Schedule Generator//EN",
			TitlePrefix:  "KV Go Bus",
			EventMinutes: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadAppConfig loads and validates the application configuration. The first
// readable path wins; with no paths DefaultPaths is searched.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes YAML on top of Default, applies environment overrides and
// validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// Validate checks struct tags on every section.
func Validate(cfg AppConfig) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ianazone", func(fl validator.FieldLevel) bool {
		return calendar.IsIANAZone(fl.Field().String())
	})
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// fillDefaults restores defaults for fields explicitly blanked in YAML.
func fillDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Export.Timezone == "" {
		cfg.Export.Timezone = def.Export.Timezone
	}
	if cfg.Export.Filename == "" {
		cfg.Export.Filename = def.Export.Filename
	}
	if cfg.Export.EventMinutes == 0 {
		cfg.Export.EventMinutes = def.Export.EventMinutes
	}
	if cfg.Export.ProductID == "" {
		cfg.Export.ProductID = def.Export.ProductID
	}
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = def.Dataset.Source
	}
}
