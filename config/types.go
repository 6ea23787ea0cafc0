package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port              int      `yaml:"port" validate:"gte=0,lte=65535"`
	BasePath          string   `yaml:"basePath" validate:"omitempty,startswith=/"`
	StaticDir         string   `yaml:"staticDir"`
	AllowedOrigins    []string `yaml:"allowedOrigins"`
	ShutdownTimeoutMS int      `yaml:"shutdownTimeoutMS" validate:"gte=0"`
	MaxBodyBytes      int64    `yaml:"maxBodyBytes" validate:"gte=0"`
}

// DatasetConfig points at the static route dataset
type DatasetConfig struct {
	Source    string `yaml:"source"` // file path or http(s) URL
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ExportConfig controls iCalendar generation
type ExportConfig struct {
	Timezone     string `yaml:"timezone" validate:"omitempty,ianazone"`
	Filename     string `yaml:"filename" validate:"omitempty,endswith=.ics"`
	CalendarName string `yaml:"calendarName"`
	ProductID    string `yaml:"productID"`
	TitlePrefix  string `yaml:"titlePrefix"`
	EventMinutes int    `yaml:"eventMinutes" validate:"gte=0,lte=1440"`
	// AllowOffSchedule skips the check that each requested time is served
	// at the stop on the selected days.
	AllowOffSchedule bool `yaml:"allowOffSchedule"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}
