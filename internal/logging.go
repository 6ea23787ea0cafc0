package internal

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/theoremus-urban-solutions/stop-calendar/config"
)

// InitLogging builds the process logger, installs it as the default and
// returns it. Output goes to stdout, and also to a rotating file when
// cfg.File is set.
func InitLogging(cfg config.LoggingConfig) (*log.Logger, error) {
	return newLogger(os.Stdout, cfg)
}

func newLogger(stdout io.Writer, cfg config.LoggingConfig) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}

	w := stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		w = io.MultiWriter(stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05.000000",
		Level:           level,
		Prefix:          "stop-calendar",
		Formatter:       formatter(cfg.Format),
	})
	log.SetDefault(logger)
	return logger, nil
}

func formatter(name string) log.Formatter {
	switch name {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Elapsed is a log-friendly duration rounded to microseconds.
func Elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
