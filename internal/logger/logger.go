// Package logger builds named hclog loggers from configuration.
package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codecompass/engine/internal/config"
)

// New returns a named logger. The level comes from the config when set,
// otherwise from the CODECOMPASS_LOG_LEVEL environment variable, otherwise
// info.
func New(cfg *config.Config, name string) hclog.Logger {
	var level hclog.Level
	if cfg != nil && cfg.Logger.Level != "" {
		level = parseLevel(cfg.Logger.Level)
	} else {
		level = parseLevel(os.Getenv("CODECOMPASS_LOG_LEVEL"))
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: os.Stdout,
		Level:  level,
	})
}

func parseLevel(s string) hclog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
