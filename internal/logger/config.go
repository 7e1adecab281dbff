package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config from the application settings
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used by binaries that start logging before their config is loaded
func DefaultConfig() Config {
	return Config{
		Level:       slog.LevelInfo.String(),
		Format:      FormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: DefaultEnvironment,
	}
}

// LogLevel parses Level. Unknown values fall back to info; "warning" is accepted as warn.
func (c Config) LogLevel() slog.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == "warning" {
		name = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) attrs() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
