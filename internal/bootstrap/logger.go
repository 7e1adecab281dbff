package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/osse101/PixelPet_Go/internal/config"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// LoggerConfig maps the application config onto logger options.
// Source locations are only attached in development.
func LoggerConfig(cfg *config.Config) logger.Config {
	addSource := cfg.Environment == config.EnvironmentDev || cfg.Environment == "development"
	return logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource)
}

// SetupLogger installs the default logger on stdout, teeing into a new session file when
// LogDir is set. The caller closes the returned file, which is nil without LogDir.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	var sessionLog *os.File
	out := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		f, err := openSessionLog(cfg.LogDir, time.Now())
		if err != nil {
			return nil, err
		}
		sessionLog = f
		out = io.MultiWriter(os.Stdout, f)
	}

	lc := LoggerConfig(cfg)
	logger.InitLoggerWithWriter(lc, out)

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingPixelPet, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"pet_service_url", cfg.PetServiceURL,
		"discord_enabled", cfg.DiscordEnabled())
	return sessionLog, nil
}

func openSessionLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}
	pruneSessionLogs(dir, LogFileRetentionCount)

	name := filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}
	return f, nil
}

// pruneSessionLogs keeps the newest keep session logs. Session filenames sort chronologically.
func pruneSessionLogs(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	logs := slices.DeleteFunc(entries, func(e os.DirEntry) bool {
		return e.IsDir() || !strings.HasSuffix(e.Name(), LogFileExtension)
	})
	if len(logs) <= keep {
		return
	}
	// ReadDir returns entries sorted by filename
	for _, e := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", e.Name(), "error", err)
		}
	}
}
