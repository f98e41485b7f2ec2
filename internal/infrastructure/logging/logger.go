package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/quennell/appliancelink/internal/infrastructure/config"
)

// Logger is the application logger. It embeds slog.Logger, so it satisfies
// the small Debug/Info/Warn/Error interfaces the other packages declare for
// their optional logging.
type Logger struct {
	*slog.Logger
}

// New builds a logger from the config.yaml logging section. Every entry
// carries the service name and version, keeping aggregated logs from
// several gateways attributable.
//
// Parameters:
//   - cfg: Logging configuration from config.yaml
//   - version: Application version stamped on every entry
//
// Returns:
//   - *Logger: Configured logger ready for use
func New(cfg config.LoggingConfig, version string) *Logger {
	handler := newHandler(cfg).WithAttrs([]slog.Attr{
		slog.String("service", "appliancelink"),
		slog.String("version", version),
	})
	return &Logger{Logger: slog.New(handler)}
}

// newHandler picks format, destination and level from the config. JSON to
// stdout is the default; text is for development terminals.
func newHandler(cfg config.LoggingConfig) slog.Handler {
	var out io.Writer = os.Stdout
	if strings.EqualFold(cfg.Output, "stderr") {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

// parseLevel maps a config level string onto slog. Unknown or empty values
// fall back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying extra default attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Component returns a child logger tagged with a subsystem name (sync,
// mqtt, publisher), so one gateway's log stream stays filterable per
// concern.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// Default returns a stdout JSON logger at info level, for the window
// before the configuration file has been loaded.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
