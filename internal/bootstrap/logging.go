package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/boolean-maybe/mapfilter/config"
)

// InitLogging points the default slog logger at the log file in the cache dir.
// The terminal belongs to the UI, so nothing is logged to stderr; if the file
// cannot be opened logs are discarded.
func InitLogging(cfg *config.Config) slog.Level {
	level := config.ParseLogLevel(cfg.Logging.Level)

	var w io.Writer = io.Discard
	//nolint:gosec // G302: log file in the user's cache dir
	if f, err := os.OpenFile(config.GetLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		w = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	slog.Info("logging initialized", "level", level.String(), "version", config.Version)
	return level
}
