package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
)

// SetupLogger configures a JSON slog logger with environment fields.
func SetupLogger(cfg config.Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

// SetupCLILogger writes to stderr so command output stays clean.
// Only warnings and above are shown unless verbose is set.
func SetupCLILogger(cfg config.Config, verbose bool) *slog.Logger {
	if !verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(h)
	}
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{}
	// In dev, show debug level; in prod, default to info
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, opts)
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
