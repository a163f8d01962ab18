// Package logger provides the bot's structured slog logging with component
// scoping and context-carried update metadata.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/itjamaat/jamaatbot/internal/config"
)

var (
	initOnce sync.Once
	levelVar slog.LevelVar

	// L is the base logger; nil until InitLogger runs (tests may leave it nil,
	// in which case helpers fall back to slog.Default()).
	L *slog.Logger
)

// InitLogger configures the global structured logger. It may be called only once.
func InitLogger(cfg *config.Config) error {
	initOnce.Do(func() {
		levelVar.Set(selectLevel(cfg))

		var handler slog.Handler
		opts := &slog.HandlerOptions{Level: &levelVar}
		switch selectFormat(cfg) {
		case "text":
			handler = slog.NewTextHandler(os.Stdout, opts)
		default:
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}

		L = slog.New(handler)
		slog.SetDefault(L)

		L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", "app"),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("profile", selectProfile(cfg)),
		)
	})
	return nil
}

// InitTestLogger points the package at a writer for assertions in tests.
func InitTestLogger(w io.Writer) {
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func base() *slog.Logger {
	if L != nil {
		return L
	}
	return slog.Default()
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return base()
	}
	return base().With("component", trimmed)
}

// Event logs with component scope and a mandatory event attribute.
func Event(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	logg := Component(component)
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	attrs = append(attrs, contextAttrs(ctx)...)
	logg.LogAttrs(ctx, level, event, attrs...)
}

// Debug logs a debug-level event for the given component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an info-level event for the given component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs a warn-level event for the given component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an error-level event for the given component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelError, event, attrs...)
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if rid := RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	if id := UpdateIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int("update_id", id))
	}
	if id := UserIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int64("user_id", id))
	}
	if id := ChatIDFrom(ctx); id != 0 {
		attrs = append(attrs, slog.Int64("chat_id", id))
	}
	return attrs
}

func selectFormat(cfg *config.Config) string {
	if cfg == nil {
		return "json"
	}
	raw := strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	switch raw {
	case "kv", "text", "pretty":
		return "text"
	case "json":
		return "json"
	}
	// Prefer human-friendly format when profile indicates debug/dev mode.
	if strings.EqualFold(cfg.Logging.Profile, "debug") || strings.EqualFold(cfg.Logging.Profile, "dev") {
		return "text"
	}
	return "json"
}

func selectLevel(cfg *config.Config) slog.Level {
	if cfg == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
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

func selectProfile(cfg *config.Config) string {
	if cfg == nil {
		return "prod"
	}
	if profile := strings.TrimSpace(cfg.Logging.Profile); profile != "" {
		return strings.ToLower(profile)
	}
	return "prod"
}
