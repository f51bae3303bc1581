// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
)

var log atomic.Pointer[slog.Logger]

func init() {
	Init("development")
}

// Init installs the default logger: text in development, JSON otherwise.
func Init(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "development" || env == "" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	l := slog.New(handler)
	log.Store(l)
	slog.SetDefault(l)
}

func Get() *slog.Logger {
	return log.Load()
}

func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// WithRequest tags entries with the request id set by the requestid middleware.
func WithRequest(c *fiber.Ctx) *slog.Logger {
	l := Get()
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		l = l.With("request_id", rid)
	}
	if uid, ok := c.Locals("userId").(uint); ok && uid != 0 {
		l = l.With("user_id", uid)
	}
	return l
}

// AccessLog logs one line per request once the handler chain has finished.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		WithRequest(c).Info("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}
