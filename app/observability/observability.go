package observability

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/wordle-club/wordle-bot/config"
)

const serviceName = "wordle-bot"

// Observability bundles the logger, metrics registry and tracer handed to
// every module.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer
}

// New builds the observability stack from config. Production environments
// log JSON; everything else gets the text handler. When metrics are
// disabled the registry is nil and the routers skip their metrics
// middleware.
func New(cfg config.ObservabilityConfig) Observability {
	level := parseLevel(cfg.LogLevel)

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler).With(slog.String("service", serviceName))

	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return Observability{
		Logger:   logger,
		Registry: registry,
		Tracer:   otel.GetTracerProvider().Tracer(serviceName),
	}
}

// NewForTest returns a quiet observability stack for unit tests.
func NewForTest() Observability {
	return Observability{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
		Tracer: noop.NewTracerProvider().Tracer(serviceName),
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
