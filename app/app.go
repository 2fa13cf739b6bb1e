package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill"
	wmmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/nats-io/nats.go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/wordle-club/wordle-bot/app/eventbus"
	"github.com/wordle-club/wordle-bot/app/modules/admin"
	"github.com/wordle-club/wordle-bot/app/modules/leaderboard"
	"github.com/wordle-club/wordle-bot/app/modules/score"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
	"github.com/wordle-club/wordle-bot/config"
)

// App owns every long lived resource of the backend.
type App struct {
	Config *config.Config
	Obs    observability.Observability

	DB       *bun.DB
	NATSConn *nats.Conn
	Bus      shared.EventBus
	Router   *message.Router

	ScoreModule       *score.Module
	LeaderboardModule *leaderboard.Module
	AdminModule       *admin.Module

	httpServer *http.Server
}

// NewApp wires the full application. Nothing is running yet when it
// returns; call Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	natsConn, err := nats.Connect(cfg.NATS.URL, nats.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("create event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, bus); err != nil {
		return nil, fmt.Errorf("initialize streams: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(obs.Logger)
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)
	if obs.Registry != nil {
		metricsBuilder := wmmetrics.NewPrometheusMetricsBuilder(obs.Registry, "wordle_bot", "")
		metricsBuilder.AddPrometheusRouterMetrics(router)
	}

	notifier := shared.NewNotifier(bus, cfg.Discord.NotifyRatePerSecond, obs.Logger)

	scoreModule, err := score.NewModule(ctx, cfg, obs, db, natsConn, bus, router, notifier)
	if err != nil {
		return nil, fmt.Errorf("create score module: %w", err)
	}

	leaderboardModule, err := leaderboard.NewModule(ctx, cfg, obs, db, bus, router)
	if err != nil {
		return nil, fmt.Errorf("create leaderboard module: %w", err)
	}

	adminModule, err := admin.NewModule(ctx, obs, db, scoreModule.Service, bus, router)
	if err != nil {
		return nil, fmt.Errorf("create admin module: %w", err)
	}

	app := &App{
		Config:            cfg,
		Obs:               obs,
		DB:                db,
		NATSConn:          natsConn,
		Bus:               bus,
		Router:            router,
		ScoreModule:       scoreModule,
		LeaderboardModule: leaderboardModule,
		AdminModule:       adminModule,
	}
	app.httpServer = &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: app.httpHandler(),
	}
	return app, nil
}

// Run starts the job queue, the HTTP server and the message router, then
// blocks until ctx is cancelled or the router stops.
func (a *App) Run(ctx context.Context) error {
	if err := a.LeaderboardModule.Queue.Start(ctx); err != nil {
		return fmt.Errorf("start job queue: %w", err)
	}

	go func() {
		a.Obs.Logger.Info("HTTP server listening", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Obs.Logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()

	a.Obs.Logger.Info("Message router starting")
	return a.Router.Run(ctx)
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close(ctx context.Context) {
	if err := a.Router.Close(); err != nil {
		a.Obs.Logger.Error("Error closing router", slog.Any("error", err))
	}
	if err := a.LeaderboardModule.Queue.Stop(ctx); err != nil {
		a.Obs.Logger.Error("Error stopping job queue", slog.Any("error", err))
	}
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.Obs.Logger.Error("Error shutting down HTTP server", slog.Any("error", err))
	}
	if err := a.Bus.Close(); err != nil {
		a.Obs.Logger.Error("Error closing event bus", slog.Any("error", err))
	}
	a.NATSConn.Close()
	if err := a.DB.Close(); err != nil {
		a.Obs.Logger.Error("Error closing database", slog.Any("error", err))
	}
}
