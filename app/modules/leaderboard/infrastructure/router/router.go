package leaderboardrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	leaderboardhandlers "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// LeaderboardRouter registers the leaderboard command handlers on the
// shared router.
type LeaderboardRouter struct {
	logger *slog.Logger
	router *message.Router
	bus    shared.EventBus
	tracer trace.Tracer
}

// NewLeaderboardRouter builds the module router on top of the app-wide one.
func NewLeaderboardRouter(logger *slog.Logger, router *message.Router, bus shared.EventBus, tracer trace.Tracer) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger: logger,
		router: router,
		bus:    bus,
		tracer: tracer,
	}
}

// Configure registers every leaderboard command handler.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers *leaderboardhandlers.Handlers) error {
	registrations := []struct {
		name  string
		topic string
		fn    message.HandlerFunc
	}{
		{"leaderboard.get", leaderboardevents.GetRequested,
			shared.WrapTyped("leaderboard.get", r.logger, r.tracer, handlers.HandleGetLeaderboard)},
		{"leaderboard.page", leaderboardevents.PageRequested,
			shared.WrapTyped("leaderboard.page", r.logger, r.tracer, handlers.HandlePage)},
		{"leaderboard.stats", leaderboardevents.StatsRequested,
			shared.WrapTyped("leaderboard.stats", r.logger, r.tracer, handlers.HandleStats)},
		{"leaderboard.streak", leaderboardevents.StreakRequested,
			shared.WrapTyped("leaderboard.streak", r.logger, r.tracer, handlers.HandleStreak)},
		{"leaderboard.streaks", leaderboardevents.StreaksRequested,
			shared.WrapTyped("leaderboard.streaks", r.logger, r.tracer, handlers.HandleTopStreaks)},
		{"leaderboard.crowns", leaderboardevents.CrownsRequested,
			shared.WrapTyped("leaderboard.crowns", r.logger, r.tracer, handlers.HandleCrowns)},
		{"leaderboard.uncontended", leaderboardevents.UncontendedRequested,
			shared.WrapTyped("leaderboard.uncontended", r.logger, r.tracer, handlers.HandleUncontended)},
		{"leaderboard.fails", leaderboardevents.FailsRequested,
			shared.WrapTyped("leaderboard.fails", r.logger, r.tracer, handlers.HandleFails)},
	}
	for _, reg := range registrations {
		if err := r.register(reg.name, reg.topic, reg.fn); err != nil {
			return err
		}
	}
	return nil
}

// register adds one handler with an empty publish topic; produced messages
// carry their destination in metadata and the bus publisher routes them.
func (r *LeaderboardRouter) register(name, topic string, fn message.HandlerFunc) error {
	if r.router == nil {
		return fmt.Errorf("register %s: router not initialized", name)
	}
	handler := r.router.AddHandler(name, topic, r.bus, "", r.bus, fn)
	handler.AddMiddleware(shared.CommonMetadataMiddleware("leaderboard"))
	return nil
}
