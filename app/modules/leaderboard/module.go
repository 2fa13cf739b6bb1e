package leaderboard

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/wordle-club/wordle-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/queue"
	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/router"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
	"github.com/wordle-club/wordle-bot/config"
)

// Module bundles the leaderboard read side and its daily job queue.
type Module struct {
	Service leaderboardservice.Service
	Queue   *leaderboardqueue.QueueService
}

// NewModule wires the leaderboard module and registers its handlers. The
// caller starts and stops the queue with the app lifecycle.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	bus shared.EventBus,
	router *message.Router,
) (*Module, error) {
	repo := leaderboarddb.NewLeaderboardDB()
	service := leaderboardservice.NewLeaderboardService(db, repo, obs.Logger, obs.Tracer)

	handlers := leaderboardhandlers.NewHandlers(service, obs.Logger, obs.Tracer)
	moduleRouter := leaderboardrouter.NewLeaderboardRouter(obs.Logger, router, bus, obs.Tracer)
	if err := moduleRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("configure leaderboard router: %w", err)
	}

	queue, err := leaderboardqueue.NewQueueService(
		ctx,
		cfg.Postgres.DSN,
		service,
		bus,
		shared.DiscordID(cfg.Prediction.ChannelID),
		cfg.Prediction.HourUTC,
		obs.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create leaderboard queue: %w", err)
	}

	return &Module{Service: service, Queue: queue}, nil
}
