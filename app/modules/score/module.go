package score

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	"github.com/uptrace/bun"

	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	scoreadapters "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/adapters"
	scorehandlers "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/handlers"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/router"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
	"github.com/wordle-club/wordle-bot/config"
)

// Module bundles the score ingestion pipeline.
type Module struct {
	Service scoreservice.Service
}

// NewModule wires the score module and registers its handlers.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	nc *nats.Conn,
	bus shared.EventBus,
	router *message.Router,
	notifier *shared.Notifier,
) (*Module, error) {
	repo := scoredb.NewScoreDB()
	history := scoreadapters.NewNATSHistoryLookup(nc, obs.Logger)
	service := scoreservice.NewScoreService(
		db,
		repo,
		history,
		notifier,
		shared.DiscordID(cfg.Discord.CompanionBotID),
		obs.Logger,
		obs.Tracer,
	)

	handlers := scorehandlers.NewHandlers(service, shared.DiscordID(cfg.Discord.WordleChannelID), obs.Logger, obs.Tracer)
	moduleRouter := scorerouter.NewScoreRouter(obs.Logger, router, bus, obs.Tracer)
	if err := moduleRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("configure score router: %w", err)
	}

	return &Module{Service: service}, nil
}
