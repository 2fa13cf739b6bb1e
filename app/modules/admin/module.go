package admin

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	adminservice "github.com/wordle-club/wordle-bot/app/modules/admin/application"
	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	adminhandlers "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/handlers"
	admindb "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/repositories"
	adminrouter "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/router"
	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Module bundles the admin command surface.
type Module struct {
	Service adminservice.Service
}

// NewModule wires the admin module and registers its handlers. Expired
// reset confirmations are announced back on the bus so the gateway can
// tell the requester the window closed.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	ingestor scoreservice.Service,
	bus shared.EventBus,
	router *message.Router,
) (*Module, error) {
	confirmations := adminservice.NewConfirmationRegistry(adminservice.ConfirmationTTL, func(notice adminevents.ResetNotice) {
		msg, err := shared.NewResultMessage(nil, adminevents.ResetTimedOut, notice)
		if err != nil {
			obs.Logger.Error("Failed to build reset timeout event", "error", err)
			return
		}
		if err := bus.Publish(adminevents.ResetTimedOut, msg); err != nil {
			obs.Logger.Error("Failed to publish reset timeout event", "error", err)
		}
	})

	service := adminservice.NewAdminService(
		db,
		admindb.NewAdminDB(),
		scoredb.NewScoreDB(),
		ingestor,
		confirmations,
		obs.Logger,
		obs.Tracer,
	)

	handlers := adminhandlers.NewHandlers(service, obs.Logger, obs.Tracer)
	moduleRouter := adminrouter.NewAdminRouter(obs.Logger, router, bus, obs.Tracer)
	if err := moduleRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("configure admin router: %w", err)
	}

	return &Module{Service: service}, nil
}
