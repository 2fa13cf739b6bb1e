package scorerouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	scorehandlers "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/handlers"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// ScoreRouter registers the score module's handlers on the shared router.
type ScoreRouter struct {
	logger *slog.Logger
	router *message.Router
	bus    shared.EventBus
	tracer trace.Tracer
}

// NewScoreRouter builds the module router on top of the app-wide one.
func NewScoreRouter(logger *slog.Logger, router *message.Router, bus shared.EventBus, tracer trace.Tracer) *ScoreRouter {
	return &ScoreRouter{
		logger: logger,
		router: router,
		bus:    bus,
		tracer: tracer,
	}
}

// Configure registers the gateway message handlers.
func (r *ScoreRouter) Configure(ctx context.Context, handlers *scorehandlers.Handlers) error {
	if err := r.register("score.message_created", shared.TopicDiscordMessageCreated,
		shared.WrapTyped("score.message_created", r.logger, r.tracer, handlers.HandleMessageCreated)); err != nil {
		return err
	}
	if err := r.register("score.message_updated", shared.TopicDiscordMessageUpdated,
		shared.WrapTyped("score.message_updated", r.logger, r.tracer, handlers.HandleMessageUpdated)); err != nil {
		return err
	}
	return nil
}

// register adds one handler with an empty publish topic; produced messages
// carry their destination in metadata and the bus publisher routes them.
func (r *ScoreRouter) register(name, topic string, fn message.HandlerFunc) error {
	if r.router == nil {
		return fmt.Errorf("register %s: router not initialized", name)
	}
	handler := r.router.AddHandler(name, topic, r.bus, "", r.bus, fn)
	handler.AddMiddleware(shared.CommonMetadataMiddleware("score"))
	return nil
}
