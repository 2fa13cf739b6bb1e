package adminrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	adminhandlers "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/handlers"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// AdminRouter registers the admin command handlers on the shared router.
type AdminRouter struct {
	logger *slog.Logger
	router *message.Router
	bus    shared.EventBus
	tracer trace.Tracer
}

// NewAdminRouter builds the module router on top of the app-wide one.
func NewAdminRouter(logger *slog.Logger, router *message.Router, bus shared.EventBus, tracer trace.Tracer) *AdminRouter {
	return &AdminRouter{
		logger: logger,
		router: router,
		bus:    bus,
		tracer: tracer,
	}
}

// Configure registers every admin command handler. The module also
// listens on the raw message topic so reset confirmations can arrive as
// plain chat.
func (r *AdminRouter) Configure(ctx context.Context, handlers *adminhandlers.Handlers) error {
	registrations := []struct {
		name  string
		topic string
		fn    message.HandlerFunc
	}{
		{"admin.ban", adminevents.BanRequested,
			shared.WrapTyped("admin.ban", r.logger, r.tracer, handlers.HandleBan)},
		{"admin.unban", adminevents.UnbanRequested,
			shared.WrapTyped("admin.unban", r.logger, r.tracer, handlers.HandleUnban)},
		{"admin.banlist", adminevents.BanListRequested,
			shared.WrapTyped("admin.banlist", r.logger, r.tracer, handlers.HandleBanList)},
		{"admin.reset", adminevents.ResetRequested,
			shared.WrapTyped("admin.reset", r.logger, r.tracer, handlers.HandleResetRequest)},
		{"admin.reset_confirmation", shared.TopicDiscordMessageCreated,
			shared.WrapTyped("admin.reset_confirmation", r.logger, r.tracer, handlers.HandleMessageCreated)},
		{"admin.removescores", adminevents.RemoveScoresRequested,
			shared.WrapTyped("admin.removescores", r.logger, r.tracer, handlers.HandleRemoveScores)},
		{"admin.setfails", adminevents.SetFailsRequested,
			shared.WrapTyped("admin.setfails", r.logger, r.tracer, handlers.HandleSetFails)},
		{"admin.setuncontended", adminevents.SetUncontendedRequested,
			shared.WrapTyped("admin.setuncontended", r.logger, r.tracer, handlers.HandleSetUncontended)},
		{"admin.adjustcrowns", adminevents.AdjustCrownsRequested,
			shared.WrapTyped("admin.adjustcrowns", r.logger, r.tracer, handlers.HandleAdjustCrowns)},
		{"admin.import", adminevents.ImportRequested,
			shared.WrapTyped("admin.import", r.logger, r.tracer, handlers.HandleImport)},
		{"admin.export", adminevents.ExportRequested,
			shared.WrapTyped("admin.export", r.logger, r.tracer, handlers.HandleExport)},
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
func (r *AdminRouter) register(name, topic string, fn message.HandlerFunc) error {
	if r.router == nil {
		return fmt.Errorf("register %s: router not initialized", name)
	}
	handler := r.router.AddHandler(name, topic, r.bus, "", r.bus, fn)
	handler.AddMiddleware(shared.CommonMetadataMiddleware("admin"))
	return nil
}
