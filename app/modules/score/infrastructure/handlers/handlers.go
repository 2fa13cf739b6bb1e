package scorehandlers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Handlers turns gateway message events into ingestion calls.
type Handlers struct {
	service         scoreservice.Service
	wordleChannelID shared.DiscordID
	logger          *slog.Logger
	tracer          trace.Tracer
}

// NewHandlers wires the score handlers. An empty wordleChannelID disables
// channel filtering, which single-channel test setups rely on.
func NewHandlers(service scoreservice.Service, wordleChannelID shared.DiscordID, logger *slog.Logger, tracer trace.Tracer) *Handlers {
	return &Handlers{
		service:         service,
		wordleChannelID: wordleChannelID,
		logger:          logger,
		tracer:          tracer,
	}
}

// HandleMessageCreated ingests a freshly posted message.
func (h *Handlers) HandleMessageCreated(ctx context.Context, payload *shared.MessagePayload) ([]shared.Result, error) {
	if h.skip(payload) {
		return nil, nil
	}
	return h.service.ProcessMessage(ctx, payload, scoreservice.ProcessOptions{Notify: true})
}

// HandleMessageUpdated re-ingests an edited message. The upsert keyed on
// (user, puzzle) makes the edit overwrite the original score.
func (h *Handlers) HandleMessageUpdated(ctx context.Context, payload *shared.MessagePayload) ([]shared.Result, error) {
	if h.skip(payload) {
		return nil, nil
	}
	return h.service.ProcessMessage(ctx, payload, scoreservice.ProcessOptions{IsEdit: true, Notify: true})
}

func (h *Handlers) skip(payload *shared.MessagePayload) bool {
	return h.wordleChannelID != "" && payload.ChannelID != h.wordleChannelID
}
