package adminhandlers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	adminservice "github.com/wordle-club/wordle-bot/app/modules/admin/application"
	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Handlers maps admin command events onto the service.
type Handlers struct {
	service adminservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewHandlers wires the admin handlers.
func NewHandlers(service adminservice.Service, logger *slog.Logger, tracer trace.Tracer) *Handlers {
	return &Handlers{service: service, logger: logger, tracer: tracer}
}

// resultEvents routes an operation result to its success or failure topic.
func resultEvents[S, F any](r shared.OperationResult[S, F], successTopic, failureTopic string) []shared.Result {
	if r.IsSuccess() {
		return []shared.Result{{Topic: successTopic, Payload: *r.Success}}
	}
	return []shared.Result{{Topic: failureTopic, Payload: *r.Failure}}
}

func (h *Handlers) HandleBan(ctx context.Context, payload *adminevents.BanRequest) ([]shared.Result, error) {
	result, err := h.service.Ban(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.BanSuccess, adminevents.BanFailed), nil
}

func (h *Handlers) HandleUnban(ctx context.Context, payload *adminevents.UnbanRequest) ([]shared.Result, error) {
	result, err := h.service.Unban(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.UnbanSuccess, adminevents.UnbanFailed), nil
}

func (h *Handlers) HandleBanList(ctx context.Context, payload *adminevents.BanListRequest) ([]shared.Result, error) {
	result, err := h.service.BanList(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return []shared.Result{{Topic: adminevents.BanListSuccess, Payload: result}}, nil
}

func (h *Handlers) HandleResetRequest(ctx context.Context, payload *adminevents.ResetRequest) ([]shared.Result, error) {
	result, err := h.service.RequestReset(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.ResetPending, adminevents.ResetFailed), nil
}

// HandleMessageCreated watches plain chat for reset confirmations.
func (h *Handlers) HandleMessageCreated(ctx context.Context, payload *shared.MessagePayload) ([]shared.Result, error) {
	return h.service.HandleConfirmation(ctx, payload)
}

func (h *Handlers) HandleRemoveScores(ctx context.Context, payload *adminevents.RemoveScoresRequest) ([]shared.Result, error) {
	result, err := h.service.RemoveScores(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.RemoveScoresSuccess, adminevents.RemoveScoresFailed), nil
}

func (h *Handlers) HandleSetFails(ctx context.Context, payload *adminevents.SetFailsRequest) ([]shared.Result, error) {
	result, err := h.service.SetFails(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.SetFailsSuccess, adminevents.SetFailsFailed), nil
}

func (h *Handlers) HandleSetUncontended(ctx context.Context, payload *adminevents.SetUncontendedRequest) ([]shared.Result, error) {
	result, err := h.service.SetUncontended(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.SetUncontendedSuccess, adminevents.SetUncontendedFailed), nil
}

func (h *Handlers) HandleAdjustCrowns(ctx context.Context, payload *adminevents.AdjustCrownsRequest) ([]shared.Result, error) {
	result, err := h.service.AdjustCrowns(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, adminevents.AdjustCrownsSuccess, adminevents.AdjustCrownsFailed), nil
}

func (h *Handlers) HandleImport(ctx context.Context, payload *adminevents.ImportRequest) ([]shared.Result, error) {
	result, err := h.service.Import(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return []shared.Result{{Topic: adminevents.ImportProcessed, Payload: result}}, nil
}

func (h *Handlers) HandleExport(ctx context.Context, payload *adminevents.ExportRequest) ([]shared.Result, error) {
	result, err := h.service.Export(ctx, *payload)
	if err != nil {
		return nil, err
	}
	// The workbook goes straight to the gateway's send topic.
	return resultEvents(result, shared.TopicDiscordMessageSend, adminevents.ExportFailed), nil
}
