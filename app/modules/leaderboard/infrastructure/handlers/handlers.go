package leaderboardhandlers

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	leaderboardservice "github.com/wordle-club/wordle-bot/app/modules/leaderboard/application"
	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Handlers maps leaderboard command events onto the service.
type Handlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewHandlers wires the leaderboard handlers.
func NewHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer) *Handlers {
	return &Handlers{service: service, logger: logger, tracer: tracer}
}

// resultEvents routes an operation result to its success or failure topic.
func resultEvents[S, F any](r shared.OperationResult[S, F], successTopic, failureTopic string) []shared.Result {
	if r.IsSuccess() {
		return []shared.Result{{Topic: successTopic, Payload: *r.Success}}
	}
	return []shared.Result{{Topic: failureTopic, Payload: *r.Failure}}
}

func (h *Handlers) HandleGetLeaderboard(ctx context.Context, payload *leaderboardevents.GetLeaderboardRequest) ([]shared.Result, error) {
	result, err := h.service.Leaderboard(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.GetSuccess, leaderboardevents.GetFailed), nil
}

func (h *Handlers) HandlePage(ctx context.Context, payload *leaderboardevents.PageRequest) ([]shared.Result, error) {
	result, err := h.service.Page(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.PageSuccess, leaderboardevents.PageFailed), nil
}

func (h *Handlers) HandleStats(ctx context.Context, payload *leaderboardevents.StatsRequest) ([]shared.Result, error) {
	result, err := h.service.Stats(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.StatsSuccess, leaderboardevents.StatsFailed), nil
}

func (h *Handlers) HandleStreak(ctx context.Context, payload *leaderboardevents.StreakRequest) ([]shared.Result, error) {
	result, err := h.service.Streak(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.StreakSuccess, leaderboardevents.StreakFailed), nil
}

func (h *Handlers) HandleTopStreaks(ctx context.Context, payload *leaderboardevents.StreaksRequest) ([]shared.Result, error) {
	result, err := h.service.TopStreaks(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.StreaksSuccess, leaderboardevents.StreaksFailed), nil
}

func (h *Handlers) HandleCrowns(ctx context.Context, payload *leaderboardevents.CountRequest) ([]shared.Result, error) {
	result, err := h.service.Crowns(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.CrownsSuccess, leaderboardevents.CrownsFailed), nil
}

func (h *Handlers) HandleUncontended(ctx context.Context, payload *leaderboardevents.CountRequest) ([]shared.Result, error) {
	result, err := h.service.Uncontended(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.UncontendedSuccess, leaderboardevents.UncontendedFailed), nil
}

func (h *Handlers) HandleFails(ctx context.Context, payload *leaderboardevents.CountRequest) ([]shared.Result, error) {
	result, err := h.service.Fails(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return resultEvents(result, leaderboardevents.FailsSuccess, leaderboardevents.FailsFailed), nil
}
