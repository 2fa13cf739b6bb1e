package leaderboardservice

import (
	"context"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Service answers every leaderboard command.
type Service interface {
	Leaderboard(ctx context.Context, req leaderboardevents.GetLeaderboardRequest) (shared.OperationResult[leaderboardevents.GetLeaderboardResult, leaderboardevents.ErrorPayload], error)
	Page(ctx context.Context, req leaderboardevents.PageRequest) (shared.OperationResult[leaderboardevents.PageResult, leaderboardevents.ErrorPayload], error)
	Stats(ctx context.Context, req leaderboardevents.StatsRequest) (shared.OperationResult[leaderboardevents.StatsResult, leaderboardevents.ErrorPayload], error)
	Streak(ctx context.Context, req leaderboardevents.StreakRequest) (shared.OperationResult[leaderboardevents.StreakResult, leaderboardevents.ErrorPayload], error)
	TopStreaks(ctx context.Context, req leaderboardevents.StreaksRequest) (shared.OperationResult[leaderboardevents.StreaksResult, leaderboardevents.ErrorPayload], error)
	Crowns(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error)
	Uncontended(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error)
	Fails(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error)
	PredictionDigest(ctx context.Context, channelID shared.DiscordID) (leaderboardevents.PredictionDigestPayload, error)
}
