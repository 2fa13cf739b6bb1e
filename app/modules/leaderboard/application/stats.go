package leaderboardservice

import (
	"context"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Stats answers the per-user stats command.
func (s *LeaderboardService) Stats(ctx context.Context, req leaderboardevents.StatsRequest) (shared.OperationResult[leaderboardevents.StatsResult, leaderboardevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.stats")
	defer span.End()

	stats, err := s.repo.Stats(ctx, s.db, req.UserID)
	if err != nil {
		return shared.OperationResult[leaderboardevents.StatsResult, leaderboardevents.ErrorPayload]{}, err
	}
	if stats == nil {
		return shared.FailureResult[leaderboardevents.StatsResult](leaderboardevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "no scores recorded for that user",
		}), nil
	}

	puzzles, err := s.repo.UserPuzzles(ctx, s.db, req.UserID)
	if err != nil {
		return shared.OperationResult[leaderboardevents.StatsResult, leaderboardevents.ErrorPayload]{}, err
	}

	result := leaderboardevents.StatsResult{
		ChannelID:   req.ChannelID,
		UserID:      req.UserID,
		Username:    stats.Username,
		GamesPlayed: stats.GamesPlayed,
		Fails:       stats.Fails,
		BestScore:   stats.BestScore,
		AvgScore:    stats.AvgAttempts,
		Streak:      CalculateStreak(puzzles),
	}
	if stats.LastPlayed != nil {
		result.LastPlayed = stats.LastPlayed.Format("2006-01-02")
	}
	return shared.SuccessResult[leaderboardevents.StatsResult, leaderboardevents.ErrorPayload](result), nil
}
