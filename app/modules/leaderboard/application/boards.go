package leaderboardservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Crowns answers the crowns board command.
func (s *LeaderboardService) Crowns(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error) {
	return s.countBoard(ctx, "leaderboard.crowns", req, s.repo.CrownCounts)
}

// Uncontended answers the uncontended crowns board command.
func (s *LeaderboardService) Uncontended(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error) {
	return s.countBoard(ctx, "leaderboard.uncontended", req, s.repo.UncontendedCounts)
}

// Fails answers the fails board command.
func (s *LeaderboardService) Fails(ctx context.Context, req leaderboardevents.CountRequest) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error) {
	return s.countBoard(ctx, "leaderboard.fails", req, s.repo.FailCounts)
}

func (s *LeaderboardService) countBoard(
	ctx context.Context,
	span string,
	req leaderboardevents.CountRequest,
	query func(context.Context, bun.IDB, int) ([]leaderboarddb.CountRow, error),
) (shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload], error) {
	ctx, sp := s.tracer.Start(ctx, span)
	defer sp.End()

	rows, err := query(ctx, s.db, boardSize)
	if err != nil {
		return shared.OperationResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload]{}, err
	}

	entries := make([]leaderboardevents.CountEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, leaderboardevents.CountEntry{
			UserID:   row.UserID,
			Username: row.Username,
			Count:    row.Count,
		})
	}
	return shared.SuccessResult[leaderboardevents.CountResult, leaderboardevents.ErrorPayload](leaderboardevents.CountResult{
		ChannelID: req.ChannelID,
		Entries:   entries,
	}), nil
}

// PredictionDigest scores every active player's recent form for the daily
// prediction post.
func (s *LeaderboardService) PredictionDigest(ctx context.Context, channelID shared.DiscordID) (leaderboardevents.PredictionDigestPayload, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.prediction")
	defer span.End()

	since := s.now().Add(-predictionWindow)
	rows, err := s.repo.Predictions(ctx, s.db, since, boardSize)
	if err != nil {
		return leaderboardevents.PredictionDigestPayload{}, err
	}

	entries := make([]leaderboardevents.PredictionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, leaderboardevents.PredictionEntry{
			UserID:      row.UserID,
			Username:    row.Username,
			Predicted:   row.Predicted,
			GamesPlayed: row.GamesPlayed,
		})
	}
	return leaderboardevents.PredictionDigestPayload{
		ChannelID: channelID,
		Date:      s.now().UTC().Format(time.DateOnly),
		Entries:   entries,
	}, nil
}
