package leaderboardservice

import (
	"context"
	"fmt"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Leaderboard builds the top-10 board. When the requester sits outside
// the top 10 their own ranked row rides along.
func (s *LeaderboardService) Leaderboard(ctx context.Context, req leaderboardevents.GetLeaderboardRequest) (shared.OperationResult[leaderboardevents.GetLeaderboardResult, leaderboardevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.get")
	defer span.End()

	if !req.Range.Valid() {
		return shared.FailureResult[leaderboardevents.GetLeaderboardResult](leaderboardevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    fmt.Sprintf("unknown range %q", req.Range),
		}), nil
	}

	since := s.rangeSince(req.Range)
	rows, err := s.repo.Leaderboard(ctx, s.db, since, boardSize, 0)
	if err != nil {
		return shared.OperationResult[leaderboardevents.GetLeaderboardResult, leaderboardevents.ErrorPayload]{}, err
	}

	result := leaderboardevents.GetLeaderboardResult{
		ChannelID: req.ChannelID,
		Range:     req.Range,
		Entries:   toEntries(rows, 1),
	}

	if req.RequesterID != "" && !containsUser(result.Entries, req.RequesterID) {
		ranked, err := s.repo.UserRank(ctx, s.db, req.RequesterID, since)
		if err != nil {
			return shared.OperationResult[leaderboardevents.GetLeaderboardResult, leaderboardevents.ErrorPayload]{}, err
		}
		if ranked != nil {
			entry := toEntry(ranked.Row, ranked.Rank)
			result.Requester = &entry
		}
	}

	if req.WithChart && len(result.Entries) > 0 {
		png, err := renderBoardChart(result.Entries)
		if err != nil {
			// The board still renders as text.
			s.logger.WarnContext(ctx, "failed to render leaderboard chart", "error", err)
		} else {
			result.ChartPNG = png
		}
	}

	return shared.SuccessResult[leaderboardevents.GetLeaderboardResult, leaderboardevents.ErrorPayload](result), nil
}

// Page builds one page of the full board.
func (s *LeaderboardService) Page(ctx context.Context, req leaderboardevents.PageRequest) (shared.OperationResult[leaderboardevents.PageResult, leaderboardevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.page")
	defer span.End()

	if !req.Range.Valid() {
		return shared.FailureResult[leaderboardevents.PageResult](leaderboardevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    fmt.Sprintf("unknown range %q", req.Range),
		}), nil
	}
	if req.Page < 1 {
		req.Page = 1
	}

	since := s.rangeSince(req.Range)
	total, err := s.repo.CountUsers(ctx, s.db, since)
	if err != nil {
		return shared.OperationResult[leaderboardevents.PageResult, leaderboardevents.ErrorPayload]{}, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if req.Page > totalPages {
		return shared.FailureResult[leaderboardevents.PageResult](leaderboardevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    fmt.Sprintf("page %d is out of range, the board has %d pages", req.Page, totalPages),
		}), nil
	}

	offset := (req.Page - 1) * pageSize
	rows, err := s.repo.Leaderboard(ctx, s.db, since, pageSize, offset)
	if err != nil {
		return shared.OperationResult[leaderboardevents.PageResult, leaderboardevents.ErrorPayload]{}, err
	}

	return shared.SuccessResult[leaderboardevents.PageResult, leaderboardevents.ErrorPayload](leaderboardevents.PageResult{
		ChannelID:  req.ChannelID,
		Range:      req.Range,
		Page:       req.Page,
		TotalPages: totalPages,
		TotalUsers: total,
		Entries:    toEntries(rows, offset+1),
	}), nil
}

func toEntries(rows []leaderboarddb.Row, firstRank int) []leaderboardevents.Entry {
	entries := make([]leaderboardevents.Entry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, toEntry(row, firstRank+i))
	}
	return entries
}

func toEntry(row leaderboarddb.Row, rank int) leaderboardevents.Entry {
	return leaderboardevents.Entry{
		Rank:        rank,
		UserID:      row.UserID,
		Username:    row.Username,
		GamesPlayed: row.GamesPlayed,
		Fails:       row.Fails,
		BestScore:   row.BestScore,
		AvgAttempts: row.AvgAttempts,
	}
}

func containsUser(entries []leaderboardevents.Entry, userID shared.DiscordID) bool {
	for _, e := range entries {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
