package adminservice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	admindb "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/repositories"
	scoredomain "github.com/wordle-club/wordle-bot/app/modules/score/domain"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Ban excludes a user from ingestion. Their existing scores stay.
func (s *AdminService) Ban(ctx context.Context, req adminevents.BanRequest) (shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.ban")
	defer span.End()

	if req.UserID == "" {
		return shared.FailureResult[adminevents.BanResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "no user given",
		}), nil
	}
	if err := s.repo.Ban(ctx, s.db, req.UserID, req.Username); err != nil {
		return shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload]{}, err
	}

	s.logger.InfoContext(ctx, "user banned", "user_id", req.UserID, "actor_id", req.ActorID)
	return shared.SuccessResult[adminevents.BanResult, adminevents.ErrorPayload](adminevents.BanResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Username:  req.Username,
	}), nil
}

// Unban lifts a ban.
func (s *AdminService) Unban(ctx context.Context, req adminevents.UnbanRequest) (shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.unban")
	defer span.End()

	removed, err := s.repo.Unban(ctx, s.db, req.UserID)
	if err != nil {
		return shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload]{}, err
	}
	if !removed {
		return shared.FailureResult[adminevents.BanResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "that user was not banned",
		}), nil
	}

	s.logger.InfoContext(ctx, "user unbanned", "user_id", req.UserID, "actor_id", req.ActorID)
	return shared.SuccessResult[adminevents.BanResult, adminevents.ErrorPayload](adminevents.BanResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
	}), nil
}

// BanList returns the current ban list.
func (s *AdminService) BanList(ctx context.Context, req adminevents.BanListRequest) (adminevents.BanListResult, error) {
	ctx, span := s.tracer.Start(ctx, "admin.banlist")
	defer span.End()

	banned, err := s.repo.ListBanned(ctx, s.db)
	if err != nil {
		return adminevents.BanListResult{}, err
	}

	entries := make([]adminevents.BannedEntry, 0, len(banned))
	for _, b := range banned {
		entries = append(entries, adminevents.BannedEntry{UserID: b.UserID, Username: b.Username})
	}
	return adminevents.BanListResult{ChannelID: req.ChannelID, Entries: entries}, nil
}

// RemoveScores deletes the user's rows for the requested puzzles in a
// single transaction. A puzzle with nothing recorded just lowers the
// removed count in the reply.
func (s *AdminService) RemoveScores(ctx context.Context, req adminevents.RemoveScoresRequest) (shared.OperationResult[adminevents.RemoveScoresResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.removescores")
	defer span.End()

	if len(req.WordleNumbers) == 0 {
		return shared.FailureResult[adminevents.RemoveScoresResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "no puzzle numbers given",
		}), nil
	}

	var counts admindb.RemovedCounts
	err := s.txr.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		removed, err := s.repo.RemoveScores(ctx, tx, req.UserID, req.WordleNumbers)
		if err != nil {
			return err
		}
		counts = removed
		return nil
	})
	if err != nil {
		return shared.OperationResult[adminevents.RemoveScoresResult, adminevents.ErrorPayload]{}, fmt.Errorf("remove scores: %w", err)
	}

	s.logger.InfoContext(ctx, "scores removed",
		"user_id", req.UserID, "actor_id", req.ActorID,
		"requested", len(req.WordleNumbers), "removed", counts.Scores+counts.Fails)
	return shared.SuccessResult[adminevents.RemoveScoresResult, adminevents.ErrorPayload](adminevents.RemoveScoresResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Requested: len(req.WordleNumbers),
		Removed:   counts.Scores + counts.Fails,
	}), nil
}

// SetFails grants or removes fail rows for specific puzzles.
func (s *AdminService) SetFails(ctx context.Context, req adminevents.SetFailsRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.setfails")
	defer span.End()

	if len(req.WordleNumbers) == 0 {
		return shared.FailureResult[adminevents.AdjustResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "no puzzle numbers given",
		}), nil
	}

	for _, n := range req.WordleNumbers {
		if req.Remove {
			if err := s.scores.DeleteFail(ctx, s.db, req.UserID, n); err != nil {
				return shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload]{}, err
			}
			continue
		}
		if err := s.scores.InsertFail(ctx, s.db, &scoredb.Fail{
			UserID:       req.UserID,
			Username:     req.Username,
			WordleNumber: n,
			Date:         scoredomain.DateForPuzzle(n),
		}); err != nil {
			return shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload]{}, err
		}
	}

	s.logger.InfoContext(ctx, "fails adjusted",
		"user_id", req.UserID, "actor_id", req.ActorID,
		"puzzles", len(req.WordleNumbers), "remove", req.Remove)
	return shared.SuccessResult[adminevents.AdjustResult, adminevents.ErrorPayload](adminevents.AdjustResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Changed:   len(req.WordleNumbers),
	}), nil
}

// SetUncontended overwrites a user's uncontended crown counter.
func (s *AdminService) SetUncontended(ctx context.Context, req adminevents.SetUncontendedRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.setuncontended")
	defer span.End()

	if req.Count < 0 {
		return shared.FailureResult[adminevents.AdjustResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "count cannot be negative",
		}), nil
	}
	if err := s.repo.SetUncontended(ctx, s.db, req.UserID, req.Count); err != nil {
		return shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload]{}, err
	}

	s.logger.InfoContext(ctx, "uncontended counter set",
		"user_id", req.UserID, "actor_id", req.ActorID, "count", req.Count)
	return shared.SuccessResult[adminevents.AdjustResult, adminevents.ErrorPayload](adminevents.AdjustResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Changed:   req.Count,
	}), nil
}

// AdjustCrowns grants or revokes crowns for specific puzzles.
func (s *AdminService) AdjustCrowns(ctx context.Context, req adminevents.AdjustCrownsRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.adjustcrowns")
	defer span.End()

	if len(req.WordleNumbers) == 0 {
		return shared.FailureResult[adminevents.AdjustResult](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "no puzzle numbers given",
		}), nil
	}

	changed := 0
	for _, n := range req.WordleNumbers {
		if req.Revoke {
			removed, err := s.repo.RevokeCrown(ctx, s.db, req.UserID, n)
			if err != nil {
				return shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload]{}, err
			}
			if removed {
				changed++
			}
			continue
		}
		inserted, err := s.scores.InsertCrown(ctx, s.db, &scoredb.Crown{
			UserID:       req.UserID,
			Username:     req.Username,
			WordleNumber: n,
			Date:         scoredomain.DateForPuzzle(n),
		})
		if err != nil {
			return shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload]{}, err
		}
		if inserted {
			changed++
		}
	}

	s.logger.InfoContext(ctx, "crowns adjusted",
		"user_id", req.UserID, "actor_id", req.ActorID,
		"changed", changed, "revoke", req.Revoke)
	return shared.SuccessResult[adminevents.AdjustResult, adminevents.ErrorPayload](adminevents.AdjustResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Changed:   changed,
	}), nil
}
