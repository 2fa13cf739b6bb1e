package scoreservice

import (
	"context"
	"fmt"
	"time"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// IngestInput is one score ready to be recorded. A nil Attempts records a
// fail. Notify suppresses the ace / personal-best callouts when false,
// which the import path relies on.
type IngestInput struct {
	UserID       shared.DiscordID
	Username     string
	WordleNumber int
	Attempts     *int
	Date         time.Time
	ChannelID    shared.DiscordID
	Source       string
	Notify       bool
}

// IngestedScore describes what was written.
type IngestedScore struct {
	UserID       shared.DiscordID
	Username     string
	WordleNumber int
	Attempts     *int
	Date         time.Time
	Notification NotificationKind
}

// IngestFailure describes why nothing was written.
type IngestFailure struct {
	UserID shared.DiscordID
	Reason string
}

// NotificationKind classifies the callout an ingested score earned.
type NotificationKind int

const (
	NotifyNone NotificationKind = iota
	NotifyAce
	NotifyPersonalBest
)

// IngestScore records a single result. Re-ingesting the same user and
// puzzle overwrites the previous row, so edited messages and digest
// replays converge on one score. The previous-best read happens before
// the write; overwriting your own score with the same value never
// re-triggers a personal-best callout because the stored best already
// includes it.
func (s *ScoreService) IngestScore(ctx context.Context, in IngestInput) (shared.OperationResult[IngestedScore, IngestFailure], error) {
	ctx, span := s.tracer.Start(ctx, "score.ingest")
	defer span.End()

	banned, err := s.repo.IsBanned(ctx, s.db, in.UserID)
	if err != nil {
		return shared.OperationResult[IngestedScore, IngestFailure]{}, fmt.Errorf("check ban: %w", err)
	}
	if banned {
		s.logger.InfoContext(ctx, "dropping score from banned user", "user_id", in.UserID)
		return shared.FailureResult[IngestedScore](IngestFailure{UserID: in.UserID, Reason: "user is banned"}), nil
	}

	prevBest, err := s.repo.PreviousBest(ctx, s.db, in.UserID)
	if err != nil {
		return shared.OperationResult[IngestedScore, IngestFailure]{}, fmt.Errorf("read previous best: %w", err)
	}

	score := &scoredb.Score{
		UserID:       in.UserID,
		Username:     in.Username,
		WordleNumber: in.WordleNumber,
		Date:         in.Date,
		Attempts:     in.Attempts,
	}
	if err := s.repo.UpsertScore(ctx, s.db, score); err != nil {
		return shared.OperationResult[IngestedScore, IngestFailure]{}, fmt.Errorf("upsert score: %w", err)
	}

	if in.Attempts == nil {
		if err := s.repo.InsertFail(ctx, s.db, &scoredb.Fail{
			UserID:       in.UserID,
			Username:     in.Username,
			WordleNumber: in.WordleNumber,
			Date:         in.Date,
		}); err != nil {
			return shared.OperationResult[IngestedScore, IngestFailure]{}, fmt.Errorf("insert fail: %w", err)
		}
	} else {
		// An edit can turn an X into a solve; the stale fail row has to go.
		if err := s.repo.DeleteFail(ctx, s.db, in.UserID, in.WordleNumber); err != nil {
			return shared.OperationResult[IngestedScore, IngestFailure]{}, fmt.Errorf("delete fail: %w", err)
		}
	}

	out := IngestedScore{
		UserID:       in.UserID,
		Username:     in.Username,
		WordleNumber: in.WordleNumber,
		Attempts:     in.Attempts,
		Date:         in.Date,
		Notification: classifyNotification(in.Attempts, prevBest),
	}

	if in.Notify && out.Notification != NotifyNone && s.notifier != nil {
		if err := s.notifier.Send(ctx, in.ChannelID, notificationText(out)); err != nil {
			// Callouts are decoration; the score is already recorded.
			s.logger.WarnContext(ctx, "failed to send score callout", "user_id", in.UserID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "score ingested",
		"user_id", in.UserID,
		"wordle_number", in.WordleNumber,
		"attempts", attemptsLabel(in.Attempts),
		"source", in.Source,
	)
	return shared.SuccessResult[IngestedScore, IngestFailure](out), nil
}

func classifyNotification(attempts, prevBest *int) NotificationKind {
	if attempts == nil {
		return NotifyNone
	}
	if *attempts == 1 {
		return NotifyAce
	}
	// A first-ever solve counts as a personal best too.
	if prevBest == nil || *attempts < *prevBest {
		return NotifyPersonalBest
	}
	return NotifyNone
}

func notificationText(s IngestedScore) string {
	switch s.Notification {
	case NotifyAce:
		return fmt.Sprintf("This rat <@%s> got it in **1/6**... LOSAH CHEATED 100%%!!", s.UserID)
	case NotifyPersonalBest:
		return fmt.Sprintf("Flippin <@%s> just beat their personal best with **%d/6**. Good Job Brev 👍", s.UserID, *s.Attempts)
	}
	return ""
}

func attemptsLabel(attempts *int) string {
	if attempts == nil {
		return "X"
	}
	return fmt.Sprintf("%d", *attempts)
}
