package adminservice

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// RequestReset arms the two-phase wipe. Nothing is touched until the same
// actor replies "yes" within the confirmation window.
func (s *AdminService) RequestReset(ctx context.Context, req adminevents.ResetRequest) (shared.OperationResult[adminevents.ResetNotice, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.reset.request")
	defer span.End()

	notice := adminevents.ResetNotice{
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		ActorID:   req.ActorID,
	}
	if !s.confirmations.Arm(notice) {
		return shared.FailureResult[adminevents.ResetNotice](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "a reset is already awaiting confirmation",
		}), nil
	}

	s.logger.InfoContext(ctx, "reset armed", "guild_id", req.GuildID, "actor_id", req.ActorID)
	return shared.SuccessResult[adminevents.ResetNotice, adminevents.ErrorPayload](notice), nil
}

// HandleConfirmation inspects a plain chat message for a "yes" or "no"
// from an actor with a reset pending. Other messages are ignored.
func (s *AdminService) HandleConfirmation(ctx context.Context, msg *shared.MessagePayload) ([]shared.Result, error) {
	if msg.AuthorIsBot {
		return nil, nil
	}

	switch strings.ToLower(strings.TrimSpace(msg.Content)) {
	case "yes":
		notice, ok := s.confirmations.Claim(msg.GuildID, msg.AuthorID)
		if !ok {
			return nil, nil
		}
		if err := s.performReset(ctx); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "standings reset", "guild_id", msg.GuildID, "actor_id", msg.AuthorID)
		return []shared.Result{{Topic: adminevents.ResetSuccess, Payload: notice}}, nil
	case "no":
		notice, ok := s.confirmations.Cancel(msg.GuildID, msg.AuthorID)
		if !ok {
			return nil, nil
		}
		return []shared.Result{{Topic: adminevents.ResetCancelled, Payload: notice}}, nil
	}
	return nil, nil
}

func (s *AdminService) performReset(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "admin.reset.execute")
	defer span.End()

	err := s.txr.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.ResetAll(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("reset standings: %w", err)
	}
	return nil
}
