package scoreservice

import (
	"context"
	"fmt"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	scoredomain "github.com/wordle-club/wordle-bot/app/modules/score/domain"
	scoreevents "github.com/wordle-club/wordle-bot/app/modules/score/events"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// ProcessOptions tunes one message's ingestion. Edits and digest replays
// flow through the same path as fresh posts.
type ProcessOptions struct {
	IsEdit bool
	Notify bool
}

// ProcessMessage classifies one gateway message and runs the matching
// ingestion flow. The returned results carry their destination topic in
// metadata; callers publish them as-is.
func (s *ScoreService) ProcessMessage(ctx context.Context, msg *shared.MessagePayload, opts ProcessOptions) ([]shared.Result, error) {
	ctx, span := s.tracer.Start(ctx, "score.process_message")
	defer span.End()

	switch kind := scoredomain.Classify(msg, s.companionBotID); kind {
	case scoredomain.KindIndividualResult:
		return s.processIndividual(ctx, msg, opts)
	case scoredomain.KindShareEmbed:
		return s.processShareEmbed(ctx, msg, opts)
	case scoredomain.KindSummaryDigest:
		return s.processDigest(ctx, msg)
	default:
		return nil, nil
	}
}

func (s *ScoreService) processIndividual(ctx context.Context, msg *shared.MessagePayload, opts ProcessOptions) ([]shared.Result, error) {
	ext, ok := scoredomain.ExtractScore(msg.Content)
	if !ok {
		return nil, nil
	}

	result, err := s.IngestScore(ctx, IngestInput{
		UserID:       msg.AuthorID,
		Username:     msg.AuthorUsername,
		WordleNumber: ext.PuzzleNumber,
		Attempts:     ext.Attempts,
		Date:         msg.CreatedAt,
		ChannelID:    msg.ChannelID,
		Source:       "message",
		Notify:       opts.Notify,
	})
	if err != nil {
		return nil, err
	}
	return s.ingestResults(msg, result, "message"), nil
}

// processShareEmbed handles the companion bot reposting a share. The
// embed names the puzzle but not the human who played it, so the author
// is resolved from recent channel history. No candidate means no write.
func (s *ScoreService) processShareEmbed(ctx context.Context, msg *shared.MessagePayload, opts ProcessOptions) ([]shared.Result, error) {
	var (
		ext   scoredomain.Extraction
		found bool
	)
	for _, embed := range msg.Embeds {
		if ext, found = scoredomain.ExtractScore(embed.Title); found {
			break
		}
		if ext, found = scoredomain.ExtractScore(embed.Description); found {
			break
		}
	}
	if !found {
		return nil, nil
	}

	author, err := s.history.RecentShareAuthor(ctx, msg.ChannelID, msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("resolve share author: %w", err)
	}
	if author == nil {
		s.logger.WarnContext(ctx, "no author candidate for share embed",
			"channel_id", msg.ChannelID, "message_id", msg.MessageID)
		return nil, nil
	}

	result, err := s.IngestScore(ctx, IngestInput{
		UserID:       author.UserID,
		Username:     author.Username,
		WordleNumber: ext.PuzzleNumber,
		Attempts:     ext.Attempts,
		Date:         msg.CreatedAt,
		ChannelID:    msg.ChannelID,
		Source:       "share_embed",
		Notify:       opts.Notify,
	})
	if err != nil {
		return nil, err
	}
	return s.ingestResults(msg, result, "share_embed"), nil
}

// processDigest ingests the companion bot's morning summary of
// yesterday's results, then settles crowns for that puzzle and queues an
// automatic leaderboard post.
func (s *ScoreService) processDigest(ctx context.Context, msg *shared.MessagePayload) ([]shared.Result, error) {
	digestDate := msg.CreatedAt.AddDate(0, 0, -1)
	wordleNumber := scoredomain.PuzzleNumberForDate(digestDate)

	ingested := 0
	for _, line := range scoredomain.ParseSummaryLines(msg.Content) {
		mentions := scoredomain.ResolveMentions(line.UserSection, msg.Mentions)
		if len(mentions) == 0 {
			s.logger.WarnContext(ctx, "digest line matched no mention",
				"wordle_number", wordleNumber, "section", line.UserSection)
			continue
		}
		for _, m := range mentions {
			result, err := s.IngestScore(ctx, IngestInput{
				UserID:       m.UserID,
				Username:     m.Username,
				WordleNumber: wordleNumber,
				Attempts:     line.Attempts,
				Date:         digestDate,
				ChannelID:    msg.ChannelID,
				Source:       "digest",
				Notify:       false,
			})
			if err != nil {
				return nil, err
			}
			if result.IsSuccess() {
				ingested++
			}
		}
	}

	crowns, err := s.ResolveCrowns(ctx, wordleNumber, digestDate)
	if err != nil {
		return nil, err
	}

	// The digest's crown line can name winners the score lines do not
	// cover. Insert those after settlement so a sole winner's counter is
	// not suppressed by the dedup in ResolveCrowns.
	for _, line := range scoredomain.CrownLines(msg.Content) {
		for _, m := range scoredomain.ResolveMentions(line, msg.Mentions) {
			if _, err := s.repo.InsertCrown(ctx, s.db, &scoredb.Crown{
				UserID:       m.UserID,
				Username:     m.Username,
				WordleNumber: wordleNumber,
				Date:         digestDate,
			}); err != nil {
				return nil, fmt.Errorf("insert crown from digest line: %w", err)
			}
		}
	}

	winners := make([]string, 0, len(crowns.Winners))
	for _, w := range crowns.Winners {
		winners = append(winners, w.Username)
	}

	return []shared.Result{
		{Topic: scoreevents.DigestProcessed, Payload: scoreevents.DigestProcessedPayload{
			WordleNumber: wordleNumber,
			Scores:       ingested,
			Winners:      winners,
			Uncontended:  crowns.Uncontended,
		}},
		{Topic: leaderboardevents.GetRequested, Payload: leaderboardevents.GetLeaderboardRequest{
			GuildID:   msg.GuildID,
			ChannelID: msg.ChannelID,
			Range:     leaderboardevents.RangeAll,
		}},
	}, nil
}

func (s *ScoreService) ingestResults(msg *shared.MessagePayload, result shared.OperationResult[IngestedScore, IngestFailure], source string) []shared.Result {
	if result.IsSuccess() {
		sc := result.Success
		return []shared.Result{{Topic: scoreevents.Ingested, Payload: scoreevents.IngestedPayload{
			UserID:       sc.UserID,
			Username:     sc.Username,
			WordleNumber: sc.WordleNumber,
			Attempts:     sc.Attempts,
			Date:         sc.Date.Format("2006-01-02"),
			Source:       source,
		}}}
	}
	return []shared.Result{{Topic: scoreevents.IngestFailed, Payload: scoreevents.IngestFailedPayload{
		MessageID: msg.MessageID,
		UserID:    result.Failure.UserID,
		Reason:    result.Failure.Reason,
	}}}
}
