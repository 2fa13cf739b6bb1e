package adminservice

import (
	"context"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	scoreevents "github.com/wordle-club/wordle-bot/app/modules/score/events"
)

// Import replays one batch of historical messages through ingestion.
// Callouts and the post-digest leaderboard auto-post stay suppressed; a
// backfill of months of history must not flood the channel.
func (s *AdminService) Import(ctx context.Context, req adminevents.ImportRequest) (adminevents.ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "admin.import")
	defer span.End()

	ingested, skipped := 0, 0
	for i := range req.Messages {
		results, err := s.ingestor.ProcessMessage(ctx, &req.Messages[i], scoreservice.ProcessOptions{Notify: false})
		if err != nil {
			return adminevents.ImportResult{}, err
		}

		matched := false
		for _, res := range results {
			switch res.Topic {
			case scoreevents.Ingested:
				ingested++
				matched = true
			case scoreevents.DigestProcessed:
				if p, ok := res.Payload.(scoreevents.DigestProcessedPayload); ok {
					ingested += p.Scores
				}
				matched = true
			}
		}
		if !matched {
			skipped++
		}
	}

	s.logger.InfoContext(ctx, "import batch processed",
		"batch", req.Batch, "messages", len(req.Messages),
		"ingested", ingested, "skipped", skipped, "final", req.Final)
	return adminevents.ImportResult{
		ChannelID: req.ChannelID,
		Batch:     req.Batch,
		Final:     req.Final,
		Ingested:  ingested,
		Skipped:   skipped,
	}, nil
}
