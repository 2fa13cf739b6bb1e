package adminservice

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Export renders the full standings as a spreadsheet attachment for the
// gateway to upload.
func (s *AdminService) Export(ctx context.Context, req adminevents.ExportRequest) (shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "admin.export")
	defer span.End()

	scores, err := s.repo.AllScores(ctx, s.db)
	if err != nil {
		return shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload]{}, err
	}
	if len(scores) == 0 {
		return shared.FailureResult[shared.OutboundMessagePayload](adminevents.ErrorPayload{
			ChannelID: req.ChannelID,
			Reason:    "nothing recorded yet",
		}), nil
	}
	fails, err := s.repo.AllFails(ctx, s.db)
	if err != nil {
		return shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload]{}, err
	}
	crowns, err := s.repo.AllCrowns(ctx, s.db)
	if err != nil {
		return shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload]{}, err
	}

	data, err := buildWorkbook(scores, fails, crowns)
	if err != nil {
		return shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload]{}, fmt.Errorf("build export workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "standings exported",
		"actor_id", req.ActorID, "scores", len(scores), "bytes", len(data))
	return shared.SuccessResult[shared.OutboundMessagePayload, adminevents.ErrorPayload](shared.OutboundMessagePayload{
		ChannelID: req.ChannelID,
		Content:   fmt.Sprintf("Standings export, %d scores.", len(scores)),
		Attachment: &shared.AttachmentPayload{
			Filename: fmt.Sprintf("wordle-standings-%s.xlsx", time.Now().UTC().Format(time.DateOnly)),
			Data:     data,
		},
	}), nil
}

func buildWorkbook(scores []scoredb.Score, fails []scoredb.Fail, crowns []scoredb.Crown) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const scoresSheet = "Scores"
	if err := f.SetSheetName("Sheet1", scoresSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(scoresSheet, "A1", &[]any{"User ID", "Username", "Puzzle", "Attempts", "Date"}); err != nil {
		return nil, err
	}
	for i, sc := range scores {
		attempts := "X"
		if sc.Attempts != nil {
			attempts = fmt.Sprintf("%d", *sc.Attempts)
		}
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{string(sc.UserID), sc.Username, sc.WordleNumber, attempts, sc.Date.Format(time.DateOnly)}
		if err := f.SetSheetRow(scoresSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const failsSheet = "Fails"
	if _, err := f.NewSheet(failsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(failsSheet, "A1", &[]any{"User ID", "Username", "Puzzle", "Date"}); err != nil {
		return nil, err
	}
	for i, fl := range fails {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{string(fl.UserID), fl.Username, fl.WordleNumber, fl.Date.Format(time.DateOnly)}
		if err := f.SetSheetRow(failsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const crownsSheet = "Crowns"
	if _, err := f.NewSheet(crownsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(crownsSheet, "A1", &[]any{"User ID", "Username", "Puzzle", "Date"}); err != nil {
		return nil, err
	}
	for i, c := range crowns {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{string(c.UserID), c.Username, c.WordleNumber, c.Date.Format(time.DateOnly)}
		if err := f.SetSheetRow(crownsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
