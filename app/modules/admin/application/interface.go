package adminservice

import (
	"context"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Service executes every admin command.
type Service interface {
	Ban(ctx context.Context, req adminevents.BanRequest) (shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload], error)
	Unban(ctx context.Context, req adminevents.UnbanRequest) (shared.OperationResult[adminevents.BanResult, adminevents.ErrorPayload], error)
	BanList(ctx context.Context, req adminevents.BanListRequest) (adminevents.BanListResult, error)
	RequestReset(ctx context.Context, req adminevents.ResetRequest) (shared.OperationResult[adminevents.ResetNotice, adminevents.ErrorPayload], error)
	HandleConfirmation(ctx context.Context, msg *shared.MessagePayload) ([]shared.Result, error)
	RemoveScores(ctx context.Context, req adminevents.RemoveScoresRequest) (shared.OperationResult[adminevents.RemoveScoresResult, adminevents.ErrorPayload], error)
	SetFails(ctx context.Context, req adminevents.SetFailsRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error)
	SetUncontended(ctx context.Context, req adminevents.SetUncontendedRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error)
	AdjustCrowns(ctx context.Context, req adminevents.AdjustCrownsRequest) (shared.OperationResult[adminevents.AdjustResult, adminevents.ErrorPayload], error)
	Import(ctx context.Context, req adminevents.ImportRequest) (adminevents.ImportResult, error)
	Export(ctx context.Context, req adminevents.ExportRequest) (shared.OperationResult[shared.OutboundMessagePayload, adminevents.ErrorPayload], error)
}
