package scoreservice

import (
	"context"
	"time"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// Service processes gateway message traffic into recorded scores.
type Service interface {
	ProcessMessage(ctx context.Context, msg *shared.MessagePayload, opts ProcessOptions) ([]shared.Result, error)
	IngestScore(ctx context.Context, in IngestInput) (shared.OperationResult[IngestedScore, IngestFailure], error)
}

// HistoryLookup resolves the author of the most recent share-style result
// posted in a channel before a given time. Implemented over the gateway's
// request/reply surface; a nil payload with nil error means no candidate
// was found.
type HistoryLookup interface {
	RecentShareAuthor(ctx context.Context, channelID shared.DiscordID, before time.Time) (*shared.MentionPayload, error)
}

// Notifier posts plain channel messages. The bus-backed implementation
// lives in app/shared; tests swap in a fake.
type Notifier interface {
	Send(ctx context.Context, channelID shared.DiscordID, content string) error
}
