package scoreevents

import (
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Topics emitted by the score module. Nothing routes commands here; the
// module listens to the raw gateway message stream and publishes what it
// recorded so other consumers (and the audit log) can follow along.
const (
	Ingested        = "score.ingested"
	IngestFailed    = "score.ingest.failed"
	DigestProcessed = "score.digest.processed"
)

// IngestedPayload records one score that was written to the database.
type IngestedPayload struct {
	UserID       shared.DiscordID `json:"user_id"`
	Username     string           `json:"username"`
	WordleNumber int              `json:"wordle_number"`
	Attempts     *int             `json:"attempts,omitempty"`
	Date         string           `json:"date"`
	Source       string           `json:"source"`
}

// IngestFailedPayload records a message that looked like a score but
// could not be ingested.
type IngestFailedPayload struct {
	MessageID shared.DiscordID `json:"message_id"`
	UserID    shared.DiscordID `json:"user_id,omitempty"`
	Reason    string           `json:"reason"`
}

// DigestProcessedPayload summarizes one companion digest ingestion run.
type DigestProcessedPayload struct {
	WordleNumber int      `json:"wordle_number"`
	Scores       int      `json:"scores"`
	Winners      []string `json:"winners,omitempty"`
	Uncontended  bool     `json:"uncontended"`
}
