package scoredb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// ScoreDB is the persistence surface of the ingestion pipeline.
type ScoreDB interface {
	// IsBanned reports whether the user is excluded from ingestion.
	IsBanned(ctx context.Context, db bun.IDB, userID shared.DiscordID) (bool, error)
	// PreviousBest returns the user's lowest non-nil attempts across all
	// recorded scores, or nil when none exist. Callers must read this
	// before upserting the new score.
	PreviousBest(ctx context.Context, db bun.IDB, userID shared.DiscordID) (*int, error)
	// UpsertScore inserts the score or, on (user_id, wordle_number)
	// conflict, updates attempts, date and username so edits correct
	// prior entries.
	UpsertScore(ctx context.Context, db bun.IDB, score *Score) error
	// InsertFail records a failed attempt; an existing fail row for the
	// same key is left untouched.
	InsertFail(ctx context.Context, db bun.IDB, fail *Fail) error
	// DeleteFail removes the fail row for (user, puzzle) once a
	// correction reports a success.
	DeleteFail(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumber int) error
	// InsertCrown records a crown, deduplicated on (user_id,
	// wordle_number). It reports whether a row was actually inserted.
	InsertCrown(ctx context.Context, db bun.IDB, crown *Crown) (bool, error)
	// IncrementUncontended adds delta to the user's uncontended crown
	// counter, creating the row when absent.
	IncrementUncontended(ctx context.Context, db bun.IDB, userID shared.DiscordID, delta int) error
	// ScoresForPuzzle returns every recorded score for one puzzle.
	ScoresForPuzzle(ctx context.Context, db bun.IDB, wordleNumber int) ([]Score, error)
}

// NewScoreDB returns the bun-backed implementation.
func NewScoreDB() ScoreDB {
	return &ScoreDBImpl{}
}
