package scoredb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// Score is one user's result for one puzzle. Attempts is nil for an X/6
// fail. At most one row exists per (user_id, wordle_number); edits update
// the row in place.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID           int64            `bun:"id,pk,autoincrement"`
	UserID       shared.DiscordID `bun:"user_id,notnull"`
	Username     string           `bun:"username,notnull"`
	WordleNumber int              `bun:"wordle_number,notnull"`
	Date         time.Time        `bun:"date,type:date,notnull"`
	Attempts     *int             `bun:"attempts"`
}

// Fail mirrors a failed attempt for the fails leaderboard. A later
// successful score for the same key deletes the row.
type Fail struct {
	bun.BaseModel `bun:"table:fails,alias:f"`

	ID           int64            `bun:"id,pk,autoincrement"`
	UserID       shared.DiscordID `bun:"user_id,notnull"`
	Username     string           `bun:"username,notnull"`
	WordleNumber int              `bun:"wordle_number,notnull"`
	Date         time.Time        `bun:"date,type:date,notnull"`
}

// Crown records a user achieving the best attempts count for a puzzle.
// Ties produce one row per winner. Append-only, deduplicated on
// (user_id, wordle_number).
type Crown struct {
	bun.BaseModel `bun:"table:crowns,alias:c"`

	ID           int64            `bun:"id,pk,autoincrement"`
	UserID       shared.DiscordID `bun:"user_id,notnull"`
	Username     string           `bun:"username,notnull"`
	WordleNumber int              `bun:"wordle_number,notnull"`
	Date         time.Time        `bun:"date,type:date,notnull"`
}

// UncontendedCrown counts crowns a user won outright, without a tie.
type UncontendedCrown struct {
	bun.BaseModel `bun:"table:uncontended_crowns,alias:uc"`

	UserID shared.DiscordID `bun:"user_id,pk"`
	Count  int              `bun:"count,notnull,default:0"`
}

// BannedUser marks a user excluded from ingestion and every aggregate.
type BannedUser struct {
	bun.BaseModel `bun:"table:banned_users,alias:bu"`

	UserID   shared.DiscordID `bun:"user_id,pk"`
	Username string           `bun:"username,notnull"`
}
