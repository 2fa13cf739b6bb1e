package admindb

import (
	"context"

	"github.com/uptrace/bun"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// RemovedCounts reports what a targeted score removal deleted.
type RemovedCounts struct {
	Scores int
	Fails  int
}

// AdminDB is the moderation surface over the scores schema.
type AdminDB interface {
	// Ban upserts a ban row; banning twice refreshes the username.
	Ban(ctx context.Context, db bun.IDB, userID shared.DiscordID, username string) error
	// Unban removes a ban row and reports whether one existed.
	Unban(ctx context.Context, db bun.IDB, userID shared.DiscordID) (bool, error)
	// ListBanned returns the ban list ordered by username.
	ListBanned(ctx context.Context, db bun.IDB) ([]scoredb.BannedUser, error)
	// RemoveScores deletes the user's score and fail rows for the given
	// puzzle numbers. Crowns are untouched. Run inside a transaction.
	RemoveScores(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumbers []int) (RemovedCounts, error)
	// ResetAll wipes all standings tables. Bans survive a reset. Run
	// inside a transaction.
	ResetAll(ctx context.Context, db bun.IDB) error
	// SetUncontended overwrites the user's uncontended crown counter.
	SetUncontended(ctx context.Context, db bun.IDB, userID shared.DiscordID, count int) error
	// RevokeCrown removes one crown row and reports whether it existed.
	RevokeCrown(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumber int) (bool, error)
	// AllScores returns the whole scores table ordered by puzzle then user.
	AllScores(ctx context.Context, db bun.IDB) ([]scoredb.Score, error)
	// AllFails returns the whole fails table ordered by puzzle then user.
	AllFails(ctx context.Context, db bun.IDB) ([]scoredb.Fail, error)
	// AllCrowns returns the whole crowns table ordered by puzzle then user.
	AllCrowns(ctx context.Context, db bun.IDB) ([]scoredb.Crown, error)
}

// NewAdminDB returns the bun-backed implementation.
func NewAdminDB() AdminDB {
	return &AdminDBImpl{}
}
