package leaderboarddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// Row is one user's aggregated standing. BestScore and AvgAttempts are
// nil when the user has no solved games in range.
type Row struct {
	UserID      shared.DiscordID `bun:"user_id"`
	Username    string           `bun:"username"`
	GamesPlayed int              `bun:"games_played"`
	Fails       int              `bun:"fails"`
	BestScore   *int             `bun:"best_score"`
	AvgAttempts *float64         `bun:"avg_attempts"`
}

// RankedRow is a Row with its position over the whole board.
type RankedRow struct {
	Row
	Rank int `bun:"rank"`
}

// UserStats is one user's aggregate view for the stats command.
type UserStats struct {
	UserID      shared.DiscordID `bun:"user_id"`
	Username    string           `bun:"username"`
	GamesPlayed int              `bun:"games_played"`
	Fails       int              `bun:"fails"`
	BestScore   *int             `bun:"best_score"`
	AvgAttempts *float64         `bun:"avg_attempts"`
	LastPlayed  *time.Time       `bun:"last_played"`
}

// PuzzleRow is one solve, used to compute streaks.
type PuzzleRow struct {
	UserID       shared.DiscordID `bun:"user_id"`
	Username     string           `bun:"username"`
	WordleNumber int              `bun:"wordle_number"`
}

// CountRow is one user's tally on a count board.
type CountRow struct {
	UserID   shared.DiscordID `bun:"user_id"`
	Username string           `bun:"username"`
	Count    int              `bun:"count"`
}

// PredictionRow is one user's predicted score for the next puzzle.
type PredictionRow struct {
	UserID      shared.DiscordID `bun:"user_id"`
	Username    string           `bun:"username"`
	Predicted   float64          `bun:"predicted"`
	GamesPlayed int              `bun:"games_played"`
}

// LeaderboardDB is the read side of the scores schema. Rankings order by
// average attempts ascending with unsolved-only users sorted last, games
// played descending as the tiebreak.
type LeaderboardDB interface {
	// Leaderboard returns one page of the ranked board. A nil since means
	// all time.
	Leaderboard(ctx context.Context, db bun.IDB, since *time.Time, limit, offset int) ([]Row, error)
	// CountUsers returns how many users hold at least one score in range.
	CountUsers(ctx context.Context, db bun.IDB, since *time.Time) (int, error)
	// UserRank returns the user's ranked row, or nil when they have no
	// scores in range.
	UserRank(ctx context.Context, db bun.IDB, userID shared.DiscordID, since *time.Time) (*RankedRow, error)
	// Stats returns one user's aggregates, or nil when they never played.
	Stats(ctx context.Context, db bun.IDB, userID shared.DiscordID) (*UserStats, error)
	// UserPuzzles returns the puzzle numbers one user has solved,
	// ascending. Fails break a streak, so they are left out.
	UserPuzzles(ctx context.Context, db bun.IDB, userID shared.DiscordID) ([]int, error)
	// AllPuzzles returns every solve ordered by user then puzzle number,
	// for the streaks board.
	AllPuzzles(ctx context.Context, db bun.IDB) ([]PuzzleRow, error)
	// CrownCounts returns crown tallies, descending.
	CrownCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error)
	// UncontendedCounts returns uncontended crown tallies, descending.
	UncontendedCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error)
	// FailCounts returns fail tallies, descending.
	FailCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error)
	// Predictions scores each active user by their recent form, best
	// predicted score first. Fails weigh in as seven attempts.
	Predictions(ctx context.Context, db bun.IDB, since time.Time, limit int) ([]PredictionRow, error)
}

// NewLeaderboardDB returns the bun-backed implementation.
func NewLeaderboardDB() LeaderboardDB {
	return &LeaderboardDBImpl{}
}
