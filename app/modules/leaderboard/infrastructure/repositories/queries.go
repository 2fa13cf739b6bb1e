package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// LeaderboardDBImpl implements LeaderboardDB with aggregate queries over
// the score module's tables.
type LeaderboardDBImpl struct{}

// notBanned excludes banned users. Every aggregate carries it; a ban
// removes the user from all boards without touching their rows.
const notBanned = "NOT IN (SELECT user_id FROM banned_users)"

// Averages are rounded to two decimals before ordering and ranking, so
// near-ties rank as true ties.
const roundedAvg = "round(avg(s.attempts)::numeric, 2)"

// standingsQuery is the shared per-user aggregation every ranking query
// builds on. games_played counts solves only; users who only ever failed
// keep a NULL average and sort after everyone with a solve.
func standingsQuery(db bun.IDB, since *time.Time) *bun.SelectQuery {
	q := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		ColumnExpr("s.user_id").
		ColumnExpr("max(s.username) AS username").
		ColumnExpr("count(*) FILTER (WHERE s.attempts IS NOT NULL) AS games_played").
		ColumnExpr("count(*) FILTER (WHERE s.attempts IS NULL) AS fails").
		ColumnExpr("min(s.attempts) AS best_score").
		ColumnExpr(roundedAvg + " AS avg_attempts").
		Where("s.user_id " + notBanned).
		GroupExpr("s.user_id")
	if since != nil {
		q = q.Where("s.date >= ?", *since)
	}
	return q
}

func (r *LeaderboardDBImpl) Leaderboard(ctx context.Context, db bun.IDB, since *time.Time, limit, offset int) ([]Row, error) {
	var rows []Row
	err := standingsQuery(db, since).
		OrderExpr("COALESCE(" + roundedAvg + ", 999) ASC").
		OrderExpr("count(*) FILTER (WHERE s.attempts IS NOT NULL) DESC").
		OrderExpr("s.user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardDBImpl) CountUsers(ctx context.Context, db bun.IDB, since *time.Time) (int, error) {
	q := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		ColumnExpr("count(DISTINCT s.user_id)").
		Where("s.user_id " + notBanned)
	if since != nil {
		q = q.Where("s.date >= ?", *since)
	}
	var count int
	if err := q.Scan(ctx, &count); err != nil {
		return 0, fmt.Errorf("count leaderboard users: %w", err)
	}
	return count, nil
}

func (r *LeaderboardDBImpl) UserRank(ctx context.Context, db bun.IDB, userID shared.DiscordID, since *time.Time) (*RankedRow, error) {
	ranked := standingsQuery(db, since).
		ColumnExpr("RANK() OVER (ORDER BY COALESCE(" + roundedAvg + ", 999) ASC, count(*) FILTER (WHERE s.attempts IS NOT NULL) DESC) AS rank")

	var row RankedRow
	err := db.NewSelect().
		TableExpr("(?) AS ranked", ranked).
		ColumnExpr("ranked.*").
		Where("ranked.user_id = ?", userID).
		Scan(ctx, &row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user rank: %w", err)
	}
	return &row, nil
}

func (r *LeaderboardDBImpl) Stats(ctx context.Context, db bun.IDB, userID shared.DiscordID) (*UserStats, error) {
	var stats UserStats
	err := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		ColumnExpr("s.user_id").
		ColumnExpr("max(s.username) AS username").
		ColumnExpr("count(*) FILTER (WHERE s.attempts IS NOT NULL) AS games_played").
		ColumnExpr("count(*) FILTER (WHERE s.attempts IS NULL) AS fails").
		ColumnExpr("min(s.attempts) AS best_score").
		ColumnExpr(roundedAvg + " AS avg_attempts").
		ColumnExpr("max(s.date) AS last_played").
		Where("s.user_id = ?", userID).
		Where("s.user_id " + notBanned).
		GroupExpr("s.user_id").
		Scan(ctx, &stats)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}
	return &stats, nil
}

func (r *LeaderboardDBImpl) UserPuzzles(ctx context.Context, db bun.IDB, userID shared.DiscordID) ([]int, error) {
	var numbers []int
	err := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		Column("s.wordle_number").
		Where("s.user_id = ?", userID).
		Where("s.attempts IS NOT NULL").
		Where("s.user_id " + notBanned).
		OrderExpr("s.wordle_number ASC").
		Scan(ctx, &numbers)
	if err != nil {
		return nil, fmt.Errorf("query user puzzles: %w", err)
	}
	return numbers, nil
}

func (r *LeaderboardDBImpl) AllPuzzles(ctx context.Context, db bun.IDB) ([]PuzzleRow, error) {
	var rows []PuzzleRow
	err := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		Column("s.user_id", "s.username", "s.wordle_number").
		Where("s.attempts IS NOT NULL").
		Where("s.user_id " + notBanned).
		OrderExpr("s.user_id ASC").
		OrderExpr("s.wordle_number ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query all puzzles: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardDBImpl) CrownCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error) {
	var rows []CountRow
	err := db.NewSelect().
		Model((*scoredb.Crown)(nil)).
		ColumnExpr("c.user_id").
		ColumnExpr("max(c.username) AS username").
		ColumnExpr("count(*) AS count").
		Where("c.user_id " + notBanned).
		GroupExpr("c.user_id").
		OrderExpr("count(*) DESC").
		OrderExpr("c.user_id ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query crown counts: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardDBImpl) UncontendedCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error) {
	// The counter table has no username; borrow the latest one recorded
	// on the user's scores.
	var rows []CountRow
	err := db.NewSelect().
		Model((*scoredb.UncontendedCrown)(nil)).
		ColumnExpr("uc.user_id").
		ColumnExpr("COALESCE((SELECT max(s.username) FROM scores AS s WHERE s.user_id = uc.user_id), '') AS username").
		ColumnExpr("uc.count AS count").
		Where("uc.count > 0").
		Where("uc.user_id " + notBanned).
		OrderExpr("uc.count DESC").
		OrderExpr("uc.user_id ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query uncontended counts: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardDBImpl) FailCounts(ctx context.Context, db bun.IDB, limit int) ([]CountRow, error) {
	var rows []CountRow
	err := db.NewSelect().
		Model((*scoredb.Fail)(nil)).
		ColumnExpr("f.user_id").
		ColumnExpr("max(f.username) AS username").
		ColumnExpr("count(*) AS count").
		Where("f.user_id " + notBanned).
		GroupExpr("f.user_id").
		OrderExpr("count(*) DESC").
		OrderExpr("f.user_id ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query fail counts: %w", err)
	}
	return rows, nil
}

func (r *LeaderboardDBImpl) Predictions(ctx context.Context, db bun.IDB, since time.Time, limit int) ([]PredictionRow, error) {
	var rows []PredictionRow
	err := db.NewSelect().
		Model((*scoredb.Score)(nil)).
		ColumnExpr("s.user_id").
		ColumnExpr("max(s.username) AS username").
		ColumnExpr("round(avg(COALESCE(s.attempts, 7))::numeric, 2) AS predicted").
		ColumnExpr("count(*) AS games_played").
		Where("s.date >= ?", since).
		Where("s.user_id " + notBanned).
		GroupExpr("s.user_id").
		OrderExpr("round(avg(COALESCE(s.attempts, 7))::numeric, 2) ASC").
		OrderExpr("s.user_id ASC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	return rows, nil
}
