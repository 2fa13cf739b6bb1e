//go:build integration

package leaderboarddb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	admindb "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/repositories"
	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	scoremigrations "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories/migrations"
	"github.com/wordle-club/wordle-bot/app/shared"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("wordle_test"),
		tcpostgres.WithUsername("wordle"),
		tcpostgres.WithPassword("wordle"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	migrator := migrate.NewMigrator(db, scoremigrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return db
}

func seedScore(t *testing.T, db *bun.DB, userID shared.DiscordID, username string, puzzle int, attempts *int, date time.Time) {
	t.Helper()
	repo := scoredb.NewScoreDB()
	require.NoError(t, repo.UpsertScore(context.Background(), db, &scoredb.Score{
		UserID: userID, Username: username, WordleNumber: puzzle, Date: date, Attempts: attempts,
	}))
}

func ptr(n int) *int { return &n }

func TestLeaderboard_OrderingAndNulls(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// alice avg 3, bob avg 3 with fewer games, carol avg 5, dave only fails.
	seedScore(t, db, "u1", "alice", 900, ptr(3), date)
	seedScore(t, db, "u1", "alice", 901, ptr(3), date)
	seedScore(t, db, "u2", "bob", 900, ptr(3), date)
	seedScore(t, db, "u3", "carol", 900, ptr(5), date)
	seedScore(t, db, "u4", "dave", 900, nil, date)

	rows, err := repo.Leaderboard(ctx, db, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, "bob", rows[1].Username)
	assert.Equal(t, "carol", rows[2].Username)
	// No solves means no average; sorted after everyone with one.
	assert.Equal(t, "dave", rows[3].Username)
	assert.Nil(t, rows[3].AvgAttempts)
	assert.Equal(t, 1, rows[3].Fails)
}

func TestUserRank_WindowFunction(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedScore(t, db, "u1", "alice", 900, ptr(2), date)
	seedScore(t, db, "u2", "bob", 900, ptr(4), date)
	seedScore(t, db, "u3", "carol", 900, ptr(6), date)

	ranked, err := repo.UserRank(ctx, db, "u3", nil)
	require.NoError(t, err)
	require.NotNil(t, ranked)
	assert.Equal(t, 3, ranked.Rank)
	assert.Equal(t, "carol", ranked.Username)

	missing, err := repo.UserRank(ctx, db, "nobody", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeaderboard_SinceFiltersOldGames(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()

	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	seedScore(t, db, "u1", "alice", 500, ptr(2), old)
	seedScore(t, db, "u1", "alice", 995, ptr(5), recent)

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := repo.Leaderboard(ctx, db, &cutoff, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].GamesPlayed)
	require.NotNil(t, rows[0].AvgAttempts)
	assert.InDelta(t, 5.0, *rows[0].AvgAttempts, 0.001)

	count, err := repo.CountUsers(ctx, db, &cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBannedUserExcludedFromEveryBoard(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	scores := scoredb.NewScoreDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedScore(t, db, "u1", "alice", 995, ptr(3), date)
	seedScore(t, db, "u2", "mallory", 995, ptr(2), date)
	seedScore(t, db, "u2", "mallory", 996, nil, date)
	require.NoError(t, scores.InsertFail(ctx, db, &scoredb.Fail{
		UserID: "u2", Username: "mallory", WordleNumber: 996, Date: date,
	}))
	_, err := scores.InsertCrown(ctx, db, &scoredb.Crown{
		UserID: "u2", Username: "mallory", WordleNumber: 995, Date: date,
	})
	require.NoError(t, err)
	require.NoError(t, scores.IncrementUncontended(ctx, db, "u2", 1))
	require.NoError(t, admindb.NewAdminDB().Ban(ctx, db, "u2", "mallory"))

	rows, err := repo.Leaderboard(ctx, db, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)

	count, err := repo.CountUsers(ctx, db, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ranked, err := repo.UserRank(ctx, db, "u2", nil)
	require.NoError(t, err)
	assert.Nil(t, ranked)

	stats, err := repo.Stats(ctx, db, "u2")
	require.NoError(t, err)
	assert.Nil(t, stats)

	puzzles, err := repo.UserPuzzles(ctx, db, "u2")
	require.NoError(t, err)
	assert.Empty(t, puzzles)

	all, err := repo.AllPuzzles(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, shared.DiscordID("u1"), all[0].UserID)

	crowns, err := repo.CrownCounts(ctx, db, 10)
	require.NoError(t, err)
	assert.Empty(t, crowns)

	uncontended, err := repo.UncontendedCounts(ctx, db, 10)
	require.NoError(t, err)
	assert.Empty(t, uncontended)

	fails, err := repo.FailCounts(ctx, db, 10)
	require.NoError(t, err)
	assert.Empty(t, fails)

	predictions, err := repo.Predictions(ctx, db, date.AddDate(0, 0, -30), 10)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, shared.DiscordID("u1"), predictions[0].UserID)
}

func TestGamesPlayedCountsSolvesOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// Two solves and one fail; only the solves are games.
	seedScore(t, db, "u1", "alice", 994, ptr(3), date)
	seedScore(t, db, "u1", "alice", 995, ptr(4), date)
	seedScore(t, db, "u1", "alice", 996, nil, date)

	rows, err := repo.Leaderboard(ctx, db, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].GamesPlayed)
	assert.Equal(t, 1, rows[0].Fails)

	stats, err := repo.Stats(ctx, db, "u1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 1, stats.Fails)
}

func TestStreakSourceSkipsFails(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedScore(t, db, "u1", "alice", 100, ptr(3), date)
	seedScore(t, db, "u1", "alice", 101, ptr(4), date)
	seedScore(t, db, "u1", "alice", 102, nil, date)

	puzzles, err := repo.UserPuzzles(ctx, db, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 101}, puzzles)

	all, err := repo.AllPuzzles(ctx, db)
	require.NoError(t, err)
	numbers := make([]int, 0, len(all))
	for _, row := range all {
		numbers = append(numbers, row.WordleNumber)
	}
	assert.Equal(t, []int{100, 101}, numbers)
}

func TestLeaderboard_AverageRoundedToTwoDecimals(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// 3+3+4 over three games averages 3.333...; the query reports 3.33.
	seedScore(t, db, "u1", "alice", 994, ptr(3), date)
	seedScore(t, db, "u1", "alice", 995, ptr(3), date)
	seedScore(t, db, "u1", "alice", 996, ptr(4), date)

	rows, err := repo.Leaderboard(ctx, db, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].AvgAttempts)
	assert.Equal(t, 3.33, *rows[0].AvgAttempts)

	ranked, err := repo.UserRank(ctx, db, "u1", nil)
	require.NoError(t, err)
	require.NotNil(t, ranked)
	require.NotNil(t, ranked.AvgAttempts)
	assert.Equal(t, 3.33, *ranked.AvgAttempts)

	stats, err := repo.Stats(ctx, db, "u1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.NotNil(t, stats.AvgAttempts)
	assert.Equal(t, 3.33, *stats.AvgAttempts)
}

func TestPredictions_FailsWeighAsSeven(t *testing.T) {
	db := setupTestDB(t)
	repo := leaderboarddb.NewLeaderboardDB()
	ctx := context.Background()
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedScore(t, db, "u1", "alice", 995, ptr(3), date)
	seedScore(t, db, "u1", "alice", 996, nil, date)

	rows, err := repo.Predictions(ctx, db, date.AddDate(0, 0, -30), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 5.0, rows[0].Predicted, 0.001)
	assert.Equal(t, 2, rows[0].GamesPlayed)
}
