//go:build integration

package scoredb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

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

func TestScoreDB_UpsertOverwritesOnConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := scoredb.NewScoreDB()
	ctx := context.Background()

	userID := shared.DiscordID(gofakeit.UUID())
	four, three := 4, 3

	require.NoError(t, repo.UpsertScore(ctx, db, &scoredb.Score{
		UserID: userID, Username: "alice", WordleNumber: 900,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Attempts: &four,
	}))
	require.NoError(t, repo.UpsertScore(ctx, db, &scoredb.Score{
		UserID: userID, Username: "alice-renamed", WordleNumber: 900,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Attempts: &three,
	}))

	scores, err := repo.ScoresForPuzzle(ctx, db, 900)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "alice-renamed", scores[0].Username)
	require.NotNil(t, scores[0].Attempts)
	assert.Equal(t, 3, *scores[0].Attempts)
}

func TestScoreDB_PreviousBestIgnoresFails(t *testing.T) {
	db := setupTestDB(t)
	repo := scoredb.NewScoreDB()
	ctx := context.Background()

	userID := shared.DiscordID(gofakeit.UUID())
	five, four := 5, 4
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertScore(ctx, db, &scoredb.Score{UserID: userID, Username: "bob", WordleNumber: 900, Date: date, Attempts: &five}))
	require.NoError(t, repo.UpsertScore(ctx, db, &scoredb.Score{UserID: userID, Username: "bob", WordleNumber: 901, Date: date, Attempts: &four}))
	require.NoError(t, repo.UpsertScore(ctx, db, &scoredb.Score{UserID: userID, Username: "bob", WordleNumber: 902, Date: date, Attempts: nil}))

	best, err := repo.PreviousBest(ctx, db, userID)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 4, *best)

	none, err := repo.PreviousBest(ctx, db, shared.DiscordID("nobody"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestScoreDB_CrownInsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := scoredb.NewScoreDB()
	ctx := context.Background()

	crown := &scoredb.Crown{
		UserID: "u1", Username: "carol", WordleNumber: 900,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	inserted, err := repo.InsertCrown(ctx, db, crown)
	require.NoError(t, err)
	assert.True(t, inserted)

	again, err := repo.InsertCrown(ctx, db, &scoredb.Crown{
		UserID: "u1", Username: "carol", WordleNumber: 900, Date: crown.Date,
	})
	require.NoError(t, err)
	assert.False(t, again)
}

func TestScoreDB_IncrementUncontendedAccumulates(t *testing.T) {
	db := setupTestDB(t)
	repo := scoredb.NewScoreDB()
	ctx := context.Background()

	require.NoError(t, repo.IncrementUncontended(ctx, db, "u1", 1))
	require.NoError(t, repo.IncrementUncontended(ctx, db, "u1", 2))

	var row scoredb.UncontendedCrown
	require.NoError(t, db.NewSelect().Model(&row).Where("user_id = ?", "u1").Scan(ctx))
	assert.Equal(t, 3, row.Count)
}

func TestScoreDB_FailRows(t *testing.T) {
	db := setupTestDB(t)
	repo := scoredb.NewScoreDB()
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fail := &scoredb.Fail{UserID: "u1", Username: "dave", WordleNumber: 900, Date: date}
	require.NoError(t, repo.InsertFail(ctx, db, fail))
	require.NoError(t, repo.InsertFail(ctx, db, &scoredb.Fail{UserID: "u1", Username: "dave", WordleNumber: 900, Date: date}))

	count, err := db.NewSelect().Model((*scoredb.Fail)(nil)).Where("user_id = ?", "u1").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.DeleteFail(ctx, db, "u1", 900))
	count, err = db.NewSelect().Model((*scoredb.Fail)(nil)).Where("user_id = ?", "u1").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
