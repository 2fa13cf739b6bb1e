package leaderboardservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// fakeLeaderboardDB implements leaderboarddb.LeaderboardDB with
// per-method hooks. Unset hooks return zero values.
type fakeLeaderboardDB struct {
	LeaderboardFunc       func(ctx context.Context, since *time.Time, limit, offset int) ([]leaderboarddb.Row, error)
	CountUsersFunc        func(ctx context.Context, since *time.Time) (int, error)
	UserRankFunc          func(ctx context.Context, userID shared.DiscordID, since *time.Time) (*leaderboarddb.RankedRow, error)
	StatsFunc             func(ctx context.Context, userID shared.DiscordID) (*leaderboarddb.UserStats, error)
	UserPuzzlesFunc       func(ctx context.Context, userID shared.DiscordID) ([]int, error)
	AllPuzzlesFunc        func(ctx context.Context) ([]leaderboarddb.PuzzleRow, error)
	CrownCountsFunc       func(ctx context.Context, limit int) ([]leaderboarddb.CountRow, error)
	UncontendedCountsFunc func(ctx context.Context, limit int) ([]leaderboarddb.CountRow, error)
	FailCountsFunc        func(ctx context.Context, limit int) ([]leaderboarddb.CountRow, error)
	PredictionsFunc       func(ctx context.Context, since time.Time, limit int) ([]leaderboarddb.PredictionRow, error)
}

func (f *fakeLeaderboardDB) Leaderboard(ctx context.Context, _ bun.IDB, since *time.Time, limit, offset int) ([]leaderboarddb.Row, error) {
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, since, limit, offset)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) CountUsers(ctx context.Context, _ bun.IDB, since *time.Time) (int, error) {
	if f.CountUsersFunc != nil {
		return f.CountUsersFunc(ctx, since)
	}
	return 0, nil
}

func (f *fakeLeaderboardDB) UserRank(ctx context.Context, _ bun.IDB, userID shared.DiscordID, since *time.Time) (*leaderboarddb.RankedRow, error) {
	if f.UserRankFunc != nil {
		return f.UserRankFunc(ctx, userID, since)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) Stats(ctx context.Context, _ bun.IDB, userID shared.DiscordID) (*leaderboarddb.UserStats, error) {
	if f.StatsFunc != nil {
		return f.StatsFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) UserPuzzles(ctx context.Context, _ bun.IDB, userID shared.DiscordID) ([]int, error) {
	if f.UserPuzzlesFunc != nil {
		return f.UserPuzzlesFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) AllPuzzles(ctx context.Context, _ bun.IDB) ([]leaderboarddb.PuzzleRow, error) {
	if f.AllPuzzlesFunc != nil {
		return f.AllPuzzlesFunc(ctx)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) CrownCounts(ctx context.Context, _ bun.IDB, limit int) ([]leaderboarddb.CountRow, error) {
	if f.CrownCountsFunc != nil {
		return f.CrownCountsFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) UncontendedCounts(ctx context.Context, _ bun.IDB, limit int) ([]leaderboarddb.CountRow, error) {
	if f.UncontendedCountsFunc != nil {
		return f.UncontendedCountsFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) FailCounts(ctx context.Context, _ bun.IDB, limit int) ([]leaderboarddb.CountRow, error) {
	if f.FailCountsFunc != nil {
		return f.FailCountsFunc(ctx, limit)
	}
	return nil, nil
}

func (f *fakeLeaderboardDB) Predictions(ctx context.Context, _ bun.IDB, since time.Time, limit int) ([]leaderboarddb.PredictionRow, error) {
	if f.PredictionsFunc != nil {
		return f.PredictionsFunc(ctx, since, limit)
	}
	return nil, nil
}

func newTestService(repo *fakeLeaderboardDB) *LeaderboardService {
	obs := observability.NewForTest()
	return &LeaderboardService{
		repo:   repo,
		logger: obs.Logger,
		tracer: obs.Tracer,
		now: func() time.Time {
			return time.Date(2024, time.March, 12, 8, 0, 0, 0, time.UTC)
		},
	}
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }
