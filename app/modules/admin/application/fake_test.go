package adminservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	admindb "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/repositories"
	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// fakeAdminDB implements admindb.AdminDB with per-method hooks and a call
// trace. Unset hooks return zero values.
type fakeAdminDB struct {
	Calls []string

	BanFunc            func(ctx context.Context, userID shared.DiscordID, username string) error
	UnbanFunc          func(ctx context.Context, userID shared.DiscordID) (bool, error)
	ListBannedFunc     func(ctx context.Context) ([]scoredb.BannedUser, error)
	RemoveScoresFunc   func(ctx context.Context, userID shared.DiscordID, wordleNumbers []int) (admindb.RemovedCounts, error)
	ResetAllFunc       func(ctx context.Context) error
	SetUncontendedFunc func(ctx context.Context, userID shared.DiscordID, count int) error
	RevokeCrownFunc    func(ctx context.Context, userID shared.DiscordID, wordleNumber int) (bool, error)
	AllScoresFunc      func(ctx context.Context) ([]scoredb.Score, error)
	AllFailsFunc       func(ctx context.Context) ([]scoredb.Fail, error)
	AllCrownsFunc      func(ctx context.Context) ([]scoredb.Crown, error)
}

func (f *fakeAdminDB) Ban(ctx context.Context, _ bun.IDB, userID shared.DiscordID, username string) error {
	f.Calls = append(f.Calls, "Ban")
	if f.BanFunc != nil {
		return f.BanFunc(ctx, userID, username)
	}
	return nil
}

func (f *fakeAdminDB) Unban(ctx context.Context, _ bun.IDB, userID shared.DiscordID) (bool, error) {
	f.Calls = append(f.Calls, "Unban")
	if f.UnbanFunc != nil {
		return f.UnbanFunc(ctx, userID)
	}
	return true, nil
}

func (f *fakeAdminDB) ListBanned(ctx context.Context, _ bun.IDB) ([]scoredb.BannedUser, error) {
	f.Calls = append(f.Calls, "ListBanned")
	if f.ListBannedFunc != nil {
		return f.ListBannedFunc(ctx)
	}
	return nil, nil
}

func (f *fakeAdminDB) RemoveScores(ctx context.Context, _ bun.IDB, userID shared.DiscordID, wordleNumbers []int) (admindb.RemovedCounts, error) {
	f.Calls = append(f.Calls, "RemoveScores")
	if f.RemoveScoresFunc != nil {
		return f.RemoveScoresFunc(ctx, userID, wordleNumbers)
	}
	return admindb.RemovedCounts{}, nil
}

func (f *fakeAdminDB) ResetAll(ctx context.Context, _ bun.IDB) error {
	f.Calls = append(f.Calls, "ResetAll")
	if f.ResetAllFunc != nil {
		return f.ResetAllFunc(ctx)
	}
	return nil
}

func (f *fakeAdminDB) SetUncontended(ctx context.Context, _ bun.IDB, userID shared.DiscordID, count int) error {
	f.Calls = append(f.Calls, "SetUncontended")
	if f.SetUncontendedFunc != nil {
		return f.SetUncontendedFunc(ctx, userID, count)
	}
	return nil
}

func (f *fakeAdminDB) RevokeCrown(ctx context.Context, _ bun.IDB, userID shared.DiscordID, wordleNumber int) (bool, error) {
	f.Calls = append(f.Calls, "RevokeCrown")
	if f.RevokeCrownFunc != nil {
		return f.RevokeCrownFunc(ctx, userID, wordleNumber)
	}
	return true, nil
}

func (f *fakeAdminDB) AllScores(ctx context.Context, _ bun.IDB) ([]scoredb.Score, error) {
	f.Calls = append(f.Calls, "AllScores")
	if f.AllScoresFunc != nil {
		return f.AllScoresFunc(ctx)
	}
	return nil, nil
}

func (f *fakeAdminDB) AllFails(ctx context.Context, _ bun.IDB) ([]scoredb.Fail, error) {
	f.Calls = append(f.Calls, "AllFails")
	if f.AllFailsFunc != nil {
		return f.AllFailsFunc(ctx)
	}
	return nil, nil
}

func (f *fakeAdminDB) AllCrowns(ctx context.Context, _ bun.IDB) ([]scoredb.Crown, error) {
	f.Calls = append(f.Calls, "AllCrowns")
	if f.AllCrownsFunc != nil {
		return f.AllCrownsFunc(ctx)
	}
	return nil, nil
}

// fakeScoreRepo stubs the slice of scoredb.ScoreDB the admin service uses.
type fakeScoreRepo struct {
	InsertedFails  []*scoredb.Fail
	DeletedFails   []int
	InsertedCrowns []*scoredb.Crown

	InsertCrownFunc func(ctx context.Context, crown *scoredb.Crown) (bool, error)
}

func (f *fakeScoreRepo) IsBanned(context.Context, bun.IDB, shared.DiscordID) (bool, error) {
	return false, nil
}

func (f *fakeScoreRepo) PreviousBest(context.Context, bun.IDB, shared.DiscordID) (*int, error) {
	return nil, nil
}

func (f *fakeScoreRepo) UpsertScore(context.Context, bun.IDB, *scoredb.Score) error { return nil }

func (f *fakeScoreRepo) InsertFail(_ context.Context, _ bun.IDB, fail *scoredb.Fail) error {
	f.InsertedFails = append(f.InsertedFails, fail)
	return nil
}

func (f *fakeScoreRepo) DeleteFail(_ context.Context, _ bun.IDB, _ shared.DiscordID, wordleNumber int) error {
	f.DeletedFails = append(f.DeletedFails, wordleNumber)
	return nil
}

func (f *fakeScoreRepo) InsertCrown(ctx context.Context, _ bun.IDB, crown *scoredb.Crown) (bool, error) {
	f.InsertedCrowns = append(f.InsertedCrowns, crown)
	if f.InsertCrownFunc != nil {
		return f.InsertCrownFunc(ctx, crown)
	}
	return true, nil
}

func (f *fakeScoreRepo) IncrementUncontended(context.Context, bun.IDB, shared.DiscordID, int) error {
	return nil
}

func (f *fakeScoreRepo) ScoresForPuzzle(context.Context, bun.IDB, int) ([]scoredb.Score, error) {
	return nil, nil
}

// fakeIngestor implements the score service surface the import path uses.
type fakeIngestor struct {
	ProcessMessageFunc func(ctx context.Context, msg *shared.MessagePayload, opts scoreservice.ProcessOptions) ([]shared.Result, error)
}

func (f *fakeIngestor) ProcessMessage(ctx context.Context, msg *shared.MessagePayload, opts scoreservice.ProcessOptions) ([]shared.Result, error) {
	if f.ProcessMessageFunc != nil {
		return f.ProcessMessageFunc(ctx, msg, opts)
	}
	return nil, nil
}

func (f *fakeIngestor) IngestScore(context.Context, scoreservice.IngestInput) (shared.OperationResult[scoreservice.IngestedScore, scoreservice.IngestFailure], error) {
	return shared.OperationResult[scoreservice.IngestedScore, scoreservice.IngestFailure]{}, nil
}

// fakeTxRunner runs the transaction body against a zero bun.Tx; the fake
// repositories never touch it.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

func newTestService(repo *fakeAdminDB, scores *fakeScoreRepo, ingestor *fakeIngestor, registry *ConfirmationRegistry) *AdminService {
	obs := observability.NewForTest()
	if registry == nil {
		registry = NewConfirmationRegistry(time.Minute, nil)
	}
	return &AdminService{
		txr:           fakeTxRunner{},
		repo:          repo,
		scores:        scores,
		ingestor:      ingestor,
		confirmations: registry,
		logger:        obs.Logger,
		tracer:        obs.Tracer,
	}
}
