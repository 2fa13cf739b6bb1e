package scoreservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/observability"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// fakeScoreDB implements scoredb.ScoreDB with per-method hooks and a call
// trace. Unset hooks return zero values.
type fakeScoreDB struct {
	Calls []string

	IsBannedFunc             func(ctx context.Context, userID shared.DiscordID) (bool, error)
	PreviousBestFunc         func(ctx context.Context, userID shared.DiscordID) (*int, error)
	UpsertScoreFunc          func(ctx context.Context, score *scoredb.Score) error
	InsertFailFunc           func(ctx context.Context, fail *scoredb.Fail) error
	DeleteFailFunc           func(ctx context.Context, userID shared.DiscordID, wordleNumber int) error
	InsertCrownFunc          func(ctx context.Context, crown *scoredb.Crown) (bool, error)
	IncrementUncontendedFunc func(ctx context.Context, userID shared.DiscordID, delta int) error
	ScoresForPuzzleFunc      func(ctx context.Context, wordleNumber int) ([]scoredb.Score, error)
}

func (f *fakeScoreDB) IsBanned(ctx context.Context, _ bun.IDB, userID shared.DiscordID) (bool, error) {
	f.Calls = append(f.Calls, "IsBanned")
	if f.IsBannedFunc != nil {
		return f.IsBannedFunc(ctx, userID)
	}
	return false, nil
}

func (f *fakeScoreDB) PreviousBest(ctx context.Context, _ bun.IDB, userID shared.DiscordID) (*int, error) {
	f.Calls = append(f.Calls, "PreviousBest")
	if f.PreviousBestFunc != nil {
		return f.PreviousBestFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeScoreDB) UpsertScore(ctx context.Context, _ bun.IDB, score *scoredb.Score) error {
	f.Calls = append(f.Calls, "UpsertScore")
	if f.UpsertScoreFunc != nil {
		return f.UpsertScoreFunc(ctx, score)
	}
	return nil
}

func (f *fakeScoreDB) InsertFail(ctx context.Context, _ bun.IDB, fail *scoredb.Fail) error {
	f.Calls = append(f.Calls, "InsertFail")
	if f.InsertFailFunc != nil {
		return f.InsertFailFunc(ctx, fail)
	}
	return nil
}

func (f *fakeScoreDB) DeleteFail(ctx context.Context, _ bun.IDB, userID shared.DiscordID, wordleNumber int) error {
	f.Calls = append(f.Calls, "DeleteFail")
	if f.DeleteFailFunc != nil {
		return f.DeleteFailFunc(ctx, userID, wordleNumber)
	}
	return nil
}

func (f *fakeScoreDB) InsertCrown(ctx context.Context, _ bun.IDB, crown *scoredb.Crown) (bool, error) {
	f.Calls = append(f.Calls, "InsertCrown")
	if f.InsertCrownFunc != nil {
		return f.InsertCrownFunc(ctx, crown)
	}
	return true, nil
}

func (f *fakeScoreDB) IncrementUncontended(ctx context.Context, _ bun.IDB, userID shared.DiscordID, delta int) error {
	f.Calls = append(f.Calls, "IncrementUncontended")
	if f.IncrementUncontendedFunc != nil {
		return f.IncrementUncontendedFunc(ctx, userID, delta)
	}
	return nil
}

func (f *fakeScoreDB) ScoresForPuzzle(ctx context.Context, _ bun.IDB, wordleNumber int) ([]scoredb.Score, error) {
	f.Calls = append(f.Calls, "ScoresForPuzzle")
	if f.ScoresForPuzzleFunc != nil {
		return f.ScoresForPuzzleFunc(ctx, wordleNumber)
	}
	return nil, nil
}

func newTestService(repo *fakeScoreDB, notifier *fakeNotifier, history *fakeHistoryLookup) *ScoreService {
	obs := observability.NewForTest()
	return &ScoreService{
		repo:           repo,
		history:        history,
		notifier:       notifier,
		companionBotID: "companion-bot",
		logger:         obs.Logger,
		tracer:         obs.Tracer,
	}
}

// fakeNotifier captures channel callouts.
type fakeNotifier struct {
	Sent []sentMessage

	SendFunc func(ctx context.Context, channelID shared.DiscordID, content string) error
}

type sentMessage struct {
	ChannelID shared.DiscordID
	Content   string
}

func (f *fakeNotifier) Send(ctx context.Context, channelID shared.DiscordID, content string) error {
	f.Sent = append(f.Sent, sentMessage{ChannelID: channelID, Content: content})
	if f.SendFunc != nil {
		return f.SendFunc(ctx, channelID, content)
	}
	return nil
}

// fakeHistoryLookup resolves share authors from a canned answer.
type fakeHistoryLookup struct {
	Author *shared.MentionPayload
	Err    error

	RecentShareAuthorFunc func(ctx context.Context, channelID shared.DiscordID, before time.Time) (*shared.MentionPayload, error)
}

func (f *fakeHistoryLookup) RecentShareAuthor(ctx context.Context, channelID shared.DiscordID, before time.Time) (*shared.MentionPayload, error) {
	if f.RecentShareAuthorFunc != nil {
		return f.RecentShareAuthorFunc(ctx, channelID, before)
	}
	return f.Author, f.Err
}
