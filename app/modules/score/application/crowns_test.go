package scoreservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

func puzzleScores(entries ...scoredb.Score) func(context.Context, int) ([]scoredb.Score, error) {
	return func(_ context.Context, _ int) ([]scoredb.Score, error) {
		return entries, nil
	}
}

func TestResolveCrowns_SoleWinnerGetsUncontended(t *testing.T) {
	var incremented shared.DiscordID
	repo := &fakeScoreDB{
		ScoresForPuzzleFunc: puzzleScores(
			scoredb.Score{UserID: "u1", Username: "alice", WordleNumber: 900, Attempts: intPtr(3)},
			scoredb.Score{UserID: "u2", Username: "bob", WordleNumber: 900, Attempts: intPtr(5)},
		),
		IncrementUncontendedFunc: func(_ context.Context, userID shared.DiscordID, delta int) error {
			incremented = userID
			require.Equal(t, 1, delta)
			return nil
		},
	}
	svc := newTestService(repo, &fakeNotifier{}, &fakeHistoryLookup{})

	out, err := svc.ResolveCrowns(context.Background(), 900, time.Now())
	require.NoError(t, err)
	require.Len(t, out.Winners, 1)
	assert.Equal(t, shared.DiscordID("u1"), out.Winners[0].UserID)
	assert.True(t, out.Uncontended)
	assert.Equal(t, shared.DiscordID("u1"), incremented)
}

func TestResolveCrowns_TieCrownsEveryoneWithoutUncontended(t *testing.T) {
	var crowned []shared.DiscordID
	repo := &fakeScoreDB{
		ScoresForPuzzleFunc: puzzleScores(
			scoredb.Score{UserID: "u1", Username: "alice", WordleNumber: 901, Attempts: intPtr(4)},
			scoredb.Score{UserID: "u2", Username: "bob", WordleNumber: 901, Attempts: intPtr(4)},
			scoredb.Score{UserID: "u3", Username: "carol", WordleNumber: 901, Attempts: intPtr(6)},
		),
		InsertCrownFunc: func(_ context.Context, crown *scoredb.Crown) (bool, error) {
			crowned = append(crowned, crown.UserID)
			return true, nil
		},
	}
	svc := newTestService(repo, &fakeNotifier{}, &fakeHistoryLookup{})

	out, err := svc.ResolveCrowns(context.Background(), 901, time.Now())
	require.NoError(t, err)
	assert.ElementsMatch(t, []shared.DiscordID{"u1", "u2"}, crowned)
	assert.False(t, out.Uncontended)
	assert.NotContains(t, repo.Calls, "IncrementUncontended")
}

func TestResolveCrowns_FailsNeverWin(t *testing.T) {
	repo := &fakeScoreDB{
		ScoresForPuzzleFunc: puzzleScores(
			scoredb.Score{UserID: "u1", Username: "alice", WordleNumber: 902, Attempts: nil},
			scoredb.Score{UserID: "u2", Username: "bob", WordleNumber: 902, Attempts: intPtr(6)},
		),
	}
	svc := newTestService(repo, &fakeNotifier{}, &fakeHistoryLookup{})

	out, err := svc.ResolveCrowns(context.Background(), 902, time.Now())
	require.NoError(t, err)
	require.Len(t, out.Winners, 1)
	assert.Equal(t, shared.DiscordID("u2"), out.Winners[0].UserID)
}

func TestResolveCrowns_AllFailsAwardsNothing(t *testing.T) {
	repo := &fakeScoreDB{
		ScoresForPuzzleFunc: puzzleScores(
			scoredb.Score{UserID: "u1", Username: "alice", WordleNumber: 903, Attempts: nil},
		),
	}
	svc := newTestService(repo, &fakeNotifier{}, &fakeHistoryLookup{})

	out, err := svc.ResolveCrowns(context.Background(), 903, time.Now())
	require.NoError(t, err)
	assert.Empty(t, out.Winners)
	assert.False(t, out.Uncontended)
	assert.NotContains(t, repo.Calls, "InsertCrown")
}

func TestResolveCrowns_ReplayDoesNotDoubleCountUncontended(t *testing.T) {
	repo := &fakeScoreDB{
		ScoresForPuzzleFunc: puzzleScores(
			scoredb.Score{UserID: "u1", Username: "alice", WordleNumber: 904, Attempts: intPtr(2)},
		),
		InsertCrownFunc: func(_ context.Context, _ *scoredb.Crown) (bool, error) {
			// Crown row already exists from the first run.
			return false, nil
		},
	}
	svc := newTestService(repo, &fakeNotifier{}, &fakeHistoryLookup{})

	out, err := svc.ResolveCrowns(context.Background(), 904, time.Now())
	require.NoError(t, err)
	assert.True(t, out.Uncontended)
	assert.NotContains(t, repo.Calls, "IncrementUncontended")
}
