package leaderboardservice

import (
	"context"
	"sort"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// CalculateStreak returns the length of the run of consecutive puzzle
// numbers ending at the latest one solved. Input must be ascending;
// duplicates are tolerated.
func CalculateStreak(puzzles []int) int {
	if len(puzzles) == 0 {
		return 0
	}
	streak := 1
	for i := len(puzzles) - 1; i > 0; i-- {
		switch puzzles[i] - puzzles[i-1] {
		case 0:
			continue
		case 1:
			streak++
		default:
			return streak
		}
	}
	return streak
}

// Streak answers one user's streak command.
func (s *LeaderboardService) Streak(ctx context.Context, req leaderboardevents.StreakRequest) (shared.OperationResult[leaderboardevents.StreakResult, leaderboardevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.streak")
	defer span.End()

	puzzles, err := s.repo.UserPuzzles(ctx, s.db, req.UserID)
	if err != nil {
		return shared.OperationResult[leaderboardevents.StreakResult, leaderboardevents.ErrorPayload]{}, err
	}

	return shared.SuccessResult[leaderboardevents.StreakResult, leaderboardevents.ErrorPayload](leaderboardevents.StreakResult{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Streak:    CalculateStreak(puzzles),
	}), nil
}

// TopStreaks answers the streaks board command.
func (s *LeaderboardService) TopStreaks(ctx context.Context, req leaderboardevents.StreaksRequest) (shared.OperationResult[leaderboardevents.StreaksResult, leaderboardevents.ErrorPayload], error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.streaks")
	defer span.End()

	rows, err := s.repo.AllPuzzles(ctx, s.db)
	if err != nil {
		return shared.OperationResult[leaderboardevents.StreaksResult, leaderboardevents.ErrorPayload]{}, err
	}

	type user struct {
		id       shared.DiscordID
		username string
		puzzles  []int
	}
	var users []*user
	byID := make(map[shared.DiscordID]*user)
	for _, row := range rows {
		u, ok := byID[row.UserID]
		if !ok {
			u = &user{id: row.UserID, username: row.Username}
			byID[row.UserID] = u
			users = append(users, u)
		}
		// Rows arrive ordered by user then puzzle number, and the latest
		// row carries the freshest username.
		u.username = row.Username
		u.puzzles = append(u.puzzles, row.WordleNumber)
	}

	entries := make([]leaderboardevents.StreakEntry, 0, len(users))
	for _, u := range users {
		if streak := CalculateStreak(u.puzzles); streak > 0 {
			entries = append(entries, leaderboardevents.StreakEntry{
				UserID:   u.id,
				Username: u.username,
				Streak:   streak,
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].Username < entries[j].Username
	})
	if len(entries) > boardSize {
		entries = entries[:boardSize]
	}

	return shared.SuccessResult[leaderboardevents.StreaksResult, leaderboardevents.ErrorPayload](leaderboardevents.StreaksResult{
		ChannelID: req.ChannelID,
		Entries:   entries,
	}), nil
}
