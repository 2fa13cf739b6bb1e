package leaderboardevents

import (
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Topics for the leaderboard module's command traffic. Requests come from
// the gateway's slash-command dispatch; success/failed results go back to
// it for rendering.
const (
	GetRequested = "leaderboard.get.requested"
	GetSuccess   = "leaderboard.get.success"
	GetFailed    = "leaderboard.get.failed"

	PageRequested = "leaderboard.page.requested"
	PageSuccess   = "leaderboard.page.success"
	PageFailed    = "leaderboard.page.failed"

	StatsRequested = "leaderboard.stats.requested"
	StatsSuccess   = "leaderboard.stats.success"
	StatsFailed    = "leaderboard.stats.failed"

	StreakRequested = "leaderboard.streak.requested"
	StreakSuccess   = "leaderboard.streak.success"
	StreakFailed    = "leaderboard.streak.failed"

	StreaksRequested = "leaderboard.streaks.requested"
	StreaksSuccess   = "leaderboard.streaks.success"
	StreaksFailed    = "leaderboard.streaks.failed"

	CrownsRequested = "leaderboard.crowns.requested"
	CrownsSuccess   = "leaderboard.crowns.success"
	CrownsFailed    = "leaderboard.crowns.failed"

	UncontendedRequested = "leaderboard.uncontended.requested"
	UncontendedSuccess   = "leaderboard.uncontended.success"
	UncontendedFailed    = "leaderboard.uncontended.failed"

	FailsRequested = "leaderboard.fails.requested"
	FailsSuccess   = "leaderboard.fails.success"
	FailsFailed    = "leaderboard.fails.failed"

	PredictionDigest = "leaderboard.prediction.digest"
)

// TimeRange filters leaderboard queries by date.
type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

// Valid reports whether the range is one the query layer understands.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeAll, RangeWeek, RangeMonth, "":
		return true
	}
	return false
}

// GetLeaderboardRequest asks for the top-10 board, optionally ranked for
// a requesting user. The score module also emits it to auto-post the
// board after a daily digest lands; those carry an empty RequesterID.
type GetLeaderboardRequest struct {
	GuildID     shared.DiscordID `json:"guild_id"`
	ChannelID   shared.DiscordID `json:"channel_id"`
	RequesterID shared.DiscordID `json:"requester_id,omitempty"`
	Range       TimeRange        `json:"range,omitempty"`
	WithChart   bool             `json:"with_chart,omitempty"`
}

// Entry is one user's leaderboard row. BestScore and AvgAttempts are nil
// for users with no solved games in range.
type Entry struct {
	Rank        int              `json:"rank"`
	UserID      shared.DiscordID `json:"user_id"`
	Username    string           `json:"username"`
	GamesPlayed int              `json:"games_played"`
	Fails       int              `json:"fails"`
	BestScore   *int             `json:"best_score,omitempty"`
	AvgAttempts *float64         `json:"avg_attempts,omitempty"`
}

// GetLeaderboardResult is the rendered top 10 plus, when the requester is
// ranked but absent from it, their own row.
type GetLeaderboardResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Range     TimeRange        `json:"range"`
	Entries   []Entry          `json:"entries"`
	Requester *Entry           `json:"requester,omitempty"`
	ChartPNG  []byte           `json:"chart_png,omitempty"`
}

// PageRequest asks for one page of the full leaderboard.
type PageRequest struct {
	GuildID   shared.DiscordID `json:"guild_id"`
	ChannelID shared.DiscordID `json:"channel_id"`
	Range     TimeRange        `json:"range,omitempty"`
	Page      int              `json:"page"`
}

// PageResult is one page of the full board.
type PageResult struct {
	ChannelID  shared.DiscordID `json:"channel_id"`
	Range      TimeRange        `json:"range"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalUsers int              `json:"total_users"`
	Entries    []Entry          `json:"entries"`
}

// StatsRequest asks for one user's aggregate stats.
type StatsRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
}

// StatsResult carries a user's aggregates plus their current streak.
type StatsResult struct {
	ChannelID   shared.DiscordID `json:"channel_id"`
	UserID      shared.DiscordID `json:"user_id"`
	Username    string           `json:"username"`
	GamesPlayed int              `json:"games_played"`
	Fails       int              `json:"fails"`
	BestScore   *int             `json:"best_score,omitempty"`
	AvgScore    *float64         `json:"avg_score,omitempty"`
	LastPlayed  string           `json:"last_played,omitempty"`
	Streak      int              `json:"streak"`
}

// StreakRequest asks for one user's current streak.
type StreakRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
}

// StreakResult is a single streak count.
type StreakResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Streak    int              `json:"streak"`
}

// StreaksRequest asks for the top streaks board.
type StreaksRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
}

// StreakEntry is one row of the streaks board.
type StreakEntry struct {
	UserID   shared.DiscordID `json:"user_id"`
	Username string           `json:"username"`
	Streak   int              `json:"streak"`
}

// StreaksResult is the top-10 streaks board.
type StreaksResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Entries   []StreakEntry    `json:"entries"`
}

// CountRequest asks for a simple count board (crowns, uncontended, fails).
type CountRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
}

// CountEntry is one row of a count board.
type CountEntry struct {
	UserID   shared.DiscordID `json:"user_id"`
	Username string           `json:"username"`
	Count    int              `json:"count"`
}

// CountResult is a count board ordered descending.
type CountResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Entries   []CountEntry     `json:"entries"`
}

// PredictionEntry is one user's predicted score for the next puzzle.
type PredictionEntry struct {
	UserID      shared.DiscordID `json:"user_id"`
	Username    string           `json:"username"`
	Predicted   float64          `json:"predicted"`
	GamesPlayed int              `json:"games_played"`
}

// PredictionDigestPayload is the daily prediction post.
type PredictionDigestPayload struct {
	ChannelID shared.DiscordID  `json:"channel_id"`
	Date      string            `json:"date"`
	Entries   []PredictionEntry `json:"entries"`
}

// ErrorPayload is the generic failure reply for any leaderboard command.
type ErrorPayload struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Reason    string           `json:"reason"`
}
