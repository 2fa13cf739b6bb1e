package adminevents

import (
	"github.com/wordle-club/wordle-bot/app/shared"
)

// Topics for the admin module. The gateway checks Discord permissions
// before publishing any of the requests; the backend treats them as
// already authorized.
const (
	BanRequested = "admin.ban.requested"
	BanSuccess   = "admin.ban.success"
	BanFailed    = "admin.ban.failed"

	UnbanRequested = "admin.unban.requested"
	UnbanSuccess   = "admin.unban.success"
	UnbanFailed    = "admin.unban.failed"

	BanListRequested = "admin.banlist.requested"
	BanListSuccess   = "admin.banlist.success"

	ResetRequested = "admin.reset.requested"
	ResetPending   = "admin.reset.pending"
	ResetFailed    = "admin.reset.failed"
	ResetSuccess   = "admin.reset.success"
	ResetCancelled = "admin.reset.cancelled"
	ResetTimedOut  = "admin.reset.timedout"

	RemoveScoresRequested = "admin.removescores.requested"
	RemoveScoresSuccess   = "admin.removescores.success"
	RemoveScoresFailed    = "admin.removescores.failed"

	SetFailsRequested = "admin.setfails.requested"
	SetFailsSuccess   = "admin.setfails.success"
	SetFailsFailed    = "admin.setfails.failed"

	SetUncontendedRequested = "admin.setuncontended.requested"
	SetUncontendedSuccess   = "admin.setuncontended.success"
	SetUncontendedFailed    = "admin.setuncontended.failed"

	AdjustCrownsRequested = "admin.adjustcrowns.requested"
	AdjustCrownsSuccess   = "admin.adjustcrowns.success"
	AdjustCrownsFailed    = "admin.adjustcrowns.failed"

	ImportRequested = "admin.import.requested"
	ImportProcessed = "admin.import.processed"
	ImportFailed    = "admin.import.failed"

	ExportRequested = "admin.export.requested"
	ExportFailed    = "admin.export.failed"
)

// BanRequest bans or records a user out of ingestion.
type BanRequest struct {
	GuildID   shared.DiscordID `json:"guild_id"`
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Username  string           `json:"username"`
}

// UnbanRequest lifts a ban.
type UnbanRequest struct {
	GuildID   shared.DiscordID `json:"guild_id"`
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
	UserID    shared.DiscordID `json:"user_id"`
}

// BanListRequest asks for the current ban list.
type BanListRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
}

// BannedEntry is one row of the ban list.
type BannedEntry struct {
	UserID   shared.DiscordID `json:"user_id"`
	Username string           `json:"username"`
}

// BanListResult is the rendered ban list.
type BanListResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Entries   []BannedEntry    `json:"entries"`
}

// BanResult reports a ban or unban outcome.
type BanResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Username  string           `json:"username,omitempty"`
}

// ResetRequest starts the two-phase wipe of all standings.
type ResetRequest struct {
	GuildID   shared.DiscordID `json:"guild_id"`
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
}

// ResetNotice reports a phase of the reset conversation.
type ResetNotice struct {
	GuildID   shared.DiscordID `json:"guild_id"`
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
}

// RemoveScoresRequest deletes a user's scores for specific puzzles.
type RemoveScoresRequest struct {
	GuildID       shared.DiscordID `json:"guild_id"`
	ChannelID     shared.DiscordID `json:"channel_id"`
	ActorID       shared.DiscordID `json:"actor_id"`
	UserID        shared.DiscordID `json:"user_id"`
	WordleNumbers []int            `json:"wordle_numbers"`
}

// RemoveScoresResult reports how many of the requested puzzles had a row
// to remove.
type RemoveScoresResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Requested int              `json:"requested"`
	Removed   int              `json:"removed"`
}

// SetFailsRequest grants or removes fail rows for specific puzzles.
type SetFailsRequest struct {
	ChannelID     shared.DiscordID `json:"channel_id"`
	ActorID       shared.DiscordID `json:"actor_id"`
	UserID        shared.DiscordID `json:"user_id"`
	Username      string           `json:"username"`
	WordleNumbers []int            `json:"wordle_numbers"`
	Remove        bool             `json:"remove,omitempty"`
}

// SetUncontendedRequest overwrites a user's uncontended crown counter.
type SetUncontendedRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Count     int              `json:"count"`
}

// AdjustCrownsRequest grants or revokes crowns for specific puzzles.
type AdjustCrownsRequest struct {
	ChannelID     shared.DiscordID `json:"channel_id"`
	ActorID       shared.DiscordID `json:"actor_id"`
	UserID        shared.DiscordID `json:"user_id"`
	Username      string           `json:"username"`
	WordleNumbers []int            `json:"wordle_numbers"`
	Revoke        bool             `json:"revoke,omitempty"`
}

// AdjustResult reports a fails or crowns adjustment.
type AdjustResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	UserID    shared.DiscordID `json:"user_id"`
	Changed   int              `json:"changed"`
}

// ImportRequest replays one batch of historical messages through
// ingestion. The gateway pages through channel history and publishes one
// request per page.
type ImportRequest struct {
	GuildID   shared.DiscordID        `json:"guild_id"`
	ChannelID shared.DiscordID        `json:"channel_id"`
	ActorID   shared.DiscordID        `json:"actor_id"`
	Batch     int                     `json:"batch"`
	Final     bool                    `json:"final,omitempty"`
	Messages  []shared.MessagePayload `json:"messages"`
}

// ImportResult reports one processed batch.
type ImportResult struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Batch     int              `json:"batch"`
	Final     bool             `json:"final,omitempty"`
	Ingested  int              `json:"ingested"`
	Skipped   int              `json:"skipped"`
}

// ExportRequest asks for the full standings as a spreadsheet.
type ExportRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	ActorID   shared.DiscordID `json:"actor_id"`
}

// ErrorPayload is the generic failure reply for any admin command.
type ErrorPayload struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Reason    string           `json:"reason"`
}
