package scoreadapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// HistorySubject is the gateway's request/reply endpoint for fetching
// recent channel messages.
const HistorySubject = "discord.channel.history.request"

const historyFetchLimit = 20

// historyRequest asks the gateway for messages posted before a timestamp.
type historyRequest struct {
	ChannelID shared.DiscordID `json:"channel_id"`
	Before    time.Time        `json:"before"`
	Limit     int              `json:"limit"`
}

// historyReply carries the fetched messages, newest first.
type historyReply struct {
	Messages []shared.MessagePayload `json:"messages"`
}

// NATSHistoryLookup resolves share authors by asking the gateway for the
// channel messages preceding the companion bot's repost.
type NATSHistoryLookup struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewNATSHistoryLookup wires the lookup over an existing NATS connection.
func NewNATSHistoryLookup(nc *nats.Conn, logger *slog.Logger) *NATSHistoryLookup {
	return &NATSHistoryLookup{nc: nc, logger: logger}
}

// RecentShareAuthor returns the author of the newest human share command
// before the given time, or nil when the window holds none. The companion
// bot reposts a share right after the member issues it, so the nearest
// preceding "/share" message names the player. Other human chatter in the
// window never gets credited.
func (l *NATSHistoryLookup) RecentShareAuthor(ctx context.Context, channelID shared.DiscordID, before time.Time) (*shared.MentionPayload, error) {
	req, err := json.Marshal(historyRequest{
		ChannelID: channelID,
		Before:    before,
		Limit:     historyFetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal history request: %w", err)
	}

	msg, err := l.nc.RequestWithContext(ctx, HistorySubject, req)
	if err != nil {
		if errors.Is(err, nats.ErrNoResponders) {
			l.logger.WarnContext(ctx, "gateway not answering history requests", "channel_id", channelID)
			return nil, nil
		}
		return nil, fmt.Errorf("request channel history: %w", err)
	}

	var reply historyReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return nil, fmt.Errorf("unmarshal history reply: %w", err)
	}

	return shareAuthor(reply.Messages), nil
}

// shareAuthor picks the newest non-bot message that carries the share
// command. Messages arrive newest first.
func shareAuthor(messages []shared.MessagePayload) *shared.MentionPayload {
	for _, m := range messages {
		if m.AuthorIsBot {
			continue
		}
		if !strings.Contains(strings.ToLower(m.Content), "/share") {
			continue
		}
		return &shared.MentionPayload{UserID: m.AuthorID, Username: m.AuthorUsername}
	}
	return nil
}
