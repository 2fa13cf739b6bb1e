package eventbus

import (
	"context"
	"fmt"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// StreamDefinition names a JetStream stream and the subjects it captures.
type StreamDefinition struct {
	Name     string
	Subjects []string
}

// Streams declares the streams the backend needs before the router starts.
// The discord stream carries the gateway contract; the module streams carry
// the command request/result traffic.
func Streams() []StreamDefinition {
	return []StreamDefinition{
		{
			Name: "discord",
			Subjects: []string{
				shared.TopicDiscordMessageCreated,
				shared.TopicDiscordMessageUpdated,
				shared.TopicDiscordMessageSend,
			},
		},
		{Name: "score", Subjects: []string{"score.>"}},
		{Name: "leaderboard", Subjects: []string{"leaderboard.>"}},
		{Name: "admin", Subjects: []string{"admin.>"}},
	}
}

// InitializeStreams creates every declared stream during application startup.
func InitializeStreams(ctx context.Context, bus shared.EventBus) error {
	for _, def := range Streams() {
		if err := bus.CreateStream(ctx, def.Name, def.Subjects...); err != nil {
			return fmt.Errorf("initialize stream %s: %w", def.Name, err)
		}
	}
	return nil
}
