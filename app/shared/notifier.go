package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Publisher is the slice of the event bus the notifier needs.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

// Notifier posts celebration and status messages back to Discord through
// the gateway. Sends are rate limited so a summary digest ingesting a
// dozen scores cannot flood the channel.
type Notifier struct {
	publisher Publisher
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewNotifier creates a Notifier allowing perSecond outbound messages
// with a burst of one.
func NewNotifier(publisher Publisher, perSecond float64, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:    logger,
	}
}

// Send posts content to the given channel. It blocks on the rate limiter
// until a slot is free or ctx is done.
func (n *Notifier) Send(ctx context.Context, channelID DiscordID, content string) error {
	return n.SendPayload(ctx, OutboundMessagePayload{ChannelID: channelID, Content: content})
}

// SendPayload posts a full outbound payload, attachments included.
func (n *Notifier) SendPayload(ctx context.Context, payload OutboundMessagePayload) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("notifier rate limit wait: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbound message: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataTopic, TopicDiscordMessageSend)
	if err := n.publisher.Publish(TopicDiscordMessageSend, msg); err != nil {
		return fmt.Errorf("publish outbound message: %w", err)
	}

	n.logger.DebugContext(ctx, "Outbound message published",
		slog.String("channel_id", string(payload.ChannelID)),
	)
	return nil
}
