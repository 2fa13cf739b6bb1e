package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the transport the modules publish to and subscribe on. It
// satisfies watermill's Publisher/Subscriber so it can be handed straight
// to a message router; CreateStream provisions the backing JetStream
// stream for a set of subjects before the router starts.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	CreateStream(ctx context.Context, streamName string, subjects ...string) error
	Close() error
}
