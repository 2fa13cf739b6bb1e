package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// MetadataTopic names the metadata key the event bus publisher reads to
// route a result message. Handlers are registered with an empty publish
// topic; every outgoing message carries its destination itself.
const MetadataTopic = "topic"

// Result is a single outgoing event produced by a handler.
type Result struct {
	Topic   string
	Payload any
}

// WrapTyped adapts a typed handler into a watermill HandlerFunc: it
// unmarshals the message payload into T, runs the handler inside a span,
// and converts the returned Results into messages that inherit the
// correlation ID of the triggering message.
func WrapTyped[T any](
	name string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), name)
		defer span.End()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				slog.String("handler", name),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("%s: unmarshal payload: %w", name, err)
		}

		results, err := handler(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out := make([]*message.Message, 0, len(results))
		for _, res := range results {
			m, err := NewResultMessage(msg, res.Topic, res.Payload)
			if err != nil {
				return nil, fmt.Errorf("%s: build result message for %q: %w", name, res.Topic, err)
			}
			out = append(out, m)
		}
		return out, nil
	}
}

// NewResultMessage marshals payload into a new message routed to topic.
// The correlation ID of src is carried over when present.
func NewResultMessage(src *message.Message, topic string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), data)
	msg.Metadata.Set(MetadataTopic, topic)
	if src != nil {
		if correlationID := middleware.MessageCorrelationID(src); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
	}
	return msg, nil
}
