package shared

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// CommonMetadataMiddleware stamps every message passing through a module's
// router with the module name and a processing timestamp. Useful when
// chasing an event across modules in the logs.
func CommonMetadataMiddleware(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msgs, err := h(msg)
			for _, m := range msgs {
				m.Metadata.Set("handled_by", module)
				m.Metadata.Set("handled_at", time.Now().UTC().Format(time.RFC3339))
			}
			return msgs, err
		}
	}
}
