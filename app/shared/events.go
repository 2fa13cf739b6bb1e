package shared

import "time"

// Topics that make up the contract with the Discord gateway frontend.
// Inbound topics are published by the gateway; outbound topics are consumed
// and rendered by it.
const (
	TopicDiscordMessageCreated = "discord.message.created"
	TopicDiscordMessageUpdated = "discord.message.updated"
	TopicDiscordMessageSend    = "discord.message.send"
)

// EmbedPayload is the slice of an embed the backend cares about.
type EmbedPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MentionPayload is a resolved mention attached to a gateway message.
type MentionPayload struct {
	UserID   DiscordID `json:"user_id"`
	Username string    `json:"username"`
}

// MessagePayload is an inbound chat message as relayed by the gateway.
// Edits arrive on their own topic with the same shape.
type MessagePayload struct {
	GuildID        DiscordID        `json:"guild_id"`
	ChannelID      DiscordID        `json:"channel_id"`
	MessageID      DiscordID        `json:"message_id"`
	AuthorID       DiscordID        `json:"author_id"`
	AuthorUsername string           `json:"author_username"`
	AuthorIsBot    bool             `json:"author_is_bot"`
	Content        string           `json:"content"`
	Embeds         []EmbedPayload   `json:"embeds,omitempty"`
	Mentions       []MentionPayload `json:"mentions,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AttachmentPayload carries a file for the gateway to upload alongside a
// message. Data is base64-encoded on the wire by encoding/json.
type AttachmentPayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// OutboundMessagePayload asks the gateway to post a message to a channel.
type OutboundMessagePayload struct {
	ChannelID  DiscordID          `json:"channel_id"`
	Content    string             `json:"content"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
}
