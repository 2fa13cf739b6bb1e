package scoreadapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordle-club/wordle-bot/app/shared"
)

func TestShareAuthor(t *testing.T) {
	tests := []struct {
		name     string
		messages []shared.MessagePayload
		want     *shared.MentionPayload
	}{
		{
			name: "newest share command wins",
			messages: []shared.MessagePayload{
				{AuthorID: "u1", AuthorUsername: "alice", Content: "/share"},
				{AuthorID: "u2", AuthorUsername: "bob", Content: "/share"},
			},
			want: &shared.MentionPayload{UserID: "u1", Username: "alice"},
		},
		{
			name: "chatter before the repost is not credited",
			messages: []shared.MessagePayload{
				{AuthorID: "u2", AuthorUsername: "bob", Content: "good morning"},
				{AuthorID: "u1", AuthorUsername: "alice", Content: "/share"},
			},
			want: &shared.MentionPayload{UserID: "u1", Username: "alice"},
		},
		{
			name: "bot messages are skipped",
			messages: []shared.MessagePayload{
				{AuthorID: "b1", AuthorUsername: "gateway", AuthorIsBot: true, Content: "/share"},
				{AuthorID: "u1", AuthorUsername: "alice", Content: "/share"},
			},
			want: &shared.MentionPayload{UserID: "u1", Username: "alice"},
		},
		{
			name: "command match is case insensitive",
			messages: []shared.MessagePayload{
				{AuthorID: "u1", AuthorUsername: "alice", Content: "/SHARE"},
			},
			want: &shared.MentionPayload{UserID: "u1", Username: "alice"},
		},
		{
			name: "no share command in the window",
			messages: []shared.MessagePayload{
				{AuthorID: "u1", AuthorUsername: "alice", Content: "brutal one today"},
				{AuthorID: "u2", AuthorUsername: "bob", Content: "agreed"},
			},
			want: nil,
		},
		{
			name:     "empty window",
			messages: nil,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shareAuthor(tt.messages)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
