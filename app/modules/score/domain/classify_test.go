package scoredomain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordle-club/wordle-bot/app/shared"
)

const companionID = shared.DiscordID("companion-bot")

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  shared.MessagePayload
		want MessageKind
	}{
		{
			name: "plain chatter",
			msg:  shared.MessagePayload{AuthorID: "u1", Content: "tough one today"},
			want: KindNotApplicable,
		},
		{
			name: "individual result",
			msg:  shared.MessagePayload{AuthorID: "u1", Content: "Wordle 1042 4/6\n🟩🟩🟩🟩🟩"},
			want: KindIndividualResult,
		},
		{
			name: "individual fail",
			msg:  shared.MessagePayload{AuthorID: "u1", Content: "wordle 1042 X/6"},
			want: KindIndividualResult,
		},
		{
			name: "score pattern from unrelated bot",
			msg:  shared.MessagePayload{AuthorID: "other-bot", AuthorIsBot: true, Content: "Wordle 1042 2/6"},
			want: KindNotApplicable,
		},
		{
			name: "companion share embed",
			msg: shared.MessagePayload{
				AuthorID:    companionID,
				AuthorIsBot: true,
				Embeds:      []shared.EmbedPayload{{Title: "Wordle 1042 3/6"}},
			},
			want: KindShareEmbed,
		},
		{
			name: "companion embed without a score",
			msg: shared.MessagePayload{
				AuthorID:    companionID,
				AuthorIsBot: true,
				Embeds:      []shared.EmbedPayload{{Title: "Good morning!"}},
			},
			want: KindNotApplicable,
		},
		{
			name: "daily digest",
			msg: shared.MessagePayload{
				AuthorID:    companionID,
				AuthorIsBot: true,
				Content:     "Here are yesterday's results:\n3/6: @alice",
			},
			want: KindSummaryDigest,
		},
		{
			name: "digest marker wins over embeds",
			msg: shared.MessagePayload{
				AuthorID:    companionID,
				AuthorIsBot: true,
				Content:     "Here are yesterday's results:",
				Embeds:      []shared.EmbedPayload{{Title: "Wordle 1042 3/6"}},
			},
			want: KindSummaryDigest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.msg, companionID))
		})
	}
}
