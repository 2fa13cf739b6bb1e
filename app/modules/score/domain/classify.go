package scoredomain

import (
	"strings"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// MessageKind is the shape of an inbound message as far as ingestion is
// concerned.
type MessageKind int

const (
	KindNotApplicable MessageKind = iota
	KindIndividualResult
	KindShareEmbed
	KindSummaryDigest
)

func (k MessageKind) String() string {
	switch k {
	case KindIndividualResult:
		return "individual_result"
	case KindShareEmbed:
		return "share_embed"
	case KindSummaryDigest:
		return "summary_digest"
	default:
		return "not_applicable"
	}
}

// DigestMarker is the literal phrase that opens the companion bot's daily
// summary of the previous day's results.
const DigestMarker = "Here are yesterday's results:"

// Classify decides what an inbound message is. Rules apply in order and
// the first match wins; digest detection runs first so a bot-authored
// digest that also carries an embed is never booked twice.
func Classify(msg *shared.MessagePayload, companionBotID shared.DiscordID) MessageKind {
	if strings.Contains(msg.Content, DigestMarker) {
		return KindSummaryDigest
	}

	if msg.AuthorIsBot {
		if msg.AuthorID == companionBotID {
			for _, embed := range msg.Embeds {
				if scorePattern.MatchString(embed.Title) {
					return KindShareEmbed
				}
			}
		}
		// Other bot chatter is never a personal score.
		return KindNotApplicable
	}

	if scorePattern.MatchString(msg.Content) {
		return KindIndividualResult
	}
	return KindNotApplicable
}
