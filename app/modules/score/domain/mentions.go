package scoredomain

import (
	"fmt"
	"strings"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// ResolveMentions maps the free-text user section of a digest line onto
// the message's resolved mention list. A mention counts when the section
// contains either the literal "@displayname" or the raw mention tag.
// No fuzzy matching; an unmatched reference is dropped.
func ResolveMentions(section string, mentions []shared.MentionPayload) []shared.MentionPayload {
	var found []shared.MentionPayload
	for _, m := range mentions {
		byName := strings.Contains(section, "@"+m.Username)
		byTag := strings.Contains(section, fmt.Sprintf("<@%s>", m.UserID))
		if byName || byTag {
			found = append(found, m)
		}
	}
	return found
}
