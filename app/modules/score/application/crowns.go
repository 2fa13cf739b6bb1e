package scoreservice

import (
	"context"
	"fmt"
	"time"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
)

// CrownOutcome reports who won a puzzle and whether the win was
// uncontended.
type CrownOutcome struct {
	WordleNumber int
	Winners      []scoredb.Score
	Uncontended  bool
}

// ResolveCrowns awards crowns for one puzzle from the scores already on
// record. Every user tied at the lowest solved attempt count gets a
// crown; fails never win. The uncontended counter only moves when a sole
// winner's crown row is newly inserted, so replaying a digest cannot
// double-count.
func (s *ScoreService) ResolveCrowns(ctx context.Context, wordleNumber int, date time.Time) (CrownOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "score.resolve_crowns")
	defer span.End()

	out := CrownOutcome{WordleNumber: wordleNumber}

	scores, err := s.repo.ScoresForPuzzle(ctx, s.db, wordleNumber)
	if err != nil {
		return out, fmt.Errorf("load scores for puzzle %d: %w", wordleNumber, err)
	}

	best := 0
	for _, sc := range scores {
		if sc.Attempts == nil {
			continue
		}
		if best == 0 || *sc.Attempts < best {
			best = *sc.Attempts
		}
	}
	if best == 0 {
		// Nobody solved it.
		return out, nil
	}

	for _, sc := range scores {
		if sc.Attempts == nil || *sc.Attempts != best {
			continue
		}
		out.Winners = append(out.Winners, sc)
	}

	soleWinnerNewCrown := false
	for _, w := range out.Winners {
		inserted, err := s.repo.InsertCrown(ctx, s.db, &scoredb.Crown{
			UserID:       w.UserID,
			Username:     w.Username,
			WordleNumber: wordleNumber,
			Date:         date,
		})
		if err != nil {
			return out, fmt.Errorf("insert crown for %s: %w", w.UserID, err)
		}
		if inserted && len(out.Winners) == 1 {
			soleWinnerNewCrown = true
		}
	}

	if len(out.Winners) == 1 {
		out.Uncontended = true
		if soleWinnerNewCrown {
			if err := s.repo.IncrementUncontended(ctx, s.db, out.Winners[0].UserID, 1); err != nil {
				return out, fmt.Errorf("increment uncontended for %s: %w", out.Winners[0].UserID, err)
			}
		}
	}

	s.logger.InfoContext(ctx, "crowns resolved",
		"wordle_number", wordleNumber,
		"winners", len(out.Winners),
		"uncontended", out.Uncontended,
	)
	return out, nil
}
