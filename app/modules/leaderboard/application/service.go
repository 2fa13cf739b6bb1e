package leaderboardservice

import (
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	leaderboarddb "github.com/wordle-club/wordle-bot/app/modules/leaderboard/infrastructure/repositories"
)

const (
	boardSize = 10
	pageSize  = 15
)

// predictionWindow is how far back recent form reaches.
const predictionWindow = 30 * 24 * time.Hour

// LeaderboardService implements Service over the read repository.
type LeaderboardService struct {
	db     *bun.DB
	repo   leaderboarddb.LeaderboardDB
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewLeaderboardService wires the leaderboard service.
func NewLeaderboardService(db *bun.DB, repo leaderboarddb.LeaderboardDB, logger *slog.Logger, tracer trace.Tracer) Service {
	return &LeaderboardService{
		db:     db,
		repo:   repo,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
	}
}

// rangeSince translates a requested range into a cutoff date. Nil means
// all time. Week is a rolling seven days; month is the current calendar
// month, starting at its first day.
func (s *LeaderboardService) rangeSince(r leaderboardevents.TimeRange) *time.Time {
	var since time.Time
	switch r {
	case leaderboardevents.RangeWeek:
		since = s.now().AddDate(0, 0, -7)
	case leaderboardevents.RangeMonth:
		now := s.now().UTC()
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil
	}
	return &since
}
