package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	leaderboardservice "github.com/wordle-club/wordle-bot/app/modules/leaderboard/application"
	leaderboardevents "github.com/wordle-club/wordle-bot/app/modules/leaderboard/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// PredictionArgs is the daily prediction job. It carries no payload; the
// worker reads everything from the database.
type PredictionArgs struct{}

func (PredictionArgs) Kind() string { return "daily_prediction" }

// PredictionWorker posts the daily prediction digest.
type PredictionWorker struct {
	river.WorkerDefaults[PredictionArgs]

	service   leaderboardservice.Service
	bus       shared.EventBus
	channelID shared.DiscordID
	logger    *slog.Logger
}

func (w *PredictionWorker) Work(ctx context.Context, job *river.Job[PredictionArgs]) error {
	digest, err := w.service.PredictionDigest(ctx, w.channelID)
	if err != nil {
		return fmt.Errorf("build prediction digest: %w", err)
	}
	if len(digest.Entries) == 0 {
		w.logger.InfoContext(ctx, "no recent plays, skipping prediction digest")
		return nil
	}

	msg, err := shared.NewResultMessage(nil, leaderboardevents.PredictionDigest, digest)
	if err != nil {
		return fmt.Errorf("build prediction message: %w", err)
	}
	if err := w.bus.Publish(leaderboardevents.PredictionDigest, msg); err != nil {
		return fmt.Errorf("publish prediction digest: %w", err)
	}
	return nil
}

// dailySchedule fires once a day at a fixed UTC hour.
type dailySchedule struct {
	hour int
}

func (s dailySchedule) Next(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), s.hour, 0, 0, 0, time.UTC)
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// QueueService owns the river client and its pgx pool.
type QueueService struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewQueueService builds the job queue with the daily prediction job
// scheduled at the configured hour.
func NewQueueService(
	ctx context.Context,
	dsn string,
	service leaderboardservice.Service,
	bus shared.EventBus,
	channelID shared.DiscordID,
	hourUTC int,
	logger *slog.Logger,
) (*QueueService, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &PredictionWorker{
		service:   service,
		bus:       bus,
		channelID: channelID,
		logger:    logger,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				dailySchedule{hour: hourUTC},
				func() (river.JobArgs, *river.InsertOpts) {
					return PredictionArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: false},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create river client: %w", err)
	}

	return &QueueService{client: client, pool: pool, logger: logger}, nil
}

// Start begins job processing.
func (q *QueueService) Start(ctx context.Context) error {
	return q.client.Start(ctx)
}

// Stop drains running jobs and releases the pool.
func (q *QueueService) Stop(ctx context.Context) error {
	err := q.client.Stop(ctx)
	q.pool.Close()
	return err
}
