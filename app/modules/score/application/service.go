package scoreservice

import (
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// ScoreService implements Service on top of the score repository.
type ScoreService struct {
	db             *bun.DB
	repo           scoredb.ScoreDB
	history        HistoryLookup
	notifier       Notifier
	companionBotID shared.DiscordID
	logger         *slog.Logger
	tracer         trace.Tracer
}

// NewScoreService wires the score service.
func NewScoreService(
	db *bun.DB,
	repo scoredb.ScoreDB,
	history HistoryLookup,
	notifier Notifier,
	companionBotID shared.DiscordID,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &ScoreService{
		db:             db,
		repo:           repo,
		history:        history,
		notifier:       notifier,
		companionBotID: companionBotID,
		logger:         logger,
		tracer:         tracer,
	}
}
