package adminservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	admindb "github.com/wordle-club/wordle-bot/app/modules/admin/infrastructure/repositories"
	scoreservice "github.com/wordle-club/wordle-bot/app/modules/score/application"
	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
)

// TxRunner is the transactional slice of *bun.DB the service needs.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

// AdminService implements Service. Fail and crown grants go through the
// score repository so the conflict handling stays in one place.
type AdminService struct {
	db            bun.IDB
	txr           TxRunner
	repo          admindb.AdminDB
	scores        scoredb.ScoreDB
	ingestor      scoreservice.Service
	confirmations *ConfirmationRegistry
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewAdminService wires the admin service.
func NewAdminService(
	db *bun.DB,
	repo admindb.AdminDB,
	scores scoredb.ScoreDB,
	ingestor scoreservice.Service,
	confirmations *ConfirmationRegistry,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	return &AdminService{
		db:            db,
		txr:           db,
		repo:          repo,
		scores:        scores,
		ingestor:      ingestor,
		confirmations: confirmations,
		logger:        logger,
		tracer:        tracer,
	}
}
