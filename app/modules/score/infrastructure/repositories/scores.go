package scoredb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/wordle-club/wordle-bot/app/shared"
)

// ScoreDBImpl handles database operations for the ingestion pipeline.
type ScoreDBImpl struct{}

func (r *ScoreDBImpl) IsBanned(ctx context.Context, db bun.IDB, userID shared.DiscordID) (bool, error) {
	exists, err := db.NewSelect().
		Model((*BannedUser)(nil)).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check banned user: %w", err)
	}
	return exists, nil
}

func (r *ScoreDBImpl) PreviousBest(ctx context.Context, db bun.IDB, userID shared.DiscordID) (*int, error) {
	var best sql.NullInt64
	err := db.NewSelect().
		Model((*Score)(nil)).
		ColumnExpr("MIN(attempts)").
		Where("user_id = ?", userID).
		Where("attempts IS NOT NULL").
		Scan(ctx, &best)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous best: %w", err)
	}
	if !best.Valid {
		return nil, nil
	}
	v := int(best.Int64)
	return &v, nil
}

func (r *ScoreDBImpl) UpsertScore(ctx context.Context, db bun.IDB, score *Score) error {
	_, err := db.NewInsert().
		Model(score).
		On("CONFLICT (user_id, wordle_number) DO UPDATE").
		Set("attempts = EXCLUDED.attempts").
		Set("date = EXCLUDED.date").
		Set("username = EXCLUDED.username").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

func (r *ScoreDBImpl) InsertFail(ctx context.Context, db bun.IDB, fail *Fail) error {
	_, err := db.NewInsert().
		Model(fail).
		On("CONFLICT (user_id, wordle_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert fail: %w", err)
	}
	return nil
}

func (r *ScoreDBImpl) DeleteFail(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumber int) error {
	_, err := db.NewDelete().
		Model((*Fail)(nil)).
		Where("user_id = ?", userID).
		Where("wordle_number = ?", wordleNumber).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete fail: %w", err)
	}
	return nil
}

func (r *ScoreDBImpl) InsertCrown(ctx context.Context, db bun.IDB, crown *Crown) (bool, error) {
	res, err := db.NewInsert().
		Model(crown).
		On("CONFLICT (user_id, wordle_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert crown: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get inserted crown count: %w", err)
	}
	return inserted > 0, nil
}

func (r *ScoreDBImpl) IncrementUncontended(ctx context.Context, db bun.IDB, userID shared.DiscordID, delta int) error {
	counter := &UncontendedCrown{UserID: userID, Count: delta}
	_, err := db.NewInsert().
		Model(counter).
		On("CONFLICT (user_id) DO UPDATE").
		Set("count = uc.count + EXCLUDED.count").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment uncontended crowns: %w", err)
	}
	return nil
}

func (r *ScoreDBImpl) ScoresForPuzzle(ctx context.Context, db bun.IDB, wordleNumber int) ([]Score, error) {
	var scores []Score
	err := db.NewSelect().
		Model(&scores).
		Where("wordle_number = ?", wordleNumber).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores for puzzle %d: %w", wordleNumber, err)
	}
	return scores, nil
}
