package admindb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// AdminDBImpl implements AdminDB with bun queries over the score tables.
type AdminDBImpl struct{}

func (r *AdminDBImpl) Ban(ctx context.Context, db bun.IDB, userID shared.DiscordID, username string) error {
	_, err := db.NewInsert().
		Model(&scoredb.BannedUser{UserID: userID, Username: username}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ban user: %w", err)
	}
	return nil
}

func (r *AdminDBImpl) Unban(ctx context.Context, db bun.IDB, userID shared.DiscordID) (bool, error) {
	res, err := db.NewDelete().
		Model((*scoredb.BannedUser)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("unban user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unban user: rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *AdminDBImpl) ListBanned(ctx context.Context, db bun.IDB) ([]scoredb.BannedUser, error) {
	var banned []scoredb.BannedUser
	err := db.NewSelect().
		Model(&banned).
		OrderExpr("username ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banned users: %w", err)
	}
	return banned, nil
}

func (r *AdminDBImpl) RemoveScores(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumbers []int) (RemovedCounts, error) {
	var counts RemovedCounts

	res, err := db.NewDelete().
		Model((*scoredb.Score)(nil)).
		Where("user_id = ?", userID).
		Where("wordle_number IN (?)", bun.In(wordleNumbers)).
		Exec(ctx)
	if err != nil {
		return counts, fmt.Errorf("remove scores: %w", err)
	}
	n, _ := res.RowsAffected()
	counts.Scores = int(n)

	res, err = db.NewDelete().
		Model((*scoredb.Fail)(nil)).
		Where("user_id = ?", userID).
		Where("wordle_number IN (?)", bun.In(wordleNumbers)).
		Exec(ctx)
	if err != nil {
		return counts, fmt.Errorf("remove fails: %w", err)
	}
	n, _ = res.RowsAffected()
	counts.Fails = int(n)

	return counts, nil
}

func (r *AdminDBImpl) ResetAll(ctx context.Context, db bun.IDB) error {
	for _, model := range []any{
		(*scoredb.Score)(nil),
		(*scoredb.Fail)(nil),
		(*scoredb.Crown)(nil),
		(*scoredb.UncontendedCrown)(nil),
	} {
		if _, err := db.NewDelete().Model(model).Where("TRUE").Exec(ctx); err != nil {
			return fmt.Errorf("reset standings: %w", err)
		}
	}
	return nil
}

func (r *AdminDBImpl) SetUncontended(ctx context.Context, db bun.IDB, userID shared.DiscordID, count int) error {
	_, err := db.NewInsert().
		Model(&scoredb.UncontendedCrown{UserID: userID, Count: count}).
		On("CONFLICT (user_id) DO UPDATE").
		Set("count = EXCLUDED.count").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set uncontended counter: %w", err)
	}
	return nil
}

func (r *AdminDBImpl) RevokeCrown(ctx context.Context, db bun.IDB, userID shared.DiscordID, wordleNumber int) (bool, error) {
	res, err := db.NewDelete().
		Model((*scoredb.Crown)(nil)).
		Where("user_id = ?", userID).
		Where("wordle_number = ?", wordleNumber).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("revoke crown: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("revoke crown: rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *AdminDBImpl) AllScores(ctx context.Context, db bun.IDB) ([]scoredb.Score, error) {
	var scores []scoredb.Score
	err := db.NewSelect().
		Model(&scores).
		OrderExpr("wordle_number ASC").
		OrderExpr("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all scores: %w", err)
	}
	return scores, nil
}

func (r *AdminDBImpl) AllFails(ctx context.Context, db bun.IDB) ([]scoredb.Fail, error) {
	var fails []scoredb.Fail
	err := db.NewSelect().
		Model(&fails).
		OrderExpr("wordle_number ASC").
		OrderExpr("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all fails: %w", err)
	}
	return fails, nil
}

func (r *AdminDBImpl) AllCrowns(ctx context.Context, db bun.IDB) ([]scoredb.Crown, error) {
	var crowns []scoredb.Crown
	err := db.NewSelect().
		Model(&crowns).
		OrderExpr("wordle_number ASC").
		OrderExpr("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load all crowns: %w", err)
	}
	return crowns, nil
}
