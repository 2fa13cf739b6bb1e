package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoredb "github.com/wordle-club/wordle-bot/app/modules/score/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating wordle tracking tables...")

		if _, err := db.NewCreateTable().Model((*scoredb.Score)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoredb.Fail)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoredb.Crown)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoredb.UncontendedCrown)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoredb.BannedUser)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Uniqueness is keyed on user_id, never username; display names
		// change and must not fork a user's history.
		_, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_user_wordle ON scores (user_id, wordle_number)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_fails_user_wordle ON fails (user_id, wordle_number)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_crowns_user_wordle ON crowns (user_id, wordle_number)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_scores_user_id ON scores (user_id)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_scores_date ON scores (date)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Wordle tracking tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping wordle tracking tables...")

		for _, model := range []any{
			(*scoredb.BannedUser)(nil),
			(*scoredb.UncontendedCrown)(nil),
			(*scoredb.Crown)(nil),
			(*scoredb.Fail)(nil),
			(*scoredb.Score)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Wordle tracking tables dropped successfully!")
		return nil
	})
}
