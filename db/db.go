package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	"github.com/padraicbc/gridpredict/config"
	"github.com/padraicbc/gridpredict/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// Tables lists every model in dependency order.
func Tables() []any {
	return []any{
		(*models.User)(nil),
		(*models.Driver)(nil),
		(*models.GrandPrix)(nil),
		(*models.Prediction)(nil),
		(*models.DraftResult)(nil),
		(*models.OfficialResult)(nil),
		(*models.PointAdjustment)(nil),
		(*models.UserScore)(nil),
		(*models.League)(nil),
		(*models.LeagueMember)(nil),
	}
}

// CreateTables creates all tables and indexes that do not yet exist.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Tables() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS predictions_gp_idx ON predictions (gp_id)`,
		`CREATE INDEX IF NOT EXISTS grand_prix_season_idx ON grand_prix (season, round)`,
		`CREATE INDEX IF NOT EXISTS point_adjustments_user_idx ON point_adjustments (user_id)`,
		`CREATE INDEX IF NOT EXISTS user_scores_gp_idx ON user_scores (gp_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			zap.L().Warn("create index", zap.String("stmt", stmt), zap.Error(err))
		}
	}

	return nil
}
