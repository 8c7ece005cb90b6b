package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

// TableName 迁移记录表
const TableName = "_migrations"

// Up 执行全部未执行的迁移，线上为 database.DialectPostgres
func Up(ctx context.Context, db *sql.DB, dialect database.Dialect, logger *logrus.Logger) error {
	store, err := database.NewStore(dialect, TableName)
	if err != nil {
		return fmt.Errorf("初始化迁移记录表失败: %w", err)
	}
	provider, err := goose.NewProvider("", db, nil,
		goose.WithStore(store),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(
			goose.NewGoMigration(1,
				&goose.GoFunc{RunTx: upCreateSportEvents},
				&goose.GoFunc{RunTx: downCreateSportEvents},
			),
			goose.NewGoMigration(2,
				&goose.GoFunc{RunTx: upTimestampsWithZone(dialect)},
				&goose.GoFunc{RunTx: downTimestampsWithZone(dialect)},
			),
		),
	)
	if err != nil {
		return fmt.Errorf("初始化迁移失败: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("执行迁移失败: %w", err)
	}
	for _, r := range results {
		logger.WithField("version", r.Source.Version).Infof("迁移完成，用时 %s", r.Duration)
	}
	return nil
}

func upCreateSportEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sport_events (
			id          VARCHAR(36)  NOT NULL PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			sport       VARCHAR(32)  NOT NULL,
			status      VARCHAR(16)  NOT NULL DEFAULT 'INACTIVE',
			start_time  TIMESTAMP    NOT NULL,
			finish_time TIMESTAMP    NOT NULL,
			created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT chk_sport_events_window CHECK (start_time < finish_time)
		);
		CREATE INDEX IF NOT EXISTS idx_sport_events_sport ON sport_events (sport);
		CREATE INDEX IF NOT EXISTS idx_sport_events_status ON sport_events (status);
		CREATE INDEX IF NOT EXISTS idx_sport_events_start_time ON sport_events (start_time);
	`)
	return err
}

func downCreateSportEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS sport_events;`)
	return err
}

var timestampColumns = []string{"start_time", "finish_time", "created_at", "updated_at"}

// upTimestampsWithZone 时间列改为 TIMESTAMPTZ，存量数据按 UTC 解释。
// SQLite 无列类型约束，跳过
func upTimestampsWithZone(dialect database.Dialect) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		if dialect != database.DialectPostgres {
			return nil
		}
		for _, col := range timestampColumns {
			stmt := fmt.Sprintf(`ALTER TABLE sport_events ALTER COLUMN %[1]s TYPE TIMESTAMPTZ USING %[1]s AT TIME ZONE 'UTC'`, col)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

func downTimestampsWithZone(dialect database.Dialect) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		if dialect != database.DialectPostgres {
			return nil
		}
		for _, col := range timestampColumns {
			stmt := fmt.Sprintf(`ALTER TABLE sport_events ALTER COLUMN %[1]s TYPE TIMESTAMP USING %[1]s AT TIME ZONE 'UTC'`, col)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}
