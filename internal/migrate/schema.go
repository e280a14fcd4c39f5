package migrate

import (
	"context"
	"database/sql"

	"netstatus-bar/internal/logger"
)

// 约束：使用 IF NOT EXISTS，可在每次打开时重复执行
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _netstatus_cache (
            host TEXT PRIMARY KEY,
            signature TEXT NOT NULL,
            country TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
