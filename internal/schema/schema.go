// Package schema creates the service tables at startup. Statements are
// idempotent so restarts against an already-provisioned database are safe.
package schema

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dailycount/stockledger-service/pkg/errs"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS stores (
		id               TEXT PRIMARY KEY,
		display_name     TEXT NOT NULL,
		firm_name        TEXT NOT NULL DEFAULT '',
		area_code        TEXT NOT NULL DEFAULT '',
		related_store_id TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// stock_date is the validated YYYY-MM-DD key string, stored as TEXT so
	// the driver round-trips it byte for byte; a DATE column would come
	// back as time.Time and re-format the key.
	`CREATE TABLE IF NOT EXISTS stock_snapshots (
		store_id    TEXT NOT NULL,
		stock_date  TEXT NOT NULL,
		quantities  JSONB NOT NULL,
		recorded_by TEXT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (store_id, stock_date)
	)`,
	`CREATE TABLE IF NOT EXISTS order_records (
		id                TEXT PRIMARY KEY,
		store_id          TEXT NOT NULL,
		order_date        TIMESTAMPTZ NOT NULL,
		delivery_date     TIMESTAMPTZ NOT NULL,
		quantities        JSONB NOT NULL,
		rendered_text     TEXT NOT NULL,
		snapshot_at_order JSONB NOT NULL,
		advisory          JSONB NOT NULL,
		placed_by         TEXT NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_records_store_day
		ON order_records (store_id, order_date)`,
	`CREATE TABLE IF NOT EXISTS master_catalog (
		id         TEXT PRIMARY KEY,
		categories JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Ensure runs the DDL for every service table.
func Ensure(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errs.Wrap(errs.KindInternal, "ensure schema", err)
		}
	}
	return nil
}
