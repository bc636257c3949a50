package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dailycount/stockledger-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Insert(ctx context.Context, record *model.OrderRecord) error {
	// The id is a client-generated idempotency key: a retried insert whose
	// first attempt landed durably is swallowed here instead of creating a
	// duplicate order. The ledger is append-only; there is no update path.
	query := `
        INSERT INTO order_records (
            id, store_id, order_date, delivery_date, quantities,
            rendered_text, snapshot_at_order, advisory, placed_by, created_at
        )
        VALUES (
            :id, :store_id, :order_date, :delivery_date, :quantities,
            :rendered_text, :snapshot_at_order, :advisory, :placed_by, :created_at
        )
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.NamedExecContext(ctx, query, record)
	return err
}

func (r *PGRepository) ListByDay(ctx context.Context, storeID, day string) ([]model.OrderRecord, error) {
	var records []model.OrderRecord
	query := `
        SELECT * FROM order_records
        WHERE store_id = $1 AND order_date::date = $2::date
        ORDER BY order_date ASC
    `
	err := r.DB.SelectContext(ctx, &records, query, storeID, day)
	return records, err
}

func (r *PGRepository) ListRange(ctx context.Context, storeID, from, to string) ([]model.OrderRecord, error) {
	var records []model.OrderRecord
	query := `
        SELECT * FROM order_records
        WHERE store_id = $1 AND order_date::date BETWEEN $2::date AND $3::date
        ORDER BY order_date DESC
    `
	err := r.DB.SelectContext(ctx, &records, query, storeID, from, to)
	return records, err
}
