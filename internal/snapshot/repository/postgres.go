package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/dailycount/stockledger-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Get(ctx context.Context, storeID, date string) (*model.StockSnapshot, error) {
	var snap model.StockSnapshot
	query := `SELECT * FROM stock_snapshots WHERE store_id = $1 AND stock_date = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &snap, query, storeID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (r *PGRepository) Upsert(ctx context.Context, snap *model.StockSnapshot) error {
	// Last-write-wins: the conflict branch replaces the entire quantities
	// map, never merges it.
	query := `
        INSERT INTO stock_snapshots (store_id, stock_date, quantities, recorded_by, recorded_at)
        VALUES (:store_id, :stock_date, :quantities, :recorded_by, :recorded_at)
        ON CONFLICT (store_id, stock_date)
        DO UPDATE SET
            quantities = EXCLUDED.quantities,
            recorded_by = EXCLUDED.recorded_by,
            recorded_at = EXCLUDED.recorded_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, snap)
	return err
}
