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

func (r *PGRepository) Create(ctx context.Context, s *model.Store) error {
	query := `
        INSERT INTO stores (id, display_name, firm_name, area_code, related_store_id, created_at)
        VALUES (:id, :display_name, :firm_name, :area_code, :related_store_id, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	query := `SELECT * FROM stores WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	query := `SELECT * FROM stores ORDER BY display_name ASC`
	err := r.DB.SelectContext(ctx, &stores, query)
	return stores, err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// No cascade: historical snapshots and orders stay readable for audit.
	_, err := r.DB.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	return err
}
