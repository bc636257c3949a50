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

func (r *PGRepository) Get(ctx context.Context) (*model.MasterCatalog, error) {
	var catalog model.MasterCatalog
	query := `SELECT id, categories, updated_at FROM master_catalog WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &catalog, query, model.CatalogDocID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &catalog, nil
}

func (r *PGRepository) Save(ctx context.Context, c *model.MasterCatalog) error {
	query := `
        INSERT INTO master_catalog (id, categories, updated_at)
        VALUES (:id, :categories, :updated_at)
        ON CONFLICT (id)
        DO UPDATE SET
            categories = EXCLUDED.categories,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}
