package store

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, s *model.Store) error
	// FindByID returns nil when the store does not exist.
	FindByID(ctx context.Context, id string) (*model.Store, error)
	FindAll(ctx context.Context) ([]model.Store, error)
	// Delete removes the store row only. Snapshots and orders for the store
	// stay behind for audit.
	Delete(ctx context.Context, id string) error
}
