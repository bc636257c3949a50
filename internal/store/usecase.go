package store

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/store/dto"
)

type UseCase interface {
	CreateStore(ctx context.Context, input *dto.CreateStoreInput) (*model.Store, error)
	GetStore(ctx context.Context, id string) (*model.Store, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	DeleteStore(ctx context.Context, id string) error
	// RelatedStore resolves the hub-to-satellite join: the store named by
	// RelatedStoreID, or nil when the store has none or it no longer exists.
	RelatedStore(ctx context.Context, storeID string) (*model.Store, error)
	Invalidate(ctx context.Context) error
}
