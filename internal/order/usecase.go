package order

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/order/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateOrderInput) (*model.OrderRecord, error)
	List(ctx context.Context, storeID, from, to string) ([]model.OrderRecord, error)
	OrdersForDay(ctx context.Context, storeID, day string) ([]model.OrderRecord, error)
	Defaults(ctx context.Context, storeID string) (*dto.OrderDefaults, error)
	// RecoverBackup replays an order stranded in the local backup cache.
	RecoverBackup(ctx context.Context, storeID, day string) (*model.OrderRecord, error)
}

// SnapshotSource reads the stock count attached to an order for audit.
// Returns nil when the store has not counted that day.
type SnapshotSource interface {
	Get(ctx context.Context, storeID, date string) (*model.StockSnapshot, error)
}

// CatalogSource yields the current master catalog.
type CatalogSource interface {
	Get(ctx context.Context) (*model.MasterCatalog, error)
}

// StoreSource resolves the ordering store and its configured satellite.
type StoreSource interface {
	GetStore(ctx context.Context, id string) (*model.Store, error)
	RelatedStore(ctx context.Context, storeID string) (*model.Store, error)
}
