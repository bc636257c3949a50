package snapshot

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/snapshot/dto"
)

type UseCase interface {
	Get(ctx context.Context, storeID, date string) (*model.StockSnapshot, error)
	Put(ctx context.Context, input *dto.PutSnapshotInput) (*dto.PutSnapshotResult, error)
	Export(ctx context.Context, storeID, date string) (*dto.SnapshotExport, error)
	// RecoverBackup replays a payload stranded in the local backup cache
	// after an exhausted save, without the user re-entering counts.
	RecoverBackup(ctx context.Context, storeID, date string) (*dto.PutSnapshotResult, error)
}

// OrderSource is the slice of the order ledger the snapshot side reads:
// all orders a store placed on one calendar day.
type OrderSource interface {
	OrdersForDay(ctx context.Context, storeID, day string) ([]model.OrderRecord, error)
}

// CatalogSource yields the current master catalog.
type CatalogSource interface {
	Get(ctx context.Context) (*model.MasterCatalog, error)
}
