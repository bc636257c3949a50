package snapshot

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
)

type Repository interface {
	// Get returns the snapshot for (storeID, date), or nil when none exists.
	Get(ctx context.Context, storeID, date string) (*model.StockSnapshot, error)
	// Upsert replaces the whole quantities map for (storeID, date). A full
	// recount supersedes a prior count; there is no partial merge. Storage
	// errors propagate unchanged; retry policy lives with the caller.
	Upsert(ctx context.Context, snap *model.StockSnapshot) error
}
