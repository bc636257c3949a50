package catalog

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
)

type Repository interface {
	// Get returns the catalog document, or nil when none has been seeded yet.
	Get(ctx context.Context) (*model.MasterCatalog, error)
	// Save writes the whole document; there is no per-item update path.
	Save(ctx context.Context, catalog *model.MasterCatalog) error
}
