package catalog

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
)

type UseCase interface {
	Get(ctx context.Context) (*model.MasterCatalog, error)
	AddCategory(ctx context.Context, name string) (*model.MasterCatalog, error)
	RemoveCategory(ctx context.Context, name string) (*model.MasterCatalog, error)
	AddItem(ctx context.Context, category, item string) (*model.MasterCatalog, error)
	RemoveItem(ctx context.Context, category, item string) (*model.MasterCatalog, error)
	// Invalidate drops the cached catalog so the next read hits storage. The
	// change listener calls this when a catalog event arrives.
	Invalidate(ctx context.Context) error
}
