package order

import (
	"context"

	"github.com/dailycount/stockledger-service/internal/model"
)

type Repository interface {
	// Insert appends an order. Inserting an id that already exists is a
	// no-op: the id doubles as an idempotency key so a retried write that
	// actually landed cannot produce a duplicate visible order.
	Insert(ctx context.Context, record *model.OrderRecord) error
	// ListByDay returns every order the store placed on one calendar day,
	// oldest first.
	ListByDay(ctx context.Context, storeID, day string) ([]model.OrderRecord, error)
	// ListRange returns orders with order_date in [from, to], newest first.
	ListRange(ctx context.Context, storeID, from, to string) ([]model.OrderRecord, error)
}
