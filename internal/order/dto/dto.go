package dto

import (
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/reconcile"
)

type CreateOrderInput struct {
	StoreID    string
	Quantities map[string]any
}

// OrderDefaults pre-populates the order form: yesterday's reconciliation and
// the positive sold figures as suggested reorder quantities.
type OrderDefaults struct {
	StoreID      string            `json:"store_id"`
	SnapshotDate string            `json:"snapshot_date"`
	Suggested    model.QuantityMap `json:"suggested"`
	Summary      reconcile.Summary `json:"summary"`
}
