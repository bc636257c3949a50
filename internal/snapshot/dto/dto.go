package dto

import (
	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/reconcile"
)

type PutSnapshotInput struct {
	StoreID    string
	Date       string
	Quantities map[string]any
}

type PutSnapshotResult struct {
	Snapshot *model.StockSnapshot `json:"snapshot"`
	Warnings []string             `json:"warnings,omitempty"`
}

// SnapshotExport is the read-side projection of one ledger day: the counted
// stock, the prior day's counted stock, and the sold/loss reconciliation
// against the prior day's summed orders.
type SnapshotExport struct {
	StoreID      string                 `json:"store_id"`
	Date         string                 `json:"date"`
	CurrentStock model.QuantityMap      `json:"current_stock"`
	PriorStock   model.QuantityMap      `json:"prior_stock"`
	Items        []reconcile.ItemResult `json:"items"`
	TotalSold    float64                `json:"total_sold"`
	TotalLoss    float64                `json:"total_loss"`
}
