// Package reconcile derives sold/loss figures from a day's stock snapshot and
// the previous day's summed order quantities. Pure functions; the catalog and
// both maps are passed in explicitly.
package reconcile

import (
	"sort"

	"github.com/dailycount/stockledger-service/internal/model"
)

// ComputeSold returns priorOrdered[key] - current[key]. Missing keys count as
// zero on either side. A negative result means more stock is on hand than was
// ordered; the sign is diagnostic and is never clamped away.
func ComputeSold(key string, current, priorOrdered model.QuantityMap) float64 {
	return priorOrdered[key] - current[key]
}

// ItemResult is the per-item reconciliation outcome. Loss marks a negative
// sold figure so it can be surfaced distinctly instead of hidden.
type ItemResult struct {
	Key     string  `json:"key"`
	Current float64 `json:"current"`
	Ordered float64 `json:"ordered"`
	Sold    float64 `json:"sold"`
	Loss    bool    `json:"loss"`
}

// Summary aggregates reconciliation across item keys. TotalSold sums only the
// positive sold figures; losses stay visible per item and in TotalLoss but
// never reduce the headline number.
type Summary struct {
	Items     []ItemResult `json:"items"`
	TotalSold float64      `json:"total_sold"`
	TotalLoss float64      `json:"total_loss"`
}

// Summarize reconciles every key in keys, preserving their order. Keys absent
// from both maps still appear with zero figures so the caller renders a
// complete sheet.
func Summarize(keys []string, current, priorOrdered model.QuantityMap) Summary {
	summary := Summary{Items: make([]ItemResult, 0, len(keys))}
	for _, key := range keys {
		sold := ComputeSold(key, current, priorOrdered)
		item := ItemResult{
			Key:     key,
			Current: current[key],
			Ordered: priorOrdered[key],
			Sold:    sold,
			Loss:    sold < 0,
		}
		if sold > 0 {
			summary.TotalSold += sold
		} else if sold < 0 {
			summary.TotalLoss += -sold
		}
		summary.Items = append(summary.Items, item)
	}
	return summary
}

// Keys returns the catalog's declared item keys followed by any key seen in
// the supplied maps that the catalog no longer declares. Stale keys reconcile
// as zeros but are never silently dropped; the stale tail is sorted so the
// result is deterministic.
func Keys(catalog *model.MasterCatalog, maps ...model.QuantityMap) []string {
	keys := catalog.ItemKeys()
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}

	var stale []string
	for _, m := range maps {
		for k := range m {
			if !known[k] {
				known[k] = true
				stale = append(stale, k)
			}
		}
	}
	sort.Strings(stale)
	return append(keys, stale...)
}

// SumOrders adds up the quantity maps of every order in the slice. Multiple
// same-day orders are summed, not replaced by the latest. An empty slice
// yields an empty map, which reconciles as all zeros.
func SumOrders(orders []model.OrderRecord) model.QuantityMap {
	total := model.QuantityMap{}
	for _, order := range orders {
		for key, qty := range order.Quantities {
			total[key] += qty
		}
	}
	return total
}
