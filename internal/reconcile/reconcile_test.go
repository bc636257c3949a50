package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailycount/stockledger-service/internal/model"
)

func TestComputeSold(t *testing.T) {
	current := model.QuantityMap{"MILKSHAKE-Mango": 3}
	prior := model.QuantityMap{"MILKSHAKE-Mango": 10}

	assert.Equal(t, 7.0, ComputeSold("MILKSHAKE-Mango", current, prior))
}

func TestComputeSoldNegativeIsPreserved(t *testing.T) {
	current := model.QuantityMap{"MILKSHAKE-Mango": 15}
	prior := model.QuantityMap{"MILKSHAKE-Mango": 10}

	assert.Equal(t, -5.0, ComputeSold("MILKSHAKE-Mango", current, prior))
}

func TestComputeSoldMissingKeys(t *testing.T) {
	assert.Equal(t, 0.0, ComputeSold("ICECREAM-Pista", model.QuantityMap{}, model.QuantityMap{}))
	// No prior order at all: nonzero stock reconciles as a loss, not an error.
	assert.Equal(t, -4.0, ComputeSold("ICECREAM-Pista", model.QuantityMap{"ICECREAM-Pista": 4}, nil))
}

func TestSummarizePositiveOnlyTotal(t *testing.T) {
	keys := []string{"MILKSHAKE-Mango", "MILKSHAKE-Oreo", "ICECREAM-Vanilla"}
	current := model.QuantityMap{"MILKSHAKE-Mango": 3, "MILKSHAKE-Oreo": 15}
	prior := model.QuantityMap{"MILKSHAKE-Mango": 10, "MILKSHAKE-Oreo": 10}

	summary := Summarize(keys, current, prior)

	require.Len(t, summary.Items, 3)
	assert.Equal(t, 7.0, summary.Items[0].Sold)
	assert.False(t, summary.Items[0].Loss)
	assert.Equal(t, -5.0, summary.Items[1].Sold)
	assert.True(t, summary.Items[1].Loss)
	assert.Equal(t, 0.0, summary.Items[2].Sold)
	assert.False(t, summary.Items[2].Loss)

	// Headline excludes the loss but keeps it visible per item.
	assert.Equal(t, 7.0, summary.TotalSold)
	assert.Equal(t, 5.0, summary.TotalLoss)
}

func TestSumOrdersAcrossSameDay(t *testing.T) {
	orders := []model.OrderRecord{
		{Quantities: model.QuantityMap{"MILKSHAKE-Mango": 12, "SUPPLIES-Cups": 100}},
		{Quantities: model.QuantityMap{"MILKSHAKE-Mango": 8}},
	}

	total := SumOrders(orders)

	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 20, "SUPPLIES-Cups": 100}, total)
}

func TestSumOrdersEmpty(t *testing.T) {
	assert.Equal(t, model.QuantityMap{}, SumOrders(nil))
}

// The worked scenario: fc-road on 2024-01-15 counted 5 mango milkshakes, the
// prior day's orders summed to 20, so 15 were sold.
func TestScenarioFcRoad(t *testing.T) {
	orderDay := time.Date(2024, 1, 14, 18, 30, 0, 0, time.UTC)
	orders := []model.OrderRecord{
		{StoreID: "fc-road", OrderDate: orderDay, Quantities: model.QuantityMap{"MILKSHAKE-Mango": 20}},
	}
	current := model.QuantityMap{"MILKSHAKE-Mango": 5}

	prior := SumOrders(orders)
	summary := Summarize([]string{"MILKSHAKE-Mango"}, current, prior)

	assert.Equal(t, 15.0, summary.Items[0].Sold)
	assert.Equal(t, 15.0, summary.TotalSold)
}
