package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailycount/stockledger-service/internal/model"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := NewCache(time.Hour)

	c.Put(Entry{
		StoreID:    "fc-road",
		StockDate:  "2024-01-15",
		Kind:       "snapshot",
		Quantities: model.QuantityMap{"MILKSHAKE-Mango": 5},
		RecordedBy: "ravi",
	})

	got, ok := c.Get("fc-road", "2024-01-15")
	require.True(t, ok)
	assert.Equal(t, model.QuantityMap{"MILKSHAKE-Mango": 5}, got.Quantities)
	assert.Equal(t, "ravi", got.RecordedBy)
	assert.False(t, got.SavedAt.IsZero())
}

func TestExpiryEvictsOnAccess(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	c := NewCache(time.Hour).WithClock(func() time.Time { return now })

	c.Put(Entry{StoreID: "fc-road", StockDate: "2024-01-15"})

	now = now.Add(59 * time.Minute)
	_, ok := c.Get("fc-road", "2024-01-15")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("fc-road", "2024-01-15")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSweep(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	c := NewCache(time.Hour).WithClock(func() time.Time { return now })

	c.Put(Entry{StoreID: "fc-road", StockDate: "2024-01-14"})
	now = now.Add(30 * time.Minute)
	c.Put(Entry{StoreID: "fc-road", StockDate: "2024-01-15"})

	now = now.Add(45 * time.Minute) // first entry is 75m old, second 45m
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("fc-road", "2024-01-15")
	assert.True(t, ok)
}

func TestKeysAreIndependent(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put(Entry{StoreID: "fc-road", StockDate: "2024-01-15"})
	c.Put(Entry{StoreID: "baner", StockDate: "2024-01-15"})

	c.Delete("fc-road", "2024-01-15")

	_, ok := c.Get("fc-road", "2024-01-15")
	assert.False(t, ok)
	_, ok = c.Get("baner", "2024-01-15")
	assert.True(t, ok)
}
