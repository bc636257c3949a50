// Package backup keeps the last payload of a write whose retry budget ran
// out, so a manual retry can recover the entry without re-typing it. The
// cache is in-process only and entries expire after a TTL.
package backup

import (
	"sync"
	"time"

	"github.com/dailycount/stockledger-service/internal/model"
)

// Entry is one stranded payload, keyed by (store, date).
type Entry struct {
	StoreID    string            `json:"store_id"`
	StockDate  string            `json:"stock_date"`
	Kind       string            `json:"kind"` // "snapshot" or "order"
	Quantities model.QuantityMap `json:"quantities"`
	RecordedBy string            `json:"recorded_by"`
	SavedAt    time.Time         `json:"saved_at"`
}

type record struct {
	entry     Entry
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]record
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]record),
	}
}

// WithClock substitutes the time source. Tests advance a fake clock instead
// of sleeping.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func key(storeID, date string) string { return storeID + "|" + date }

func (c *Cache) Put(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry.SavedAt = c.now()
	c.entries[key(entry.StoreID, entry.StockDate)] = record{
		entry:     entry,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Get returns the stranded payload for (store, date) if it has not expired.
// Expired entries are evicted on access.
func (c *Cache) Get(storeID, date string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(storeID, date)
	rec, ok := c.entries[k]
	if !ok {
		return Entry{}, false
	}
	if c.now().After(rec.expiresAt) {
		delete(c.entries, k)
		return Entry{}, false
	}
	return rec.entry, true
}

func (c *Cache) Delete(storeID, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key(storeID, date))
}

// Sweep evicts every expired entry and reports how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	now := c.now()
	for k, rec := range c.entries {
		if now.After(rec.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
