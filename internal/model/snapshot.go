package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used throughout the ledger.
const DateLayout = "2006-01-02"

// QuantityMap maps an ItemKey ("<Category>-<ItemName>") to a stock count.
// Stored as a single jsonb column; a snapshot is always written whole.
type QuantityMap map[string]float64

func (q QuantityMap) Value() (driver.Value, error) {
	if q == nil {
		q = QuantityMap{}
	}
	return json.Marshal(q)
}

func (q *QuantityMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*q = QuantityMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("cannot scan %T into QuantityMap", src)
	}
}

// Clone returns a copy so callers can hand maps across layers without
// aliasing the stored value.
func (q QuantityMap) Clone() QuantityMap {
	out := make(QuantityMap, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// StockSnapshot is the full quantity map one store counted on one calendar
// day. Key is (store_id, stock_date); a re-save replaces the whole map.
type StockSnapshot struct {
	StoreID    string      `db:"store_id" json:"store_id"`
	StockDate  string      `db:"stock_date" json:"stock_date"`
	Quantities QuantityMap `db:"quantities" json:"quantities"`
	RecordedBy string      `db:"recorded_by" json:"recorded_by"`
	RecordedAt time.Time   `db:"recorded_at" json:"recorded_at"`
}
