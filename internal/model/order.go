package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// HolidayInfo and WeatherInfo arrive from the advisory collaborator and are
// stored verbatim; the ledger never interprets them.
type HolidayInfo struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type WeatherInfo struct {
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
}

type Advisory struct {
	Holidays []HolidayInfo `json:"holidays"`
	Weather  *WeatherInfo  `json:"weather"`
}

func (a Advisory) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Advisory) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Advisory{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Advisory", src)
	}
}

// OrderRecord is one replenishment request. The ledger is append-only: a
// record is never mutated after insert, corrections are new orders. Several
// orders may exist for the same store on the same day.
type OrderRecord struct {
	ID              string      `db:"id" json:"id"`
	StoreID         string      `db:"store_id" json:"store_id"`
	OrderDate       time.Time   `db:"order_date" json:"order_date"`
	DeliveryDate    time.Time   `db:"delivery_date" json:"delivery_date"`
	Quantities      QuantityMap `db:"quantities" json:"quantities"`
	RenderedText    string      `db:"rendered_text" json:"rendered_text"`
	SnapshotAtOrder QuantityMap `db:"snapshot_at_order" json:"snapshot_at_order"`
	Advisory        Advisory    `db:"advisory" json:"advisory"`
	PlacedBy        string      `db:"placed_by" json:"placed_by"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
}
