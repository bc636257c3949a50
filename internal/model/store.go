package model

import "time"

// Store is one physical outlet. RelatedStoreID is the data-driven
// hub-to-satellite join: when set, orders rendered for this store carry the
// related store's name as a trailing section.
type Store struct {
	ID             string    `db:"id" json:"id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	FirmName       string    `db:"firm_name" json:"firm_name"`
	AreaCode       string    `db:"area_code" json:"area_code"`
	RelatedStoreID *string   `db:"related_store_id" json:"related_store_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
