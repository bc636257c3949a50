package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is one ordered group of item names. Order of categories and of
// items within a category is significant: order text is rendered in exactly
// this sequence.
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type CategoryList []Category

func (c CategoryList) Value() (driver.Value, error) {
	if c == nil {
		c = CategoryList{}
	}
	return json.Marshal(c)
}

func (c *CategoryList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = CategoryList{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into CategoryList", src)
	}
}

// MasterCatalog is the single shared item catalog. Every mutation overwrites
// the whole document; there is no per-item diffing at the storage layer.
type MasterCatalog struct {
	ID         string       `db:"id" json:"id"`
	Categories CategoryList `db:"categories" json:"categories"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// CatalogDocID is the primary key of the one catalog row.
const CatalogDocID = "master"

// ItemKey builds the composite "<Category>-<ItemName>" identifier.
func ItemKey(category, item string) string {
	return category + "-" + item
}

// SplitItemKey breaks a composite key at the first separator. ok is false for
// keys with no separator or an empty category.
func SplitItemKey(key string) (category, item string, ok bool) {
	idx := strings.Index(key, "-")
	if idx <= 0 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}

// ItemKeys returns every key the catalog declares, in declared order.
func (c *MasterCatalog) ItemKeys() []string {
	var keys []string
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			keys = append(keys, ItemKey(cat.Name, item))
		}
	}
	return keys
}

// HasItem reports whether the category already declares the item.
func (c *MasterCatalog) HasItem(category, item string) bool {
	for _, cat := range c.Categories {
		if cat.Name != category {
			continue
		}
		for _, existing := range cat.Items {
			if existing == item {
				return true
			}
		}
	}
	return false
}

// DefaultCatalog seeds a fresh deployment. Admins reshape it afterwards.
func DefaultCatalog() *MasterCatalog {
	return &MasterCatalog{
		ID: CatalogDocID,
		Categories: CategoryList{
			{Name: "MILKSHAKE", Items: []string{"Mango", "Chocolate", "Strawberry", "Oreo", "KitKat"}},
			{Name: "ICECREAM", Items: []string{"Vanilla", "Butterscotch", "Pista"}},
			{Name: "SUPPLIES", Items: []string{"Cups", "Straws", "Lids"}},
		},
	}
}
