package order

import (
	"strconv"
	"strings"

	"github.com/dailycount/stockledger-service/internal/model"
)

// Render produces the human-readable order sheet. Categories appear strictly
// in catalog-declared order, items in catalog-declared order within each
// category, one "<item> - <quantity>" line per ordered item. Zero-quantity
// items are omitted; a category with nothing ordered is skipped entirely.
// satelliteName, when non-empty, is appended as a trailing section: the hub
// store's order sheet names the satellite outlet it also supplies.
func Render(storeName string, catalog *model.MasterCatalog, quantities model.QuantityMap, satelliteName string) string {
	var b strings.Builder
	b.WriteString("ORDER - ")
	b.WriteString(storeName)
	b.WriteString("\n")

	for _, cat := range catalog.Categories {
		var lines []string
		for _, item := range cat.Items {
			qty := quantities[model.ItemKey(cat.Name, item)]
			if qty <= 0 {
				continue
			}
			lines = append(lines, item+" - "+formatQty(qty))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(cat.Name)
		b.WriteString("\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if satelliteName != "" {
		b.WriteString("\n")
		b.WriteString("Also for: ")
		b.WriteString(satelliteName)
		b.WriteString("\n")
	}

	return b.String()
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
