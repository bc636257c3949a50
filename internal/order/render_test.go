package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dailycount/stockledger-service/internal/model"
)

func testCatalog() *model.MasterCatalog {
	return &model.MasterCatalog{
		Categories: model.CategoryList{
			{Name: "MILKSHAKE", Items: []string{"Mango", "Chocolate", "Oreo"}},
			{Name: "ICECREAM", Items: []string{"Vanilla", "Pista"}},
			{Name: "SUPPLIES", Items: []string{"Cups", "Straws"}},
		},
	}
}

func TestRenderFollowsCatalogOrder(t *testing.T) {
	quantities := model.QuantityMap{
		"SUPPLIES-Cups":       100,
		"MILKSHAKE-Oreo":      5,
		"MILKSHAKE-Mango":     12,
		"MILKSHAKE-Chocolate": 0, // omitted
	}

	text := Render("FC Road", testCatalog(), quantities, "")

	assert.Equal(t, strings.Join([]string{
		"ORDER - FC Road",
		"",
		"MILKSHAKE",
		"Mango - 12",
		"Oreo - 5",
		"",
		"SUPPLIES",
		"Cups - 100",
		"",
	}, "\n"), text)
}

func TestRenderIsDeterministic(t *testing.T) {
	quantities := model.QuantityMap{
		"MILKSHAKE-Mango": 12,
		"ICECREAM-Pista":  3,
		"SUPPLIES-Straws": 50,
	}

	first := Render("FC Road", testCatalog(), quantities, "")
	second := Render("FC Road", testCatalog(), quantities, "")

	assert.Equal(t, first, second)
}

func TestRenderAppendsSatelliteSection(t *testing.T) {
	quantities := model.QuantityMap{"MILKSHAKE-Mango": 2}

	withSatellite := Render("FC Road", testCatalog(), quantities, "JM Road Kiosk")
	without := Render("FC Road", testCatalog(), quantities, "")

	assert.True(t, strings.HasSuffix(withSatellite, "Also for: JM Road Kiosk\n"))
	assert.NotContains(t, without, "Also for:")
}

func TestRenderFractionalQuantities(t *testing.T) {
	quantities := model.QuantityMap{"MILKSHAKE-Mango": 2.5}

	text := Render("FC Road", testCatalog(), quantities, "")

	assert.Contains(t, text, "Mango - 2.5")
}

func TestRenderSkipsEmptyCategories(t *testing.T) {
	quantities := model.QuantityMap{"ICECREAM-Vanilla": 4}

	text := Render("FC Road", testCatalog(), quantities, "")

	assert.NotContains(t, text, "MILKSHAKE")
	assert.NotContains(t, text, "SUPPLIES")
	assert.Contains(t, text, "ICECREAM")
}
