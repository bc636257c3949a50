package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailycount/stockledger-service/pkg/errs"
)

func TestSnapshotCoercion(t *testing.T) {
	raw := map[string]any{
		"MILKSHAKE-Mango":     5.126,
		"MILKSHAKE-Chocolate": "12",
		"ICECREAM-Vanilla":    "not a number",
		"SUPPLIES-Cups":       -4,
		"SUPPLIES-Straws":     2_000_000.0,
		"noseparator":         3,
		"-Orphan":             1,
	}

	res := Snapshot(raw, DefaultMaxQuantity)

	assert.Equal(t, map[string]float64{
		"MILKSHAKE-Mango":     5.13,
		"MILKSHAKE-Chocolate": 12,
		"ICECREAM-Vanilla":    0,
		"SUPPLIES-Cups":       0,
		"SUPPLIES-Straws":     1_000_000,
	}, res.Quantities)

	// Malformed keys, negatives and clamps warn; non-numeric coercion is silent.
	require.Len(t, res.Warnings, 4)
	assert.Contains(t, res.Warnings[0], "-Orphan")
	assert.Contains(t, res.Warnings[1], "SUPPLIES-Cups")
	assert.Contains(t, res.Warnings[2], "SUPPLIES-Straws")
	assert.Contains(t, res.Warnings[3], "noseparator")
}

func TestSnapshotIdempotence(t *testing.T) {
	raw := map[string]any{
		"MILKSHAKE-Mango": 7.999,
		"SUPPLIES-Cups":   -3,
		"bogus":           10,
	}

	first := Snapshot(raw, DefaultMaxQuantity)

	again := make(map[string]any, len(first.Quantities))
	for k, v := range first.Quantities {
		again[k] = v
	}
	second := Snapshot(again, DefaultMaxQuantity)

	assert.Equal(t, first.Quantities, second.Quantities)
	assert.Empty(t, second.Warnings)
}

func TestSnapshotBounds(t *testing.T) {
	raw := map[string]any{
		"A-a": -0.001,
		"A-b": 0.004,
		"A-c": 999.999,
		"A-d": 1_000_000.01,
	}

	res := Snapshot(raw, DefaultMaxQuantity)

	for key, qty := range res.Quantities {
		assert.GreaterOrEqual(t, qty, 0.0, key)
		assert.LessOrEqual(t, qty, float64(DefaultMaxQuantity), key)
	}
	assert.Equal(t, 1000.0, res.Quantities["A-c"])
}

func TestSnapshotEmptyInput(t *testing.T) {
	res := Snapshot(nil, DefaultMaxQuantity)
	assert.Empty(t, res.Quantities)
	assert.Empty(t, res.Warnings)
}

func TestCredentials(t *testing.T) {
	cases := []struct {
		name       string
		username   string
		password   string
		violations int
	}{
		{"valid", "ravi.k_03", "secret99", 0},
		{"short username", "ab", "secret99", 1},
		{"bad charset", "ravi kumar", "secret99", 1},
		{"short password", "ravi", "12345", 1},
		{"everything wrong", "a!", "123", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Credentials(tc.username, tc.password)
			assert.Len(t, got, tc.violations)
			for _, err := range got {
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			}
		})
	}
}
