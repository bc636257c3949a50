// Package sanitize holds the pure coercion and validation rules applied to
// raw user input before it enters the ledger. Out-of-range values are clamped
// with a warning, never rejected; only malformed keys are dropped.
package sanitize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/pkg/errs"
)

// DefaultMaxQuantity caps a single counted quantity. Anything above it is a
// fat-finger entry.
const DefaultMaxQuantity = 1_000_000

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// SnapshotResult carries the sanitized map plus non-fatal warnings. Warnings
// are aggregated for display and never block a save.
type SnapshotResult struct {
	Quantities map[string]float64
	Warnings   []string
}

// Snapshot coerces and bounds a raw quantity map. Rules, per entry:
// non-numeric values become 0 silently; negatives become 0 with a warning;
// values above maxQty are clamped with a warning; everything else is rounded
// to 2 decimal places. Keys without a "Category-Item" separator are reported
// and excluded. The function is idempotent: sanitizing its own output changes
// nothing.
func Snapshot(raw map[string]any, maxQty float64) SnapshotResult {
	if maxQty <= 0 {
		maxQty = DefaultMaxQuantity
	}

	result := SnapshotResult{Quantities: make(map[string]float64, len(raw))}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, _, ok := model.SplitItemKey(key); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignored malformed item key %q: expected \"Category-Item\"", key))
			continue
		}

		qty, numeric := toFloat(raw[key])
		switch {
		case !numeric:
			qty = 0
		case qty < 0:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("negative quantity for %q reset to 0", key))
			qty = 0
		case qty > maxQty:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("quantity for %q clamped to maximum %g", key, maxQty))
			qty = maxQty
		}

		result.Quantities[key] = round2(qty)
	}

	return result
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Credentials validates an identifier pair and returns every violation at
// once so the caller can display all of them.
func Credentials(username, password string) []error {
	var violations []error
	if len(username) < 3 || len(username) > 50 {
		violations = append(violations, errs.New(errs.KindValidation, "validate identifier", "username must be 3-50 characters"))
	}
	if username != "" && !usernameRe.MatchString(username) {
		violations = append(violations, errs.New(errs.KindValidation, "validate identifier", "username may only contain letters, digits, '.', '_' and '-'"))
	}
	if len(password) < 6 || len(password) > 128 {
		violations = append(violations, errs.New(errs.KindValidation, "validate identifier", "password must be 6-128 characters"))
	}
	return violations
}
