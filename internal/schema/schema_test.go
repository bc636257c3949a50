package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementFor(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range statements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table) {
			return stmt
		}
	}
	t.Fatalf("no CREATE TABLE statement for %s", table)
	return ""
}

// The snapshot key is the validated YYYY-MM-DD string and must come back
// from the database exactly as written. A DATE column would be scanned as
// time.Time and re-formatted on its way into the string field.
func TestSnapshotDateColumnRoundTripsAsText(t *testing.T) {
	stmt := statementFor(t, "stock_snapshots")
	assert.Contains(t, stmt, "stock_date  TEXT NOT NULL")
	assert.NotContains(t, stmt, "DATE")
	assert.Contains(t, stmt, "PRIMARY KEY (store_id, stock_date)")
}

func TestOrderRecordsKeyedByIdempotencyID(t *testing.T) {
	stmt := statementFor(t, "order_records")
	assert.Contains(t, stmt, "id                TEXT PRIMARY KEY")
}

func TestAllStatementsAreIdempotent(t *testing.T) {
	require.NotEmpty(t, statements)
	for _, stmt := range statements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}
