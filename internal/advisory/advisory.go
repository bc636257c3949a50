// Package advisory is the boundary to the holiday/weather collaborator. The
// ledger stores whatever the provider returns verbatim on the order record
// and never interprets it.
package advisory

import (
	"context"
	"time"

	"github.com/dailycount/stockledger-service/internal/model"
)

// Provider fetches the advisory annotations for a delivery date. A failed or
// missing advisory never blocks an order; callers fall back to an empty one.
type Provider interface {
	Fetch(ctx context.Context, deliveryDate time.Time) (model.Advisory, error)
}

// Noop is the provider used when no advisory collaborator is configured.
type Noop struct{}

func (Noop) Fetch(context.Context, time.Time) (model.Advisory, error) {
	return model.Advisory{Holidays: []model.HolidayInfo{}}, nil
}

// Static returns a fixed advisory. Handy in development and tests.
type Static struct {
	Advisory model.Advisory
}

func (s Static) Fetch(context.Context, time.Time) (model.Advisory, error) {
	return s.Advisory, nil
}
