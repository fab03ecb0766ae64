package types

import (
	"context"

	"github.com/angas/pvpc-go/hours"
)

type Price struct {
	When  hours.DateHour
	Price float64 // EUR per kWh
}

// RejectedRow is a source row that could not be turned into a Price.
// The raw payload is kept verbatim so rejects can be diagnosed later.
type RejectedRow struct {
	Raw    string
	Reason string
}

// Batch is the outcome of one provider fetch. A fetch can succeed with
// a partial set; rejected rows never fail the batch.
type Batch struct {
	Accepted []Price
	Rejected []RejectedRow
}

type PriceProvider interface {
	FetchPrices(ctx context.Context) (Batch, error)
}
