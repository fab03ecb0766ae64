package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/pvpc-go/prices"
	"github.com/angas/pvpc-go/types"
)

type fetchResponse struct {
	Message  string `json:"message"`
	Saved    int    `json:"saved"`
	Rejected int    `json:"rejected"`
}

// NewFetchHandler triggers a fetch-and-save outside the daily cron
// schedule.
func NewFetchHandler(logger *slog.Logger, svc *prices.Service, provider types.PriceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch, err := provider.FetchPrices(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}

		saved := svc.SavePrices(r.Context(), batch.Accepted)

		writeJSON(logger, w, fetchResponse{
			Message:  "prices updated",
			Saved:    saved,
			Rejected: len(batch.Rejected),
		})
	}
}
