package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/pvpc-go/prices"
)

func NewDashboardStatsHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.DashboardStats(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, stats)
	}
}

func NewRecommendationsHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.Recommendations(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, recs)
	}
}
