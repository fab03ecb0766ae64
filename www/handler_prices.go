package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/pvpc-go/prices"
)

func NewTodayHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.TodayPrices(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, dtos)
	}
}

func NewTomorrowHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.TomorrowPrices(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, dtos)
	}
}

func NewHistoryHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := intOrDefault(r.URL, "days", 7)
		dtos, err := svc.History(r.Context(), days)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, dtos)
	}
}

func NewStatsHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := intOrDefault(r.URL, "days", 30)
		stats, err := svc.DailyStats(r.Context(), days)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, stats)
	}
}
