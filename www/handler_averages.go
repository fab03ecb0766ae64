package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/pvpc-go/prices"
)

func NewMonthlyAveragesHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avgs, err := svc.MonthlyAverages(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, avgs)
	}
}

func NewWeeklyAveragesHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avgs, err := svc.WeeklyAverages(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, avgs)
	}
}

func NewDailyAveragesHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := svc.Now().UTC()
		month := intOrDefault(r.URL, "month", int(now.Month()))
		year := intOrDefault(r.URL, "year", now.Year())

		if month < 1 || month > 12 {
			http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
			return
		}

		avgs, err := svc.DailyAverages(r.Context(), month, year)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, avgs)
	}
}

func NewWeeklyDailyAveragesHandler(logger *slog.Logger, svc *prices.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := svc.WeeklyDailyAverages(r.Context(), r.URL.Query().Get("date"))
		if err != nil {
			writeError(logger, w, err)
			return
		}
		writeJSON(logger, w, week)
	}
}
