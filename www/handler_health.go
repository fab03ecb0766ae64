package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/pvpc-go/hours"
	"github.com/angas/pvpc-go/prices"
)

type healthDay struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	HasData bool   `json:"hasData"`
}

type healthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	CronSchedule string    `json:"cronSchedule"`
	Today        healthDay `json:"today"`
	Yesterday    healthDay `json:"yesterday"`
}

func NewHealthHandler(logger *slog.Logger, svc *prices.Service, cronSchedule string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := svc.Now().UTC()
		today := hours.FormatDate(now)
		yesterday := hours.FormatDate(now.AddDate(0, 0, -1))

		todayPrices, err := svc.TodayPrices(r.Context())
		if err != nil {
			writeError(logger, w, err)
			return
		}

		recent, err := svc.History(r.Context(), 2)
		if err != nil {
			writeError(logger, w, err)
			return
		}
		yesterdayCount := 0
		for _, p := range recent {
			if p.Date == yesterday {
				yesterdayCount++
			}
		}

		writeJSON(logger, w, healthResponse{
			Status:       "healthy",
			Timestamp:    now,
			CronSchedule: cronSchedule,
			Today: healthDay{
				Date:    today,
				Count:   len(todayPrices),
				HasData: len(todayPrices) > 0,
			},
			Yesterday: healthDay{
				Date:    yesterday,
				Count:   yesterdayCount,
				HasData: yesterdayCount > 0,
			},
		})
	}
}
