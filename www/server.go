package www

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/pvpc-go/config"
	"github.com/angas/pvpc-go/prices"
	"github.com/angas/pvpc-go/types"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfig
	svc    *prices.Service
	hub    *Hub
	mux    *http.ServeMux
}

func StartServer(svc *prices.Service, provider types.PriceProvider, logs LogReader, cnfg *config.AppConfig) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: *cnfg,
		svc:    svc,
		hub:    NewHub(logger),
		mux:    http.NewServeMux(),
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	handle := func(pattern string, h http.Handler) {
		s.mux.Handle(pattern, logReqMW(h))
	}

	handle("GET /api/prices/today", NewTodayHandler(
		logger.With(slog.String("handler", "today")), svc))

	handle("GET /api/prices/tomorrow", NewTomorrowHandler(
		logger.With(slog.String("handler", "tomorrow")), svc))

	handle("GET /api/prices/history", NewHistoryHandler(
		logger.With(slog.String("handler", "history")), svc))

	handle("GET /api/prices/stats", NewStatsHandler(
		logger.With(slog.String("handler", "stats")), svc))

	handle("GET /api/prices/monthly-averages", NewMonthlyAveragesHandler(
		logger.With(slog.String("handler", "monthly_averages")), svc))

	handle("GET /api/prices/weekly-averages", NewWeeklyAveragesHandler(
		logger.With(slog.String("handler", "weekly_averages")), svc))

	handle("GET /api/prices/daily-averages", NewDailyAveragesHandler(
		logger.With(slog.String("handler", "daily_averages")), svc))

	handle("GET /api/prices/weekly-daily-averages", NewWeeklyDailyAveragesHandler(
		logger.With(slog.String("handler", "weekly_daily_averages")), svc))

	handle("GET /api/prices/dashboard-stats", NewDashboardStatsHandler(
		logger.With(slog.String("handler", "dashboard_stats")), svc))

	handle("GET /api/prices/recommendations", NewRecommendationsHandler(
		logger.With(slog.String("handler", "recommendations")), svc))

	handle("POST /api/prices/fetch", NewFetchHandler(
		logger.With(slog.String("handler", "fetch")), svc, provider))

	handle("GET /api/prices/health", NewHealthHandler(
		logger.With(slog.String("handler", "health")), svc, cnfg.Ree.RunAt))

	handle("GET /api/log", NewLogHandler(
		logger.With(slog.String("handler", "log")), logs))

	s.mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Api.Port)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Api.Address, s.config.Api.Port),
		Handler: s.mux,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 30)
	defer ticker.Stop()

	// Keeping state to avoid spamming logs
	dashboardErrorState := false

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			stats, err := s.svc.DashboardStats(ctx)
			if err != nil {
				if !dashboardErrorState {
					dashboardErrorState = true
					if errors.Is(err, prices.ErrNoData) {
						s.logger.Warn("no dashboard stats to push yet")
					} else {
						s.logger.Error("dashboard stats for push failed", slog.Any("error", err))
					}
				}
				continue
			}
			dashboardErrorState = false

			payload, err := marshalJSON(stats)
			if err != nil {
				s.logger.Error("encoding dashboard push failed", slog.Any("error", err))
				continue
			}
			s.hub.Broadcast <- payload
		}
	}
}
