// Package prices holds the derivation logic that turns stored
// (date, hour, price) rows into the averages, dashboard stats and
// usage recommendations the API serves.
package prices

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/angas/pvpc-go/cache"
	"github.com/angas/pvpc-go/database"
	"github.com/angas/pvpc-go/hours"
	"github.com/angas/pvpc-go/types"
)

var (
	// ErrNoData means the store holds no price rows at all.
	ErrNoData = errors.New("no price data available")
	// ErrInvalidDate means a caller-supplied date string didn't parse.
	ErrInvalidDate = errors.New("invalid date format")
)

const (
	todayTTL     = 6 * time.Hour
	tomorrowTTL  = 12 * time.Hour
	dashboardTTL = time.Hour
)

// Store is the slice of the database the service reads and writes.
type Store interface {
	SavePrices(ctx context.Context, rows []database.PriceRow, writtenAt time.Time) int
	GetPricesForDate(ctx context.Context, date string) ([]database.PriceRow, error)
	GetPricesSince(ctx context.Context, fromDate string) ([]database.PriceRow, error)
	GetLatestPrices(ctx context.Context, limit int) ([]database.PriceRow, error)
	GetMonthlyAverages(ctx context.Context, year int) ([]database.MonthAvgRow, error)
	GetWeeklyAverages(ctx context.Context, year int) ([]database.WeekAvgRow, error)
	GetDailyAverages(ctx context.Context, month, year int) ([]database.DayAvgRow, error)
	GetDateAverages(ctx context.Context, from, to string) ([]database.DateAvgRow, error)
	GetDailyStats(ctx context.Context, fromDate string) ([]database.DayStatsRow, error)
}

// Cache fronts the derived endpoints. A miss falls through to the live
// computation, never to an error.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(keys ...string)
}

type Service struct {
	logger *slog.Logger
	store  Store
	cache  Cache
	now    func() time.Time
}

// New wires a service. The clock is injected so every date-window
// computation is deterministic under test; pass nil for time.Now.
func New(logger *slog.Logger, store Store, c Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		logger: logger,
		store:  store,
		cache:  c,
		now:    now,
	}
}

// Now reports the service clock. Callers deriving dates or window
// defaults read it instead of the wall clock so there is one time
// source.
func (s *Service) Now() time.Time {
	return s.now()
}

// SavePrices upserts a fetched batch and returns how many rows were
// written. Any successful write invalidates the derived caches before
// returning.
func (s *Service) SavePrices(ctx context.Context, batch []types.Price) int {
	rows := make([]database.PriceRow, len(batch))
	for i, p := range batch {
		rows[i] = database.PriceRow{When: p.When, Price: p.Price}
	}

	saved := s.store.SavePrices(ctx, rows, s.now())
	if saved > 0 {
		s.cache.Delete(cache.KeyTodayPrices, cache.KeyTomorrowPrices, cache.KeyDashboardStats)
	}

	s.logger.Info("prices saved",
		slog.Int("received", len(batch)),
		slog.Int("saved", saved))

	return saved
}

// TodayPrices returns today's rows hour-ascending, cached for 6 hours.
func (s *Service) TodayPrices(ctx context.Context) ([]PriceDto, error) {
	if cached, ok := s.cache.Get(cache.KeyTodayPrices); ok {
		if dtos, ok := cached.([]PriceDto); ok {
			return dtos, nil
		}
	}

	today := hours.FromTime(s.now()).Date
	rows, err := s.store.GetPricesForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	dtos := toPriceDtos(rows, false)
	s.cache.Set(cache.KeyTodayPrices, dtos, todayTTL)

	return dtos, nil
}

// TomorrowPrices returns tomorrow's rows. They are published around
// 20:30, so the result is only cached once non-empty.
func (s *Service) TomorrowPrices(ctx context.Context) ([]PriceDto, error) {
	if cached, ok := s.cache.Get(cache.KeyTomorrowPrices); ok {
		if dtos, ok := cached.([]PriceDto); ok {
			return dtos, nil
		}
	}

	tomorrow := hours.FormatDate(s.now().AddDate(0, 0, 1))
	rows, err := s.store.GetPricesForDate(ctx, tomorrow)
	if err != nil {
		return nil, err
	}

	dtos := toPriceDtos(rows, false)
	if len(dtos) > 0 {
		s.cache.Set(cache.KeyTomorrowPrices, dtos, tomorrowTTL)
	} else {
		s.logger.Warn("no prices for tomorrow yet, they are usually published around 20:30")
	}

	return dtos, nil
}

// History returns all rows from the last days, newest date first with
// hours ascending within each date.
func (s *Service) History(ctx context.Context, days int) ([]PriceDto, error) {
	from := hours.FormatDate(s.now().AddDate(0, 0, -days))
	rows, err := s.store.GetPricesSince(ctx, from)
	if err != nil {
		return nil, err
	}
	return toPriceDtos(rows, false), nil
}

// DailyStats returns per-day avg/min/max over the last days, newest
// date first.
func (s *Service) DailyStats(ctx context.Context, days int) ([]DayStatsDto, error) {
	from := hours.FormatDate(s.now().AddDate(0, 0, -days))
	rows, err := s.store.GetDailyStats(ctx, from)
	if err != nil {
		return nil, err
	}

	stats := make([]DayStatsDto, len(rows))
	for i, row := range rows {
		stats[i] = DayStatsDto{
			Date:     row.Date,
			AvgPrice: row.AvgPrice,
			MinPrice: row.MinPrice,
			MaxPrice: row.MaxPrice,
		}
	}
	return stats, nil
}

func toPriceDtos(rows []database.PriceRow, fallback bool) []PriceDto {
	dtos := make([]PriceDto, len(rows))
	for i, row := range rows {
		dtos[i] = PriceDto{
			Date:       row.When.Date,
			Hour:       int(row.When.Hour),
			Price:      row.Price,
			IsFallback: fallback,
			Timestamp:  row.Timestamp,
		}
	}
	return dtos
}
