package prices

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/angas/pvpc-go/cache"
	"github.com/angas/pvpc-go/database"
	"github.com/angas/pvpc-go/hours"
	"github.com/angas/pvpc-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store Store, now time.Time) *Service {
	t.Helper()
	c := cache.New()
	t.Cleanup(c.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, store, c, func() time.Time { return now })
}

func testClock(str string) time.Time {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSavePricesInvalidatesCache(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("SavePrices", mock.Anything, mock.Anything, now).Return(2)

	s := newTestService(t, store, now)
	s.cache.Set(cache.KeyTodayPrices, []PriceDto{}, time.Hour)
	s.cache.Set(cache.KeyTomorrowPrices, []PriceDto{}, time.Hour)
	s.cache.Set(cache.KeyDashboardStats, DashboardStatsDto{}, time.Hour)

	saved := s.SavePrices(context.Background(), []types.Price{
		{When: hours.DateHour{Date: "2023-11-24", Hour: 0}, Price: 0.14},
		{When: hours.DateHour{Date: "2023-11-24", Hour: 1}, Price: 0.13},
	})

	assert.Equal(t, 2, saved)
	for _, key := range []string{cache.KeyTodayPrices, cache.KeyTomorrowPrices, cache.KeyDashboardStats} {
		_, ok := s.cache.Get(key)
		assert.False(t, ok, "expected %s to be invalidated", key)
	}
	store.AssertExpectations(t)
}

func TestSavePricesEmptyBatchKeepsCache(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("SavePrices", mock.Anything, mock.Anything, now).Return(0)

	s := newTestService(t, store, now)
	s.cache.Set(cache.KeyDashboardStats, DashboardStatsDto{}, time.Hour)

	saved := s.SavePrices(context.Background(), nil)

	assert.Equal(t, 0, saved)
	_, ok := s.cache.Get(cache.KeyDashboardStats)
	assert.True(t, ok, "a batch that saved nothing must not invalidate the cache")
}

func TestTodayPricesUsesCache(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("GetPricesForDate", mock.Anything, "2023-11-24").Return([]database.PriceRow{
		{When: hours.DateHour{Date: "2023-11-24", Hour: 0}, Price: 0.14},
	}, nil).Once()

	s := newTestService(t, store, now)

	first, err := s.TodayPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "2023-11-24", first[0].Date)
	assert.False(t, first[0].IsFallback)

	// Second call must come from the cache; the mock only allows one
	// store hit.
	second, err := s.TodayPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertExpectations(t)
}

func TestTomorrowPricesCachesOnlyNonEmpty(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("GetPricesForDate", mock.Anything, "2023-11-25").Return([]database.PriceRow(nil), nil).Twice()

	s := newTestService(t, store, now)

	dtos, err := s.TomorrowPrices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dtos)

	// An empty result must not be cached, so the store is hit again.
	_, err = s.TomorrowPrices(context.Background())
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestHistoryWindow(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("GetPricesSince", mock.Anything, "2023-11-17").Return([]database.PriceRow{
		{When: hours.DateHour{Date: "2023-11-23", Hour: 5}, Price: 0.11},
		{When: hours.DateHour{Date: "2023-11-22", Hour: 5}, Price: 0.12},
	}, nil)

	s := newTestService(t, store, now)
	dtos, err := s.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "2023-11-23", dtos[0].Date)
	store.AssertExpectations(t)
}

func TestDailyStats(t *testing.T) {
	now := testClock("2023-11-24T10:00:00Z")
	store := &mockStore{}
	store.On("GetDailyStats", mock.Anything, "2023-10-25").Return([]database.DayStatsRow{
		{Date: "2023-11-24", AvgPrice: 0.12, MinPrice: 0.08, MaxPrice: 0.25},
	}, nil)

	s := newTestService(t, store, now)
	stats, err := s.DailyStats(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 0.08, stats[0].MinPrice)
	assert.Equal(t, 0.25, stats[0].MaxPrice)
}
