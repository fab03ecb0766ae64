package prices

import (
	"context"
	"time"

	"github.com/angas/pvpc-go/database"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SavePrices(ctx context.Context, rows []database.PriceRow, writtenAt time.Time) int {
	args := m.Called(ctx, rows, writtenAt)
	return args.Int(0)
}

func (m *mockStore) GetPricesForDate(ctx context.Context, date string) ([]database.PriceRow, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]database.PriceRow), args.Error(1)
}

func (m *mockStore) GetPricesSince(ctx context.Context, fromDate string) ([]database.PriceRow, error) {
	args := m.Called(ctx, fromDate)
	return args.Get(0).([]database.PriceRow), args.Error(1)
}

func (m *mockStore) GetLatestPrices(ctx context.Context, limit int) ([]database.PriceRow, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]database.PriceRow), args.Error(1)
}

func (m *mockStore) GetMonthlyAverages(ctx context.Context, year int) ([]database.MonthAvgRow, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]database.MonthAvgRow), args.Error(1)
}

func (m *mockStore) GetWeeklyAverages(ctx context.Context, year int) ([]database.WeekAvgRow, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]database.WeekAvgRow), args.Error(1)
}

func (m *mockStore) GetDailyAverages(ctx context.Context, month, year int) ([]database.DayAvgRow, error) {
	args := m.Called(ctx, month, year)
	return args.Get(0).([]database.DayAvgRow), args.Error(1)
}

func (m *mockStore) GetDateAverages(ctx context.Context, from, to string) ([]database.DateAvgRow, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]database.DateAvgRow), args.Error(1)
}

func (m *mockStore) GetDailyStats(ctx context.Context, fromDate string) ([]database.DayStatsRow, error) {
	args := m.Called(ctx, fromDate)
	return args.Get(0).([]database.DayStatsRow), args.Error(1)
}
