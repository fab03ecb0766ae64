package prices

import (
	"context"

	"github.com/angas/pvpc-go/hours"
)

// MonthlyAverages returns the per-month averages of the current
// calendar year, month-ascending. Months without data are absent, not
// zero-filled.
func (s *Service) MonthlyAverages(ctx context.Context) ([]MonthlyAverageDto, error) {
	rows, err := s.store.GetMonthlyAverages(ctx, s.now().UTC().Year())
	if err != nil {
		return nil, err
	}

	avgs := make([]MonthlyAverageDto, len(rows))
	for i, row := range rows {
		avgs[i] = MonthlyAverageDto{Month: row.Month, AvgPrice: row.AvgPrice}
	}
	return avgs, nil
}

// WeeklyAverages returns the per-ISO-week averages of the current
// calendar year, week-ascending. Weeks without data are absent.
func (s *Service) WeeklyAverages(ctx context.Context) ([]WeeklyAverageDto, error) {
	rows, err := s.store.GetWeeklyAverages(ctx, s.now().UTC().Year())
	if err != nil {
		return nil, err
	}

	avgs := make([]WeeklyAverageDto, len(rows))
	for i, row := range rows {
		avgs[i] = WeeklyAverageDto{Week: row.Week, AvgPrice: row.AvgPrice}
	}
	return avgs, nil
}

// DailyAverages returns one entry per calendar day of the given month
// (1-indexed), day-ascending. Days without data report an average of
// zero, so the series is always total over the month.
func (s *Service) DailyAverages(ctx context.Context, month, year int) ([]DailyAverageDto, error) {
	rows, err := s.store.GetDailyAverages(ctx, month, year)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]float64, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row.AvgPrice
	}

	days := hours.DaysInMonth(month, year)
	avgs := make([]DailyAverageDto, 0, days)
	for day := 1; day <= days; day++ {
		avgs = append(avgs, DailyAverageDto{
			Day:      day,
			Month:    month,
			Year:     year,
			AvgPrice: byDay[day],
		})
	}
	return avgs, nil
}
