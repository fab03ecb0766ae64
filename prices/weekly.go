package prices

import (
	"context"
	"fmt"

	"github.com/angas/pvpc-go/convert"
	"github.com/angas/pvpc-go/hours"
)

// Indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// WeeklyDailyAverages returns one entry per day of the ISO week that
// contains the reference date, Monday through Sunday. The full 7-day
// window is always emitted, days without data reporting an average of
// zero. An empty dateStr means the week of the current date.
func (s *Service) WeeklyDailyAverages(ctx context.Context, dateStr string) ([]WeeklyDayDto, error) {
	target := hours.Midnight(s.now())
	if dateStr != "" {
		parsed, err := hours.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
		}
		target = parsed
	}

	monday := hours.MondayOf(target)
	end := monday.AddDate(0, 0, 7)

	stats, err := s.store.GetDateAverages(ctx, hours.FormatDate(monday), hours.FormatDate(end))
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, len(stats))
	for _, stat := range stats {
		byDate[stat.Date] = stat.AvgPrice
	}

	week := make([]WeeklyDayDto, 0, 7)
	for iter := monday; iter.Before(end); iter = iter.AddDate(0, 0, 1) {
		date := hours.FormatDate(iter)
		avg := 0.0
		if v, ok := byDate[date]; ok {
			avg = convert.RoundFloat64(v, 6)
		}
		week = append(week, WeeklyDayDto{
			Date:       date,
			Day:        weekdayNames[iter.Weekday()],
			AverageDay: avg,
		})
	}

	return week, nil
}
