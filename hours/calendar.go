package hours

import (
	"fmt"
	"time"
)

// ParseDate parses a "2006-01-02" string into a UTC midnight time.
func ParseDate(str string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, str, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", str, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Midnight truncates a time to UTC midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of t's ISO week, at UTC midnight.
// time.Weekday follows the Sunday=0 convention, so the distance back
// to Monday is (weekday+6) mod 7.
func MondayOf(t time.Time) time.Time {
	t = Midnight(t)
	diff := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -diff)
}

// DaysInMonth returns the number of calendar days in the given month
// (1-12), leap years included.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
