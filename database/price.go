package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/pvpc-go/convert"
	"github.com/angas/pvpc-go/hours"
)

type PriceRow struct {
	When      hours.DateHour
	Price     float64
	Timestamp time.Time // when the row was last written, not when it was traded
}

type MonthAvgRow struct {
	Month    int
	AvgPrice float64
}

type WeekAvgRow struct {
	Week     int
	AvgPrice float64
}

type DayAvgRow struct {
	Day      int
	AvgPrice float64
}

type DateAvgRow struct {
	Date     string
	AvgPrice float64
}

type DayStatsRow struct {
	Date     string
	AvgPrice float64
	MinPrice float64
	MaxPrice float64
}

// SavePrices upserts one row per (date, hour). A row that fails to
// write is logged and skipped, the rest of the batch continues. Returns
// the number of rows actually written.
func (d *Database) SavePrices(ctx context.Context, rows []PriceRow, writtenAt time.Time) int {
	saved := 0
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO price (date, hour, price, timestamp) VALUES (?, ?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET price = excluded.price, timestamp = excluded.timestamp`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Price, 5),
			writtenAt.UTC().Format(time.RFC3339))
		if err != nil {
			d.logger.Error("saving price row",
				slog.String("hour", row.When.String()),
				slog.Any("error", err))
			continue
		}
		saved++
	}
	return saved
}

func (d *Database) GetPriceForHour(ctx context.Context, dh hours.DateHour) (PriceRow, error) {
	row := d.read.QueryRowContext(ctx, `SELECT
		date, hour, price, timestamp
		FROM price
		WHERE date = ? AND hour = ?`,
		dh.Date, dh.Hour)

	var p PriceRow
	var ts string
	if err := row.Scan(&p.When.Date, &p.When.Hour, &p.Price, &ts); err != nil {
		return PriceRow{}, err
	}
	p.Timestamp, _ = time.Parse(time.RFC3339, ts)

	return p, nil
}

func (d *Database) GetPricesForDate(ctx context.Context, date string) ([]PriceRow, error) {
	return d.queryPrices(ctx, `SELECT
		date, hour, price, timestamp
		FROM price
		WHERE date = ?
		ORDER BY hour ASC`, date)
}

// GetPricesSince returns all rows from the given date on, newest date
// first with hours ascending within each date.
func (d *Database) GetPricesSince(ctx context.Context, fromDate string) ([]PriceRow, error) {
	return d.queryPrices(ctx, `SELECT
		date, hour, price, timestamp
		FROM price
		WHERE date >= ?
		ORDER BY date DESC, hour ASC`, fromDate)
}

// GetLatestPrices returns up to limit rows from the most recent dates,
// used as fallback data when today has nothing stored.
func (d *Database) GetLatestPrices(ctx context.Context, limit int) ([]PriceRow, error) {
	return d.queryPrices(ctx, `SELECT
		date, hour, price, timestamp
		FROM price
		ORDER BY date DESC, hour ASC
		LIMIT ?`, limit)
}

func (d *Database) queryPrices(ctx context.Context, query string, args ...any) ([]PriceRow, error) {
	rows, err := d.read.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	defer rows.Close()

	var prices []PriceRow
	for rows.Next() {
		var p PriceRow
		var ts string
		if err := rows.Scan(&p.When.Date, &p.When.Hour, &p.Price, &ts); err != nil {
			return nil, fmt.Errorf("scanning price row: %w", err)
		}
		p.Timestamp, _ = time.Parse(time.RFC3339, ts)
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading price rows: %w", err)
	}

	return prices, nil
}

// GetMonthlyAverages groups the given calendar year by month. Months
// without rows are not present in the result.
func (d *Database) GetMonthlyAverages(ctx context.Context, year int) ([]MonthAvgRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		CAST(strftime('%m', date) AS INTEGER) AS month, AVG(price)
		FROM price
		WHERE date >= ? AND date < ?
		GROUP BY month
		ORDER BY month ASC`,
		fmt.Sprintf("%d-01-01", year),
		fmt.Sprintf("%d-01-01", year+1))
	if err != nil {
		return nil, fmt.Errorf("aggregating monthly averages: %w", err)
	}
	defer rows.Close()

	var avgs []MonthAvgRow
	for rows.Next() {
		var a MonthAvgRow
		if err := rows.Scan(&a.Month, &a.AvgPrice); err != nil {
			return nil, fmt.Errorf("scanning monthly average: %w", err)
		}
		avgs = append(avgs, a)
	}
	return avgs, rows.Err()
}

// GetWeeklyAverages groups the given calendar year by ISO week number
// (%V, weeks start Monday, week 1 holds the first Thursday). Weeks
// without rows are not present in the result.
func (d *Database) GetWeeklyAverages(ctx context.Context, year int) ([]WeekAvgRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		CAST(strftime('%V', date) AS INTEGER) AS week, AVG(price)
		FROM price
		WHERE date >= ? AND date < ?
		GROUP BY week
		ORDER BY week ASC`,
		fmt.Sprintf("%d-01-01", year),
		fmt.Sprintf("%d-01-01", year+1))
	if err != nil {
		return nil, fmt.Errorf("aggregating weekly averages: %w", err)
	}
	defer rows.Close()

	var avgs []WeekAvgRow
	for rows.Next() {
		var a WeekAvgRow
		if err := rows.Scan(&a.Week, &a.AvgPrice); err != nil {
			return nil, fmt.Errorf("scanning weekly average: %w", err)
		}
		avgs = append(avgs, a)
	}
	return avgs, rows.Err()
}

// GetDailyAverages groups one calendar month by day-of-month. Days
// without rows are not present in the result.
func (d *Database) GetDailyAverages(ctx context.Context, month, year int) ([]DayAvgRow, error) {
	from := fmt.Sprintf("%04d-%02d-01", year, month)
	toYear, toMonth := year, month+1
	if toMonth > 12 {
		toYear, toMonth = year+1, 1
	}
	to := fmt.Sprintf("%04d-%02d-01", toYear, toMonth)

	rows, err := d.read.QueryContext(ctx, `SELECT
		CAST(strftime('%d', date) AS INTEGER) AS day, AVG(price)
		FROM price
		WHERE date >= ? AND date < ?
		GROUP BY day
		ORDER BY day ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregating daily averages: %w", err)
	}
	defer rows.Close()

	var avgs []DayAvgRow
	for rows.Next() {
		var a DayAvgRow
		if err := rows.Scan(&a.Day, &a.AvgPrice); err != nil {
			return nil, fmt.Errorf("scanning daily average: %w", err)
		}
		avgs = append(avgs, a)
	}
	return avgs, rows.Err()
}

// GetDateAverages groups the half-open date range [from, to) by date.
func (d *Database) GetDateAverages(ctx context.Context, from, to string) ([]DateAvgRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, AVG(price)
		FROM price
		WHERE date >= ? AND date < ?
		GROUP BY date
		ORDER BY date ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregating date averages: %w", err)
	}
	defer rows.Close()

	var avgs []DateAvgRow
	for rows.Next() {
		var a DateAvgRow
		if err := rows.Scan(&a.Date, &a.AvgPrice); err != nil {
			return nil, fmt.Errorf("scanning date average: %w", err)
		}
		avgs = append(avgs, a)
	}
	return avgs, rows.Err()
}

// GetDailyStats returns per-date avg/min/max from the given date on,
// newest date first.
func (d *Database) GetDailyStats(ctx context.Context, fromDate string) ([]DayStatsRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, AVG(price), MIN(price), MAX(price)
		FROM price
		WHERE date >= ?
		GROUP BY date
		ORDER BY date DESC`, fromDate)
	if err != nil {
		return nil, fmt.Errorf("aggregating daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DayStatsRow
	for rows.Next() {
		var s DayStatsRow
		if err := rows.Scan(&s.Date, &s.AvgPrice, &s.MinPrice, &s.MaxPrice); err != nil {
			return nil, fmt.Errorf("scanning daily stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (d *Database) PurgePrices(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "price", retentionDays)
}
