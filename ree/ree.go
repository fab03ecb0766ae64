// Package ree fetches Spanish PVPC day-ahead prices from the REE
// tariff API and normalizes them to EUR/kWh price rows.
package ree

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angas/pvpc-go/convert"
	"github.com/angas/pvpc-go/hours"
	"github.com/angas/pvpc-go/types"
)

// FetchError means the remote endpoint was unreachable, returned a
// non-success status or shipped a payload that isn't PVPC shaped.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching prices from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Ree struct {
	url    string
	client *http.Client
}

func New(url string, timeout time.Duration) Ree {
	return Ree{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchPrices gets today's PVPC rows. Rows that fail to parse are
// collected as rejected with a reason instead of failing the batch, so
// a fetch can succeed with a partial set.
func (r Ree) FetchPrices(ctx context.Context) (types.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.url, nil)
	if err != nil {
		return types.Batch{}, &FetchError{URL: r.url, Err: err}
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return types.Batch{}, &FetchError{URL: r.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Batch{}, &FetchError{URL: r.url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.Batch{}, &FetchError{URL: r.url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if raw.PVPC == nil {
		return types.Batch{}, &FetchError{URL: r.url, Err: fmt.Errorf("payload has no PVPC entries")}
	}

	return transform(raw.PVPC), nil
}

func transform(entries []rawEntry) types.Batch {
	var batch types.Batch
	for _, entry := range entries {
		price, err := parseEntry(entry)
		if err != nil {
			batch.Rejected = append(batch.Rejected, types.RejectedRow{
				Raw:    fmt.Sprintf("%s %s %s", entry.Dia, entry.Hora, entry.PCB),
				Reason: err.Error(),
			})
			continue
		}
		batch.Accepted = append(batch.Accepted, price)
	}
	return batch
}

func parseEntry(entry rawEntry) (types.Price, error) {
	date, err := time.ParseInLocation("02/01/2006", entry.Dia, time.UTC)
	if err != nil {
		return types.Price{}, fmt.Errorf("unparseable date %q", entry.Dia)
	}

	hourStr, _, _ := strings.Cut(entry.Hora, "-")
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return types.Price{}, fmt.Errorf("unparseable hour %q", entry.Hora)
	}

	mwhPrice, err := convert.ParseCommaFloat(entry.PCB)
	if err != nil {
		return types.Price{}, fmt.Errorf("unparseable price %q", entry.PCB)
	}

	return types.Price{
		When: hours.DateHour{
			Date: hours.FormatDate(date),
			Hour: uint8(hour),
		},
		// EUR/MWh to EUR/kWh
		Price: convert.RoundFloat64(mwhPrice/1000, 5),
	}, nil
}
