package ree

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angas/pvpc-go/hours"
)

const pvpcPayload = `{
	"PVPC": [
		{"Dia": "24/11/2023", "Hora": "00-01", "PCB": "142,53"},
		{"Dia": "24/11/2023", "Hora": "01-02", "PCB": "131,90"},
		{"Dia": "24/11/2023", "Hora": "02-03", "PCB": "125,00"}
	]
}`

func TestFetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pvpcPayload))
	}))
	defer srv.Close()

	r := New(srv.URL, time.Second)
	batch, err := r.FetchPrices(context.Background())
	if err != nil {
		t.Fatalf("FetchPrices() unexpected error: %v", err)
	}

	if len(batch.Accepted) != 3 {
		t.Fatalf("expected 3 accepted rows, got %d", len(batch.Accepted))
	}
	if len(batch.Rejected) != 0 {
		t.Fatalf("expected no rejected rows, got %d", len(batch.Rejected))
	}

	first := batch.Accepted[0]
	expectedHour := hours.DateHour{Date: "2023-11-24", Hour: 0}
	if first.When != expectedHour {
		t.Errorf("expected first row at %v, got %v", expectedHour, first.When)
	}
	// 142,53 EUR/MWh -> 0.14253 EUR/kWh
	if first.Price != 0.14253 {
		t.Errorf("expected price 0.14253, got %v", first.Price)
	}
}

func TestFetchPricesRejectsBadRows(t *testing.T) {
	payload := `{
		"PVPC": [
			{"Dia": "24/11/2023", "Hora": "00-01", "PCB": "142,53"},
			{"Dia": "not-a-date", "Hora": "01-02", "PCB": "131,90"},
			{"Dia": "24/11/2023", "Hora": "xx-yy", "PCB": "131,90"},
			{"Dia": "24/11/2023", "Hora": "25-26", "PCB": "131,90"},
			{"Dia": "24/11/2023", "Hora": "03-04", "PCB": "junk"}
		]
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	r := New(srv.URL, time.Second)
	batch, err := r.FetchPrices(context.Background())
	if err != nil {
		t.Fatalf("FetchPrices() unexpected error: %v", err)
	}

	if len(batch.Accepted) != 1 {
		t.Errorf("expected 1 accepted row, got %d", len(batch.Accepted))
	}
	if len(batch.Rejected) != 4 {
		t.Errorf("expected 4 rejected rows, got %d", len(batch.Rejected))
	}
	for _, rej := range batch.Rejected {
		if rej.Reason == "" {
			t.Errorf("rejected row %q has no reason", rej.Raw)
		}
	}
}

func TestFetchPricesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New(srv.URL, time.Second)
	_, err := r.FetchPrices(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected a *FetchError, got %v", err)
	}
}

func TestFetchPricesBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "missing PVPC key", body: `{"other": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			r := New(srv.URL, time.Second)
			var fetchErr *FetchError
			if _, err := r.FetchPrices(context.Background()); !errors.As(err, &fetchErr) {
				t.Fatalf("expected a *FetchError, got %v", err)
			}
		})
	}
}

func TestFetchPricesUnreachable(t *testing.T) {
	r := New("http://127.0.0.1:0", time.Second)
	var fetchErr *FetchError
	if _, err := r.FetchPrices(context.Background()); !errors.As(err, &fetchErr) {
		t.Fatalf("expected a *FetchError, got %v", err)
	}
}
