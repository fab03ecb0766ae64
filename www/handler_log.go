package www

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/pvpc-go/database"
)

// LogReader pages through the sqlite-persisted log table.
type LogReader interface {
	GetLogEntries(ctx context.Context, minLvl slog.Level, page, pageSize int) ([]database.LogEntryRow, error)
}

type logEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Attrs     string    `json:"attrs,omitempty"`
}

func NewLogHandler(logger *slog.Logger, logs LogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "pageSize", 25)
		minLvl := slog.Level(intOrDefault(r.URL, "level", int(slog.LevelInfo)))

		rows, err := logs.GetLogEntries(r.Context(), minLvl, page, pageSize)
		if err != nil {
			writeError(logger, w, err)
			return
		}

		entries := make([]logEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, logEntry{
				Timestamp: row.Timestamp,
				Level:     slog.Level(row.Level).String(),
				Message:   row.Message,
				Attrs:     row.Attrs,
			})
		}

		writeJSON(logger, w, entries)
	}
}
