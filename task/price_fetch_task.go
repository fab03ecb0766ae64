package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/pvpc-go/database"
	"github.com/angas/pvpc-go/hours"
	"github.com/angas/pvpc-go/prices"
	"github.com/angas/pvpc-go/types"
)

func NewPriceFetchTask(logger *slog.Logger, db *database.Database, svc *prices.Service, provider types.PriceProvider) func() {
	if needImmediatePriceUpdate(db) {
		logger.Info("need an immediate update of prices")
		runPriceFetchTask(logger, svc, provider)
	} else {
		logger.Debug("no need for immediate update of prices")
	}

	return func() { runPriceFetchTask(logger, svc, provider) }
}

func runPriceFetchTask(logger *slog.Logger, svc *prices.Service, provider types.PriceProvider) {
	logger.Debug("running price fetch task...")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	batch, err := provider.FetchPrices(ctx)
	if err != nil {
		logger.Error("error fetching prices", slog.Any("error", err))
		return
	}

	for _, rejected := range batch.Rejected {
		logger.Warn("rejected price row",
			slog.String("row", rejected.Raw),
			slog.String("reason", rejected.Reason))
	}

	saved := svc.SavePrices(ctx, batch.Accepted)

	logger.Info("price fetch task done",
		slog.Int("accepted", len(batch.Accepted)),
		slog.Int("rejected", len(batch.Rejected)),
		slog.Int("saved", saved))
}

// The task publishes once a day, so a fresh start only refetches when
// the store has no row for a few hours ahead.
func needImmediatePriceUpdate(db *database.Database) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dh := hours.FromNow().Add(1)
	if _, err := db.GetPriceForHour(ctx, dh); err != nil {
		return true
	}
	return false
}
