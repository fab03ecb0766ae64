package prices

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/angas/pvpc-go/cache"
)

const fallbackLimit = 24

// DashboardStats summarizes the day: the price right now and the
// cheapest and most expensive hour. When today has no rows yet, the
// most recently stored rows stand in and the result is flagged as
// fallback data. An entirely empty store yields ErrNoData.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStatsDto, error) {
	if cached, ok := s.cache.Get(cache.KeyDashboardStats); ok {
		if stats, ok := cached.(DashboardStatsDto); ok {
			return stats, nil
		}
	}

	day, err := s.TodayPrices(ctx)
	if err != nil {
		return DashboardStatsDto{}, err
	}

	fallback := false
	if len(day) == 0 {
		s.logger.Warn("no prices for today, falling back to latest stored rows")

		rows, err := s.store.GetLatestPrices(ctx, fallbackLimit)
		if err != nil {
			return DashboardStatsDto{}, err
		}
		if len(rows) == 0 {
			return DashboardStatsDto{}, ErrNoData
		}

		day = toPriceDtos(rows, true)
		fallback = true
		s.logger.Info("using fallback data",
			slog.String("date", day[0].Date),
			slog.Int("rows", len(day)))
	}

	// Best effort: when the current hour is absent the first row of
	// the set stands in.
	current := day[0]
	currentHour := s.now().UTC().Hour()
	for _, p := range day {
		if p.Hour == currentHour {
			current = p
			break
		}
	}

	// Linear scan, first occurrence wins on ties.
	minP, maxP := day[0], day[0]
	for _, p := range day {
		if p.Price < minP.Price {
			minP = p
		}
		if p.Price > maxP.Price {
			maxP = p
		}
	}

	stats := DashboardStatsDto{
		CurrentPrice: current.Price,
		MinPrice:     minP.Price,
		MinPriceHour: minP.Hour,
		MaxPrice:     maxP.Price,
		MaxPriceHour: maxP.Hour,
		IsFallback:   fallback,
		LastUpdated:  s.now().UTC(),
	}

	s.cache.Set(cache.KeyDashboardStats, stats, dashboardTTL)

	return stats, nil
}

// Recommendations derives usage advice from today's prices. The three
// conditions are evaluated independently; an empty day yields an empty
// list plus an explanatory tip, not an error.
func (s *Service) Recommendations(ctx context.Context) (RecommendationsDto, error) {
	day, err := s.TodayPrices(ctx)
	if err != nil {
		return RecommendationsDto{}, err
	}

	if len(day) == 0 {
		return RecommendationsDto{
			Recommendations: []RecommendationDto{},
			DailyTip:        "No price data is available yet, check back after today's prices have been published.",
		}, nil
	}

	sum := 0.0
	cheapest, expensive := day[0], day[0]
	for _, p := range day {
		sum += p.Price
		if p.Price < cheapest.Price {
			cheapest = p
		}
		if p.Price > expensive.Price {
			expensive = p
		}
	}
	avg := sum / float64(len(day))

	currentHour := s.now().UTC().Hour()
	currentPrice := avg // neutral when the current hour is absent
	for _, p := range day {
		if p.Hour == currentHour {
			currentPrice = p.Price
			break
		}
	}

	recommendations := []RecommendationDto{}

	if currentPrice <= avg*0.8 {
		recommendations = append(recommendations, RecommendationDto{
			Type:              "ideal",
			Title:             "Ideal moment",
			Description:       "Run high-consumption appliances now",
			TimeRange:         "Next 2 hours",
			SavingsPercentage: roundPct((avg - currentPrice) / avg),
		})
	}

	if currentPrice >= avg*1.2 {
		recommendations = append(recommendations, RecommendationDto{
			Type:              "avoid",
			Title:             "Avoid right now",
			Description:       "Hold off on high-consumption appliances",
			TimeRange:         fmt.Sprintf("Until %02d:00", (currentHour+2)%24),
			SavingsPercentage: roundPct((currentPrice - avg) / avg),
		})
	}

	if cheapest.Hour > currentHour {
		recommendations = append(recommendations, RecommendationDto{
			Type:              "schedule",
			Title:             "Schedule for later",
			Description:       fmt.Sprintf("Schedule appliances for %02d:00", cheapest.Hour),
			TimeRange:         fmt.Sprintf("At %02d:00", cheapest.Hour),
			SavingsPercentage: roundPct((avg - cheapest.Price) / avg),
		})
	}

	tip := fmt.Sprintf(
		"Today's cheapest hour is %02d:00 and the most expensive %02d:00. Save up to %d%% by picking the right moment.",
		cheapest.Hour,
		expensive.Hour,
		roundPct((expensive.Price-cheapest.Price)/expensive.Price))

	return RecommendationsDto{
		Recommendations: recommendations,
		DailyTip:        tip,
	}, nil
}

func roundPct(frac float64) int {
	return int(math.Round(frac * 100))
}
