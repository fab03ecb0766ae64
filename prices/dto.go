package prices

import "time"

type PriceDto struct {
	Date       string    `json:"date"`
	Hour       int       `json:"hour"`
	Price      float64   `json:"price"`
	IsFallback bool      `json:"isFallback"`
	Timestamp  time.Time `json:"timestamp"`
}

type MonthlyAverageDto struct {
	Month    int     `json:"month"`
	AvgPrice float64 `json:"avgPrice"`
}

type WeeklyAverageDto struct {
	Week     int     `json:"week"`
	AvgPrice float64 `json:"avgPrice"`
}

type DailyAverageDto struct {
	Day      int     `json:"day"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	AvgPrice float64 `json:"avgPrice"`
}

type WeeklyDayDto struct {
	Date       string  `json:"date"`
	Day        string  `json:"day"`
	AverageDay float64 `json:"averageDay"`
}

type DayStatsDto struct {
	Date     string  `json:"date"`
	AvgPrice float64 `json:"avgPrice"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

type DashboardStatsDto struct {
	CurrentPrice float64   `json:"currentPrice"`
	MinPrice     float64   `json:"minPrice"`
	MinPriceHour int       `json:"minPriceHour"`
	MaxPrice     float64   `json:"maxPrice"`
	MaxPriceHour int       `json:"maxPriceHour"`
	IsFallback   bool      `json:"isFallback"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

type RecommendationDto struct {
	Type              string `json:"type"` // "ideal", "avoid" or "schedule"
	Title             string `json:"title"`
	Description       string `json:"description"`
	TimeRange         string `json:"timeRange"`
	SavingsPercentage int    `json:"savingsPercentage,omitempty"`
}

type RecommendationsDto struct {
	Recommendations []RecommendationDto `json:"recommendations"`
	DailyTip        string              `json:"dailyTip"`
}
