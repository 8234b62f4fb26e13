package provider

import (
	"context"
	"time"

	"EquityLens/internal/model"
)

// PriceProvider fetches historical daily bars for a ticker.
type PriceProvider interface {
	// PriceHistory returns up to years of daily bars ending at end
	// (zero time means now), sorted ascending by date.
	PriceHistory(ctx context.Context, ticker string, years int, end time.Time) (*model.PriceSeries, error)
	Name() string
}

// FundamentalsProvider fetches financial statements data for a ticker.
type FundamentalsProvider interface {
	// FinancialMetrics returns up to limit annual metric snapshots,
	// most recent first.
	FinancialMetrics(ctx context.Context, ticker string, limit int) ([]model.FinancialMetrics, error)
	// LineItems returns up to limit annual statement line items,
	// most recent first.
	LineItems(ctx context.Context, ticker string, limit int) ([]model.LineItems, error)
	// MarketCap returns the current market capitalization.
	MarketCap(ctx context.Context, ticker string) (float64, error)
	Name() string
}
