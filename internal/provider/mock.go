package provider

import (
	"context"
	"fmt"
	"time"

	"EquityLens/internal/model"
)

// Mock returns controllable fixed data for development and testing.
type Mock struct {
	Price     float64
	Series    *model.PriceSeries
	Metrics   []model.FinancialMetrics
	Items     []model.LineItems
	Cap       float64
	FailPrice bool
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) PriceHistory(_ context.Context, ticker string, years int, end time.Time) (*model.PriceSeries, error) {
	if m.FailPrice {
		return nil, fmt.Errorf("mock: price history unavailable for %s", ticker)
	}
	if m.Series != nil {
		return m.Series, nil
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	base := m.Price
	if base == 0 {
		base = 100
	}
	count := years * 252
	if count == 0 {
		count = 252
	}
	bars := make([]model.PriceBar, count)
	start := end.AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := base * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return &model.PriceSeries{Ticker: ticker, Bars: bars, FetchedAt: time.Now().UTC()}, nil
}

func (m *Mock) FinancialMetrics(_ context.Context, ticker string, limit int) ([]model.FinancialMetrics, error) {
	if len(m.Metrics) == 0 {
		return nil, fmt.Errorf("mock: no financial metrics for %s", ticker)
	}
	if limit > 0 && limit < len(m.Metrics) {
		return m.Metrics[:limit], nil
	}
	return m.Metrics, nil
}

func (m *Mock) LineItems(_ context.Context, ticker string, limit int) ([]model.LineItems, error) {
	if len(m.Items) == 0 {
		return nil, fmt.Errorf("mock: no line items for %s", ticker)
	}
	if limit > 0 && limit < len(m.Items) {
		return m.Items[:limit], nil
	}
	return m.Items, nil
}

func (m *Mock) MarketCap(_ context.Context, ticker string) (float64, error) {
	if m.Cap <= 0 {
		return 0, fmt.Errorf("mock: no market cap for %s", ticker)
	}
	return m.Cap, nil
}
