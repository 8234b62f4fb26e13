package model

import (
	"fmt"
	"math"
	"time"
)

// PriceBar represents a single daily OHLCV observation.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds an ordered daily bar history for one ticker.
type PriceSeries struct {
	Ticker    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Validate checks the input contract: non-empty bars with strictly
// ascending dates. Violations are caller errors and are never repaired.
func (s *PriceSeries) Validate() error {
	if s == nil || len(s.Bars) == 0 {
		return fmt.Errorf("price series is empty")
	}
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("price series dates not strictly ascending at index %d (%s >= %s)",
				i, s.Bars[i-1].Date.Format("2006-01-02"), s.Bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Closes returns the close column.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// Round rounds v to the given number of decimal places. Used only when
// shaping report output; internal computation keeps full precision.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
