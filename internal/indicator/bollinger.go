package indicator

import (
	"fmt"
	"math"

	"EquityLens/internal/model"
)

// Bollinger signals mean-reversion entries: buy the first close strictly
// below the lower band, exit the first close above the upper band or at
// or above the rolling mean. The early exit on mean reversion is the
// intended capture rule, not an oversight.
type Bollinger struct {
	Period int
	NumStd float64
}

func NewBollinger(period int, numStd float64) *Bollinger {
	return &Bollinger{Period: period, NumStd: numStd}
}

func (b *Bollinger) Key() string  { return "bollinger" }
func (b *Bollinger) Name() string { return "Bollinger Bands" }

// bands returns mid, upper, lower; all NaN during warm-up.
func (b *Bollinger) bands(closes []float64) (mid, upper, lower []float64) {
	mid = rollingMean(closes, b.Period)
	std := rollingStd(closes, b.Period)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		upper[i] = mid[i] + b.NumStd*std[i]
		lower[i] = mid[i] - b.NumStd*std[i]
	}
	return mid, upper, lower
}

func (b *Bollinger) Series(bars []model.PriceBar) []model.Signal {
	closes := extractCloses(bars)
	mid, upper, lower := b.bands(closes)
	sig := make([]model.Signal, len(bars))

	// The in-position accumulator is scan-local fold state: it only
	// decides whether the entry or the exit threshold applies next.
	inPosition := false
	for i := 1; i < len(bars); i++ {
		if math.IsNaN(lower[i]) {
			continue
		}
		price := closes[i]
		switch {
		case !inPosition && price < lower[i]:
			sig[i] = model.EnterLong
			inPosition = true
		case inPosition && (price > upper[i] || price >= mid[i]):
			sig[i] = model.ExitLong
			inPosition = false
		}
	}
	return sig
}

func (b *Bollinger) Snapshot(bars []model.PriceBar) model.Snapshot {
	if len(bars) == 0 {
		return model.InsufficientData("Insufficient data")
	}
	closes := extractCloses(bars)
	mid, upper, lower := b.bands(closes)

	last := len(bars) - 1
	price := closes[last]
	if math.IsNaN(lower[last]) {
		return model.InsufficientData("Insufficient data")
	}
	width := (upper[last] - lower[last]) / mid[last]

	var signal model.Action
	var reason string
	switch {
	case price < lower[last]:
		signal = model.ActionBuy
		reason = fmt.Sprintf("Price $%.2f below lower band $%.2f", price, lower[last])
	case price > upper[last]:
		signal = model.ActionSell
		reason = fmt.Sprintf("Price $%.2f above upper band $%.2f", price, upper[last])
	case price > mid[last]:
		signal = model.ActionHold
		reason = fmt.Sprintf("Price above SMA, within bands (width: %.2f%%)", width*100)
	default:
		signal = model.ActionHold
		reason = fmt.Sprintf("Price below SMA, within bands (width: %.2f%%)", width*100)
	}

	return model.Snapshot{
		Signal: signal,
		Reason: reason,
		Values: map[string]float64{
			"price":        model.Round(price, 2),
			"upper_band":   model.Round(upper[last], 2),
			"lower_band":   model.Round(lower[last], 2),
			"sma":          model.Round(mid[last], 2),
			"band_width_%": model.Round(width*100, 2),
		},
	}
}

func extractCloses(bars []model.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
