package indicator

import (
	"fmt"
	"math"

	"EquityLens/internal/model"
)

// RSI signals threshold crossings of the Wilder-smoothed relative
// strength index: entry when RSI recovers up through the oversold line,
// exit when it falls back through the overbought line.
type RSI struct {
	Period     int
	Oversold   float64
	Overbought float64
}

func NewRSI(period int, oversold, overbought float64) *RSI {
	return &RSI{Period: period, Oversold: oversold, Overbought: overbought}
}

func (r *RSI) Key() string  { return "rsi" }
func (r *RSI) Name() string { return fmt.Sprintf("RSI %d", r.Period) }

// Compute returns one RSI value per bar; NaN until the smoothing has
// absorbed a full period of changes, and NaN whenever the average loss
// is zero (the gain/loss ratio is undefined, not an error).
func (r *RSI) Compute(closes []float64) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := wilderMean(gains, 1, r.Period)
	avgLoss := wilderMean(losses, 1, r.Period)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) || avgLoss[i] == 0 {
			out[i] = nan
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

func (r *RSI) Series(bars []model.PriceBar) []model.Signal {
	rsi := r.Compute(extractCloses(bars))
	sig := make([]model.Signal, len(bars))
	// NaN comparisons are false, so the warm-up emits nothing and the
	// first defined value cannot cross against an undefined one.
	for i := 1; i < len(rsi); i++ {
		switch {
		case rsi[i] > r.Oversold && rsi[i-1] <= r.Oversold:
			sig[i] = model.EnterLong
		case rsi[i] < r.Overbought && rsi[i-1] >= r.Overbought:
			sig[i] = model.ExitLong
		}
	}
	return sig
}

func (r *RSI) Snapshot(bars []model.PriceBar) model.Snapshot {
	if len(bars) == 0 {
		return model.InsufficientData("Insufficient data")
	}
	rsi := r.Compute(extractCloses(bars))
	val := rsi[len(rsi)-1]
	if math.IsNaN(val) {
		return model.InsufficientData("Insufficient data")
	}

	var signal model.Action
	var reason string
	switch {
	case val < r.Oversold:
		signal = model.ActionBuy
		reason = fmt.Sprintf("RSI %.1f is oversold (< %.0f)", val, r.Oversold)
	case val > r.Overbought:
		signal = model.ActionSell
		reason = fmt.Sprintf("RSI %.1f is overbought (> %.0f)", val, r.Overbought)
	case val < 50:
		signal = model.ActionHold
		reason = fmt.Sprintf("RSI %.1f is neutral-bearish (%.0f-50)", val, r.Oversold)
	default:
		signal = model.ActionHold
		reason = fmt.Sprintf("RSI %.1f is neutral-bullish (50-%.0f)", val, r.Overbought)
	}

	return model.Snapshot{
		Signal: signal,
		Reason: reason,
		Values: map[string]float64{
			"rsi":                  model.Round(val, 2),
			"oversold_threshold":   r.Oversold,
			"overbought_threshold": r.Overbought,
		},
	}
}
