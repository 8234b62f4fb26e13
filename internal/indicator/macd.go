package indicator

import (
	"fmt"

	"EquityLens/internal/model"
)

// MACD signals crossings of the fast/slow EMA difference against its own
// signal-line EMA. All three smoothings are span-based, not
// Wilder-smoothed, so values are defined from the first bar.
type MACD struct {
	Fast   int
	Slow   int
	Signal int
}

func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{Fast: fast, Slow: slow, Signal: signal}
}

func (m *MACD) Key() string  { return "macd" }
func (m *MACD) Name() string { return fmt.Sprintf("MACD %d/%d/%d", m.Fast, m.Slow, m.Signal) }

// Compute returns the MACD line, signal line, and histogram.
func (m *MACD) Compute(closes []float64) (macd, signal, hist []float64) {
	fast := ema(closes, m.Fast)
	slow := ema(closes, m.Slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal = ema(macd, m.Signal)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - signal[i]
	}
	return macd, signal, hist
}

func (m *MACD) Series(bars []model.PriceBar) []model.Signal {
	macd, signal, _ := m.Compute(extractCloses(bars))
	return crossSignals(macd, signal)
}

func (m *MACD) Snapshot(bars []model.PriceBar) model.Snapshot {
	if len(bars) < 2 {
		return model.InsufficientData("Insufficient data")
	}
	macd, signal, hist := m.Compute(extractCloses(bars))

	last := len(bars) - 1
	prev := last - 1
	crossedAbove := macd[last] > signal[last] && macd[prev] <= signal[prev]
	crossedBelow := macd[last] < signal[last] && macd[prev] >= signal[prev]

	var action model.Action
	var reason string
	switch {
	case crossedAbove:
		action = model.ActionBuy
		reason = fmt.Sprintf("MACD (%.3f) just crossed above signal (%.3f)", macd[last], signal[last])
	case crossedBelow:
		action = model.ActionSell
		reason = fmt.Sprintf("MACD (%.3f) just crossed below signal (%.3f)", macd[last], signal[last])
	case macd[last] > signal[last]:
		action = model.ActionHold
		reason = fmt.Sprintf("MACD (%.3f) above signal (%.3f), histogram %.3f", macd[last], signal[last], hist[last])
	default:
		action = model.ActionSell
		reason = fmt.Sprintf("MACD (%.3f) below signal (%.3f), histogram %.3f", macd[last], signal[last], hist[last])
	}

	return model.Snapshot{
		Signal: action,
		Reason: reason,
		Values: map[string]float64{
			"macd":        model.Round(macd[last], 4),
			"signal_line": model.Round(signal[last], 4),
			"histogram":   model.Round(hist[last], 4),
		},
	}
}
