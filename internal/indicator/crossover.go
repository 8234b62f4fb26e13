package indicator

import (
	"fmt"

	"EquityLens/internal/model"
)

// crossSignals turns a fast-above-slow boolean track into cross events.
// Comparisons against NaN warm-up values are false, so no entry can fire
// until both averages are defined. At bar 0 the previous state is seeded
// true for exits and false for entries: a death cross may fire on the
// first bar (a no-op for a flat book) but a golden cross cannot.
func crossSignals(fast, slow []float64) []model.Signal {
	sig := make([]model.Signal, len(fast))
	for i := range fast {
		above := fast[i] > slow[i]
		prevAbove := false
		prevSeeded := true
		if i > 0 {
			prevAbove = fast[i-1] > slow[i-1]
			prevSeeded = prevAbove
		}
		switch {
		case above && !prevAbove:
			sig[i] = model.EnterLong
		case !above && prevSeeded:
			sig[i] = model.ExitLong
		}
	}
	return sig
}

// crossedInWindow reports whether fast crossed above (and below) slow
// within the trailing `window` bars.
func crossedInWindow(fast, slow []float64, window int) (above, below bool) {
	n := len(fast)
	start := n - window
	if start < 0 {
		start = 0
	}
	for i := start + 1; i < n; i++ {
		if fast[i] > slow[i] && fast[i-1] <= slow[i-1] {
			above = true
		}
		if fast[i] < slow[i] && fast[i-1] >= slow[i-1] {
			below = true
		}
	}
	return above, below
}

// SMACross detects golden/death crosses of two simple moving averages.
// Pure crossing detection: crosses are symmetric events, so no position
// state is needed.
type SMACross struct {
	Fast int
	Slow int
}

func NewSMACross(fast, slow int) *SMACross {
	return &SMACross{Fast: fast, Slow: slow}
}

func (s *SMACross) Key() string  { return "sma" }
func (s *SMACross) Name() string { return fmt.Sprintf("SMA %d/%d", s.Fast, s.Slow) }

func (s *SMACross) Series(bars []model.PriceBar) []model.Signal {
	closes := extractCloses(bars)
	return crossSignals(rollingMean(closes, s.Fast), rollingMean(closes, s.Slow))
}

func (s *SMACross) Snapshot(bars []model.PriceBar) model.Snapshot {
	if len(bars) < s.Slow {
		return model.InsufficientData(fmt.Sprintf("Insufficient data for SMA%d", s.Slow))
	}
	closes := extractCloses(bars)
	fast := rollingMean(closes, s.Fast)
	slow := rollingMean(closes, s.Slow)

	last := len(bars) - 1
	gapPct := (fast[last] - slow[last]) / slow[last] * 100

	// A cross within the trailing five bars is still "fresh".
	crossedAbove, crossedBelow := crossedInWindow(fast, slow, 5)

	var signal model.Action
	var reason string
	switch {
	case crossedAbove:
		signal = model.ActionBuy
		reason = fmt.Sprintf("Golden Cross: SMA%d just crossed above SMA%d", s.Fast, s.Slow)
	case crossedBelow:
		signal = model.ActionSell
		reason = fmt.Sprintf("Death Cross: SMA%d just crossed below SMA%d", s.Fast, s.Slow)
	case fast[last] > slow[last]:
		// Sustained alignment is a hold, not a buy: the series path only
		// fires on the cross itself.
		signal = model.ActionHold
		reason = fmt.Sprintf("Bullish alignment: SMA%d (%.2f) > SMA%d (%.2f), gap %+.1f%%",
			s.Fast, fast[last], s.Slow, slow[last], gapPct)
	default:
		signal = model.ActionSell
		reason = fmt.Sprintf("Bearish alignment: SMA%d (%.2f) < SMA%d (%.2f), gap %+.1f%%",
			s.Fast, fast[last], s.Slow, slow[last], gapPct)
	}

	return model.Snapshot{
		Signal: signal,
		Reason: reason,
		Values: map[string]float64{
			fmt.Sprintf("sma_%d", s.Fast): model.Round(fast[last], 2),
			fmt.Sprintf("sma_%d", s.Slow): model.Round(slow[last], 2),
			"gap_%":                       model.Round(gapPct, 2),
		},
	}
}

// EMACross applies the same crossing rule to exponential averages.
type EMACross struct {
	Fast int
	Slow int
}

func NewEMACross(fast, slow int) *EMACross {
	return &EMACross{Fast: fast, Slow: slow}
}

func (e *EMACross) Key() string  { return "ema" }
func (e *EMACross) Name() string { return fmt.Sprintf("EMA %d/%d", e.Fast, e.Slow) }

func (e *EMACross) Series(bars []model.PriceBar) []model.Signal {
	closes := extractCloses(bars)
	return crossSignals(ema(closes, e.Fast), ema(closes, e.Slow))
}

func (e *EMACross) Snapshot(bars []model.PriceBar) model.Snapshot {
	if len(bars) == 0 {
		return model.InsufficientData("Insufficient data")
	}
	closes := extractCloses(bars)
	fast := ema(closes, e.Fast)
	slow := ema(closes, e.Slow)

	last := len(bars) - 1
	gapPct := (fast[last] - slow[last]) / slow[last] * 100
	crossedAbove, crossedBelow := crossedInWindow(fast, slow, 3)

	var signal model.Action
	switch {
	case crossedAbove:
		signal = model.ActionBuy
	case crossedBelow || fast[last] < slow[last]:
		signal = model.ActionSell
	default:
		signal = model.ActionHold
	}

	rel := ">"
	if fast[last] <= slow[last] {
		rel = "<"
	}
	reason := fmt.Sprintf("EMA%d (%.2f) %s EMA%d (%.2f), gap %+.1f%%",
		e.Fast, fast[last], rel, e.Slow, slow[last], gapPct)

	return model.Snapshot{
		Signal: signal,
		Reason: reason,
		Values: map[string]float64{
			fmt.Sprintf("ema_%d", e.Fast): model.Round(fast[last], 2),
			fmt.Sprintf("ema_%d", e.Slow): model.Round(slow[last], 2),
			"gap_%":                       model.Round(gapPct, 2),
		},
	}
}
