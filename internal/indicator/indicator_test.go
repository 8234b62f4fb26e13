package indicator

import (
	"math"
	"testing"
	"time"

	"EquityLens/internal/model"
)

// barsFromCloses builds a daily series where every OHLC equals the close.
func barsFromCloses(closes []float64) []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date: start.AddDate(0, 0, i),
			Open: c, High: c, Low: c, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func countSignals(sig []model.Signal) (entries, exits int) {
	for _, s := range sig {
		switch s {
		case model.EnterLong:
			entries++
		case model.ExitLong:
			exits++
		}
	}
	return entries, exits
}

func TestRegistry(t *testing.T) {
	if _, ok := New("nope"); ok {
		t.Error("New should reject unknown keys")
	}
	for _, k := range Keys {
		ind, ok := New(k)
		if !ok {
			t.Fatalf("New(%q) not found", k)
		}
		if ind.Key() != k {
			t.Errorf("New(%q).Key() = %q", k, ind.Key())
		}
	}
}

func TestFromKeysCanonicalOrder(t *testing.T) {
	inds := FromKeys([]string{"macd", "bollinger", "unknown"})
	if len(inds) != 2 {
		t.Fatalf("got %d indicators, want 2", len(inds))
	}
	if inds[0].Key() != "bollinger" || inds[1].Key() != "macd" {
		t.Errorf("order = [%s, %s], want canonical [bollinger, macd]", inds[0].Key(), inds[1].Key())
	}

	all := FromKeys(nil)
	if len(all) != len(Keys) {
		t.Errorf("FromKeys(nil) returned %d indicators, want all %d", len(all), len(Keys))
	}
}

func TestCrossSignals(t *testing.T) {
	fast := []float64{1, 3, 1}
	slow := []float64{2, 2, 2}
	sig := crossSignals(fast, slow)

	want := []model.Signal{model.ExitLong, model.EnterLong, model.ExitLong}
	for i := range want {
		if sig[i] != want[i] {
			t.Errorf("sig[%d] = %d, want %d", i, sig[i], want[i])
		}
	}
}

func TestCrossSignalsNaNWarmup(t *testing.T) {
	// An entry must not fire while either average is undefined.
	fast := []float64{math.NaN(), math.NaN(), 1, 3}
	slow := []float64{math.NaN(), math.NaN(), 2, 2}
	sig := crossSignals(fast, slow)

	for i := 0; i < 3; i++ {
		if sig[i] == model.EnterLong {
			t.Errorf("entry fired at %d during warm-up", i)
		}
	}
	if sig[3] != model.EnterLong {
		t.Errorf("sig[3] = %d, want entry on first defined cross", sig[3])
	}
}

func TestBollingerSeries(t *testing.T) {
	// Period 3, 1 std. Bar 3 closes below the lower band (8 - 3.46),
	// bar 4 recovers to the rolling mean.
	b := NewBollinger(3, 1)
	bars := barsFromCloses([]float64{10, 10, 10, 4, 10, 30})
	sig := b.Series(bars)

	want := []model.Signal{0, 0, 0, model.EnterLong, model.ExitLong, 0}
	for i := range want {
		if sig[i] != want[i] {
			t.Errorf("sig[%d] = %d, want %d", i, sig[i], want[i])
		}
	}
}

func TestBollingerSnapshot(t *testing.T) {
	b := NewBollinger(3, 1)

	tests := []struct {
		name   string
		closes []float64
		want   model.Action
	}{
		{"below lower band", []float64{10, 10, 10, 4}, model.ActionBuy},
		{"above upper band", []float64{10, 10, 10, 30}, model.ActionSell},
		{"flat within bands", []float64{10, 10, 11, 10}, model.ActionHold},
		{"insufficient data", []float64{10, 10}, model.ActionNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := b.Snapshot(barsFromCloses(tt.closes))
			if snap.Signal != tt.want {
				t.Errorf("snapshot = %s (%s), want %s", snap.Signal, snap.Reason, tt.want)
			}
		})
	}
}

func TestSMACrossSnapshot(t *testing.T) {
	s := NewSMACross(2, 4)

	// Rising closes: fast crosses above slow within the fresh window.
	snap := s.Snapshot(barsFromCloses([]float64{10, 9, 8, 9, 12, 15}))
	if snap.Signal != model.ActionBuy {
		t.Errorf("fresh golden cross = %s (%s), want buy", snap.Signal, snap.Reason)
	}

	// Too short for the slow window.
	snap = s.Snapshot(barsFromCloses([]float64{10, 11, 12}))
	if snap.Signal != model.ActionNeutral {
		t.Errorf("short series = %s, want neutral", snap.Signal)
	}
}

func TestRSIComputeEdges(t *testing.T) {
	r := NewRSI(3, 30, 70)

	// Monotonic rise: average loss is zero, RSI undefined by contract.
	rising := r.Compute([]float64{1, 2, 3, 4, 5, 6})
	for i, v := range rising {
		if !math.IsNaN(v) {
			t.Errorf("rsi[%d] = %v on a loss-free series, want NaN", i, v)
		}
	}

	// Monotonic decline: average gain is zero, RSI pinned at 0 after warm-up.
	falling := r.Compute([]float64{10, 9, 8, 7, 6, 5})
	for i := 3; i < len(falling); i++ {
		if !almostEqual(falling[i], 0, 1e-9) {
			t.Errorf("rsi[%d] = %v on a gain-free series, want 0", i, falling[i])
		}
	}
}

func TestRSISeriesEntryOnRecovery(t *testing.T) {
	r := NewRSI(3, 30, 70)
	// Decline pins RSI at 0, the recovery lifts it back up through the
	// oversold line exactly once.
	closes := []float64{20, 19, 18, 17, 16, 15, 16, 17, 18, 19, 20, 21}
	sig := r.Series(barsFromCloses(closes))

	entries, exits := countSignals(sig)
	if entries != 1 {
		t.Errorf("entries = %d, want exactly 1", entries)
	}
	if exits != 0 {
		t.Errorf("exits = %d, want 0 (never reached overbought)", exits)
	}
	// The entry must come after the bottom at index 5.
	for i, s := range sig {
		if s == model.EnterLong && i <= 5 {
			t.Errorf("entry fired at %d, before the recovery", i)
		}
	}
}

func TestRSISnapshot(t *testing.T) {
	r := NewRSI(3, 30, 70)

	snap := r.Snapshot(barsFromCloses([]float64{10, 9, 8, 7, 6}))
	if snap.Signal != model.ActionBuy {
		t.Errorf("oversold snapshot = %s (%s), want buy", snap.Signal, snap.Reason)
	}

	// Loss-free history: RSI undefined, snapshot degrades to neutral.
	snap = r.Snapshot(barsFromCloses([]float64{1, 2, 3, 4, 5}))
	if snap.Signal != model.ActionNeutral {
		t.Errorf("undefined RSI snapshot = %s, want neutral", snap.Signal)
	}
}

func TestMACDSeriesVShape(t *testing.T) {
	m := NewMACD(3, 6, 4)
	closes := make([]float64, 0, 40)
	for p := 100.0; p > 80; p-- {
		closes = append(closes, p)
	}
	for p := 81.0; p <= 100; p++ {
		closes = append(closes, p)
	}
	sig := m.Series(barsFromCloses(closes))

	entries, _ := countSignals(sig)
	if entries != 1 {
		t.Fatalf("entries = %d, want exactly 1 on a V-shaped series", entries)
	}
	for i, s := range sig {
		if s == model.EnterLong && i < 20 {
			t.Errorf("entry fired at %d, during the decline", i)
		}
	}
}

func TestMACDSnapshotValuesRounded(t *testing.T) {
	m := NewMACD(3, 6, 4)
	snap := m.Snapshot(barsFromCloses([]float64{100, 101, 103, 106, 110, 115}))
	if snap.Signal == model.ActionNeutral {
		t.Fatalf("unexpected neutral snapshot: %s", snap.Reason)
	}
	for _, k := range []string{"macd", "signal_line", "histogram"} {
		if _, ok := snap.Values[k]; !ok {
			t.Errorf("missing value %q", k)
		}
	}
}

// Signals at index i may only depend on bars 0..i: the signal stream of
// a truncated history must be a prefix of the full stream.
func TestSeriesNoLookahead(t *testing.T) {
	closes := []float64{
		100, 102, 98, 97, 99, 103, 105, 101, 96, 94,
		95, 99, 104, 108, 107, 103, 100, 98, 102, 106,
		110, 109, 105, 101, 99, 103, 108, 112, 111, 107,
	}
	bars := barsFromCloses(closes)

	for _, k := range Keys {
		ind, _ := New(k)
		full := ind.Series(bars)
		for cut := 1; cut <= len(bars); cut++ {
			partial := ind.Series(bars[:cut])
			for i := range partial {
				if partial[i] != full[i] {
					t.Fatalf("%s: signal at %d changed when history truncated at %d (%d vs %d)",
						k, i, cut, partial[i], full[i])
				}
			}
		}
	}
}
