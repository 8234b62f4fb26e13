package indicator

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRollingMean(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	out := rollingMean(vals, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("expected NaN during warm-up, got %v, %v", out[0], out[1])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(out[i+2], w, 1e-9) {
			t.Errorf("rollingMean[%d] = %v, want %v", i+2, out[i+2], w)
		}
	}
}

func TestRollingStdIsSampleStd(t *testing.T) {
	// Window {10, 10, 4}: mean 8, squared deviations 4+4+16 = 24,
	// sample variance 24/2 = 12.
	vals := []float64{10, 10, 4}
	out := rollingStd(vals, 3)

	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Fatalf("expected NaN during warm-up, got %v, %v", out[0], out[1])
	}
	if want := math.Sqrt(12); !almostEqual(out[2], want, 1e-9) {
		t.Errorf("rollingStd = %v, want %v", out[2], want)
	}
}

func TestEMASeededWithFirstValue(t *testing.T) {
	out := ema([]float64{10, 10, 10, 10}, 3)
	for i, v := range out {
		if !almostEqual(v, 10, 1e-9) {
			t.Errorf("ema[%d] = %v, want 10 on a flat series", i, v)
		}
	}

	rising := ema([]float64{10, 20}, 3)
	if rising[0] != 10 {
		t.Errorf("ema[0] = %v, want the first value", rising[0])
	}
	// alpha = 2/(3+1) = 0.5
	if !almostEqual(rising[1], 15, 1e-9) {
		t.Errorf("ema[1] = %v, want 15", rising[1])
	}
}

func TestWilderMeanWarmup(t *testing.T) {
	vals := []float64{0, 1, 1, 1, 1, 1}
	out := wilderMean(vals, 1, 3)

	for i := 0; i < 3; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("wilderMean[%d] = %v, want NaN before %d observations", i, out[i], 3)
		}
	}
	// A constant input converges to that constant regardless of weights.
	for i := 3; i < len(out); i++ {
		if !almostEqual(out[i], 1, 1e-9) {
			t.Errorf("wilderMean[%d] = %v, want 1 on constant input", i, out[i])
		}
	}
}
