package indicator

import "math"

var nan = math.NaN()

// rollingMean returns the simple moving average; NaN during warm-up.
func rollingMean(vals []float64, period int) []float64 {
	out := make([]float64, len(vals))
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= period {
			sum -= vals[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = nan
		}
	}
	return out
}

// rollingStd returns the rolling sample standard deviation (n-1
// denominator); NaN during warm-up.
func rollingStd(vals []float64, period int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if i < period-1 || period < 2 {
			out[i] = nan
			continue
		}
		window := vals[i-period+1 : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)
		ss := 0.0
		for _, v := range window {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

// ema returns the span-based exponential moving average seeded with the
// first value (alpha = 2/(span+1), no adjustment).
func ema(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// wilderMean returns the Wilder-style smoothed mean of vals starting at
// index start: an exponentially weighted average with alpha = 1/period
// where every observation's weight decays by (1-alpha). Values are NaN
// until `period` observations have been absorbed.
func wilderMean(vals []float64, start, period int) []float64 {
	out := make([]float64, len(vals))
	for i := 0; i < len(out); i++ {
		out[i] = nan
	}
	w := 1.0 - 1.0/float64(period)
	num, den := 0.0, 0.0
	seen := 0
	for i := start; i < len(vals); i++ {
		num = vals[i] + w*num
		den = 1 + w*den
		seen++
		if seen >= period {
			out[i] = num / den
		}
	}
	return out
}
