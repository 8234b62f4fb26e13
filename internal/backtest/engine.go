package backtest

import (
	"fmt"
	"math"
	"time"

	"EquityLens/internal/model"
)

const (
	// DefaultCommission is the per-side rate, roughly 0.2% round trip.
	DefaultCommission = 0.001
	// InitialEquity is the virtual notional every simulation starts with.
	InitialEquity = 10_000.0
	// tradingDaysPerYear annualizes the Sharpe ratio.
	tradingDaysPerYear = 252
)

// Engine simulates a long-only strategy bar by bar. A signal decided at
// bar i-1 is filled at bar i's open: the one-bar lag models order latency
// and keeps a bar's own close from trading at its own open.
type Engine struct {
	Commission float64
}

func NewEngine(commission float64) *Engine {
	return &Engine{Commission: commission}
}

// Run scores a signal series against a price series. The two must be
// aligned 1:1; a mismatch is a caller contract violation and fails fast.
// A position still open at the end of the series is dropped, not
// force-closed: unrealized trades carry no statistics.
func (e *Engine) Run(series *model.PriceSeries, signals []model.Signal, strategy string) (*model.BacktestResult, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("backtest %s: %w", strategy, err)
	}
	if len(signals) != len(series.Bars) {
		return nil, fmt.Errorf("backtest %s: signal series length %d does not match %d price bars",
			strategy, len(signals), len(series.Bars))
	}

	bars := series.Bars
	var trades []model.Trade
	inTrade := false
	var entryPrice float64
	var entryDate = bars[0].Date
	equity := InitialEquity
	equityCurve := []float64{equity}

	for i := 1; i < len(bars); i++ {
		sig := signals[i-1]
		price := bars[i].Open
		date := bars[i].Date

		switch {
		case !inTrade && sig == model.EnterLong:
			entryPrice = price * (1 + e.Commission)
			entryDate = date
			inTrade = true

		case inTrade && sig == model.ExitLong:
			exitPrice := price * (1 - e.Commission)
			pct := (exitPrice - entryPrice) / entryPrice * 100
			hold := calendarDays(entryDate, date)
			if hold < 1 {
				hold = 1
			}
			equity *= 1 + pct/100
			equityCurve = append(equityCurve, equity)
			trades = append(trades, model.Trade{
				EntryDate:   entryDate,
				ExitDate:    date,
				EntryPrice:  entryPrice,
				ExitPrice:   exitPrice,
				PctReturn:   pct,
				HoldingDays: hold,
				Win:         pct > 0,
				ExitReason:  "signal",
			})
			inTrade = false
		}
	}

	if len(trades) == 0 {
		return emptyResult(series, strategy), nil
	}

	wins := 0
	sumPct, sumHold := 0.0, 0.0
	daily := make([]float64, len(trades))
	for i, t := range trades {
		if t.Win {
			wins++
		}
		sumPct += t.PctReturn
		sumHold += float64(t.HoldingDays)
		daily[i] = t.PctReturn / float64(t.HoldingDays)
	}

	return &model.BacktestResult{
		Ticker:         series.Ticker,
		Strategy:       strategy,
		NTrades:        len(trades),
		WinRate:        float64(wins) / float64(len(trades)) * 100,
		AvgReturnPct:   sumPct / float64(len(trades)),
		TotalReturnPct: (equity/InitialEquity - 1) * 100,
		BuyHoldPct:     buyHoldPct(bars),
		AvgHoldDays:    sumHold / float64(len(trades)),
		MaxDrawdownPct: maxDrawdownPct(equityCurve),
		Sharpe:         annualizedSharpe(daily),
		Trades:         trades,
	}, nil
}

// calendarDays counts whole calendar days between two bar dates,
// ignoring any intraday portion of the timestamps. Providers may stamp
// bars with session-open times, so a plain hour division undercounts
// across DST changes.
func calendarDays(entry, exit time.Time) int {
	entry = time.Date(entry.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC)
	exit = time.Date(exit.Year(), exit.Month(), exit.Day(), 0, 0, 0, 0, time.UTC)
	return int(exit.Sub(entry).Hours() / 24)
}

// buyHoldPct is the benchmark return of holding from first to last close;
// zero when fewer than two bars exist.
func buyHoldPct(bars []model.PriceBar) float64 {
	if len(bars) < 2 {
		return 0
	}
	return (bars[len(bars)-1].Close/bars[0].Close - 1) * 100
}

// maxDrawdownPct is the worst peak-to-trough decline of the equity curve,
// sampled at trade closes. Always <= 0.
func maxDrawdownPct(curve []float64) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, eq := range curve {
		if eq > peak {
			peak = eq
		}
		dd := (eq - peak) / peak * 100
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// annualizedSharpe normalizes each trade's return to a daily rate, then
// annualizes mean over volatility. Zero variance yields 0, not infinity.
func annualizedSharpe(daily []float64) float64 {
	if len(daily) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range daily {
		mean += r
	}
	mean /= float64(len(daily))

	variance := 0.0
	for _, r := range daily {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(daily))
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDaysPerYear)
}

func emptyResult(series *model.PriceSeries, strategy string) *model.BacktestResult {
	return &model.BacktestResult{
		Ticker:     series.Ticker,
		Strategy:   strategy,
		BuyHoldPct: buyHoldPct(series.Bars),
	}
}
