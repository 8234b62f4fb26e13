package model

import "time"

// Trade is one closed round trip. Immutable once recorded.
type Trade struct {
	EntryDate   time.Time `json:"entry_date"`
	ExitDate    time.Time `json:"exit_date"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	PctReturn   float64   `json:"pct_return"`
	HoldingDays int       `json:"holding_days"`
	Win         bool      `json:"win"`
	ExitReason  string    `json:"exit_reason"`
}

// BacktestResult aggregates all closed trades for one (ticker, strategy)
// pair. Recomputed fresh on every run; never persisted as-is.
type BacktestResult struct {
	Ticker         string
	Strategy       string
	NTrades        int
	WinRate        float64 // 0-100
	AvgReturnPct   float64
	TotalReturnPct float64 // compounded
	BuyHoldPct     float64
	AvgHoldDays    float64
	MaxDrawdownPct float64
	Sharpe         float64
	Trades         []Trade
}

// BacktestSummary is the display shape embedded in indicator reports.
type BacktestSummary struct {
	Ticker         string  `json:"ticker"`
	Strategy       string  `json:"strategy"`
	NTrades        int     `json:"n_trades"`
	WinRatePct     float64 `json:"win_rate_%"`
	AvgTradePct    float64 `json:"avg_trade_%"`
	TotalReturnPct float64 `json:"total_return_%"`
	BuyHoldPct     float64 `json:"buy_hold_%"`
	AvgHoldDays    float64 `json:"avg_hold_days"`
	MaxDrawdownPct float64 `json:"max_drawdown_%"`
	Sharpe         float64 `json:"sharpe"`
}

// Summary rounds the result for display. Computation stays full precision;
// only this projection rounds.
func (r *BacktestResult) Summary() BacktestSummary {
	return BacktestSummary{
		Ticker:         r.Ticker,
		Strategy:       r.Strategy,
		NTrades:        r.NTrades,
		WinRatePct:     Round(r.WinRate, 1),
		AvgTradePct:    Round(r.AvgReturnPct, 2),
		TotalReturnPct: Round(r.TotalReturnPct, 1),
		BuyHoldPct:     Round(r.BuyHoldPct, 1),
		AvgHoldDays:    Round(r.AvgHoldDays, 1),
		MaxDrawdownPct: Round(r.MaxDrawdownPct, 1),
		Sharpe:         Round(r.Sharpe, 2),
	}
}
