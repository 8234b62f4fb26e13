package recorder

import "EquityLens/internal/model"

// RunRecord is one persisted analysis run for a ticker.
type RunRecord struct {
	RunID       string
	Ticker      string
	Price       float64
	AsOf        string
	Signal      string // final verdict signal
	Confidence  int
	AIVerdict   string
	AnalysisRaw string // full Analysis JSON
}

// IndicatorRecord is one indicator's snapshot + backtest row within a run.
type IndicatorRecord struct {
	RunID      string
	Ticker     string
	Indicator  string
	Signal     string
	Reason     string
	WinRatePct float64
	NTrades    int
	TotalPct   float64
	Sharpe     float64
}

// Recorder persists analysis history.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordIndicators(recs []IndicatorRecord) error
	Close() error
}

// RecordAnalysis flattens a full Analysis into run + indicator rows.
func RecordAnalysis(r Recorder, runID string, a *model.Analysis, rawJSON string) error {
	run := &RunRecord{
		RunID:       runID,
		Ticker:      a.Ticker,
		Price:       a.Price,
		AsOf:        a.AsOf,
		AnalysisRaw: rawJSON,
	}
	if a.Verdict != nil {
		run.Signal = a.Verdict.Signal
		run.Confidence = a.Verdict.Confidence
		run.AIVerdict = a.Verdict.AIVerdict
	}
	if err := r.RecordRun(run); err != nil {
		return err
	}

	if a.Technical == nil {
		return nil
	}
	recs := make([]IndicatorRecord, 0, len(a.Technical.Indicators))
	for key, rep := range a.Technical.Indicators {
		recs = append(recs, IndicatorRecord{
			RunID:      runID,
			Ticker:     a.Ticker,
			Indicator:  key,
			Signal:     string(rep.Signal),
			Reason:     rep.Reason,
			WinRatePct: rep.Backtest.WinRatePct,
			NTrades:    rep.Backtest.NTrades,
			TotalPct:   rep.Backtest.TotalReturnPct,
			Sharpe:     rep.Backtest.Sharpe,
		})
	}
	return r.RecordIndicators(recs)
}
