package recorder

import (
	"testing"

	"EquityLens/internal/model"
)

// capture collects records in memory for assertions.
type capture struct {
	runs []RunRecord
	inds []IndicatorRecord
}

func (c *capture) RecordRun(r *RunRecord) error {
	c.runs = append(c.runs, *r)
	return nil
}
func (c *capture) RecordIndicators(recs []IndicatorRecord) error {
	c.inds = append(c.inds, recs...)
	return nil
}
func (c *capture) Close() error { return nil }

func TestRecordAnalysisFlattens(t *testing.T) {
	a := &model.Analysis{
		Ticker: "TEST",
		Price:  101.5,
		AsOf:   "2024-06-03",
		Technical: &model.TechnicalReport{
			Indicators: map[string]model.IndicatorReport{
				"rsi": {
					Name:   "RSI 14",
					Signal: model.ActionBuy,
					Reason: "oversold",
					Backtest: model.BacktestSummary{
						WinRatePct: 55.5, NTrades: 9, TotalReturnPct: 12.3, Sharpe: 0.8,
					},
				},
			},
		},
		Verdict: &model.Verdict{Signal: "buy", Confidence: 70, AIVerdict: "BUY"},
	}

	var c capture
	if err := RecordAnalysis(&c, "run-1", a, `{"ticker":"TEST"}`); err != nil {
		t.Fatal(err)
	}

	if len(c.runs) != 1 {
		t.Fatalf("got %d run records, want 1", len(c.runs))
	}
	run := c.runs[0]
	if run.RunID != "run-1" || run.Ticker != "TEST" || run.Signal != "buy" || run.AIVerdict != "BUY" {
		t.Errorf("run record = %+v", run)
	}

	if len(c.inds) != 1 {
		t.Fatalf("got %d indicator records, want 1", len(c.inds))
	}
	ind := c.inds[0]
	if ind.Indicator != "rsi" || ind.WinRatePct != 55.5 || ind.NTrades != 9 {
		t.Errorf("indicator record = %+v", ind)
	}
}

func TestRecordAnalysisWithoutTechnical(t *testing.T) {
	var c capture
	a := &model.Analysis{Ticker: "TEST"}
	if err := RecordAnalysis(&c, "run-2", a, "{}"); err != nil {
		t.Fatal(err)
	}
	if len(c.runs) != 1 || len(c.inds) != 0 {
		t.Errorf("runs=%d inds=%d, want 1/0", len(c.runs), len(c.inds))
	}
}
