package aggregate

import (
	"context"
	"strings"
	"testing"

	"EquityLens/internal/model"
)

func techReport(overall model.Action) *model.TechnicalReport {
	return &model.TechnicalReport{
		Ticker:        "TEST",
		OverallSignal: overall,
		Votes:         model.VoteSummary{Buy: 2, Sell: 1, Hold: 2},
		Indicators: map[string]model.IndicatorReport{
			"rsi": {
				Name:     "RSI 14",
				Signal:   overall,
				Backtest: model.BacktestSummary{WinRatePct: 60, NTrades: 5},
			},
		},
	}
}

func fundReport(overall string) *model.FundamentalReport {
	return &model.FundamentalReport{
		Ticker:        "TEST",
		OverallSignal: overall,
		Sections: map[string]model.SectionReport{
			"profitability": {Signal: model.Action(overall)},
		},
	}
}

func valuReport(overall string, gap float64) *model.ValuationReport {
	g := gap
	return &model.ValuationReport{
		Ticker:         "TEST",
		OverallSignal:  overall,
		WeightedGapPct: gap,
		Methods: map[string]model.MethodReport{
			"dcf": {Signal: overall, GapPct: &g},
		},
	}
}

func TestRuleBasedVerdicts(t *testing.T) {
	tests := []struct {
		name string
		tech model.Action
		fund string
		valu string
		want string
	}{
		{"all aligned bullish", model.ActionBuy, "bullish", "bullish", "buy"},
		{"all aligned bearish", model.ActionSell, "bearish", "bearish", "sell"},
		{"all neutral", model.ActionHold, "neutral", "neutral", "hold"},
		{"technical alone clears the cutoff", model.ActionBuy, "neutral", "neutral", "buy"},
		{"opposing domains cancel out", model.ActionBuy, "bearish", "neutral", "hold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := RuleBased(techReport(tt.tech), fundReport(tt.fund), valuReport(tt.valu, 10))
			if v.Signal != tt.want {
				t.Errorf("signal = %s (score %v), want %s", v.Signal, v.WeightedScore, tt.want)
			}
		})
	}
}

func TestRuleBasedConfidenceCapped(t *testing.T) {
	v := RuleBased(techReport(model.ActionBuy), fundReport("bullish"), valuReport("bullish", 40))
	if v.Confidence != 100 {
		t.Errorf("confidence = %d, want capped at 100", v.Confidence)
	}
	if v.WeightedScore != 1.0 {
		t.Errorf("weighted score = %v, want 1.0", v.WeightedScore)
	}
}

func TestRuleBasedMissingDomains(t *testing.T) {
	v := RuleBased(techReport(model.ActionBuy), nil, nil)
	if v.Signal != "buy" {
		t.Errorf("signal = %s, want buy (0.35 > cutoff)", v.Signal)
	}
	if v.AgentSignals["fundamental"].Signal != "neutral" {
		t.Errorf("missing fundamental domain should read neutral, got %s", v.AgentSignals["fundamental"].Signal)
	}

	v = RuleBased(nil, nil, nil)
	if v.Signal != "hold" || v.Confidence != 0 {
		t.Errorf("all-nil verdict = %s/%d, want hold/0", v.Signal, v.Confidence)
	}
}

func TestRuleBasedBreakdown(t *testing.T) {
	v := RuleBased(techReport(model.ActionBuy), fundReport("bullish"), valuReport("bullish", 20))

	entry, ok := v.Breakdown["RSI 14"]
	if !ok {
		t.Fatal("indicator breakdown entry missing")
	}
	if entry.BacktestWinPct == nil || *entry.BacktestWinPct != 60 {
		t.Errorf("breakdown win rate = %v, want 60", entry.BacktestWinPct)
	}
	if _, ok := v.Breakdown["Fundamental: Profitability"]; !ok {
		t.Error("fundamental section missing from breakdown")
	}
	if _, ok := v.Breakdown["Valuation: Dcf"]; !ok {
		t.Error("valuation method missing from breakdown")
	}
}

func TestAdvisorDisabledFallsBackToRules(t *testing.T) {
	a := NewAdvisor("", "")
	v := a.Verdict(context.Background(), "TEST",
		techReport(model.ActionBuy), fundReport("bullish"), valuReport("bullish", 20), "")
	if v.Signal != "buy" {
		t.Errorf("signal = %s, want rule-based buy", v.Signal)
	}
	if !strings.Contains(v.Reasoning, "no API key") {
		t.Errorf("reasoning = %q, should explain the missing key", v.Reasoning)
	}
	if v.AIVerdict != "" {
		t.Errorf("disabled advisor set AIVerdict = %q", v.AIVerdict)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("owner_earnings"); got != "Owner Earnings" {
		t.Errorf("titleCase = %q", got)
	}
	if got := titleCase("dcf"); got != "Dcf" {
		t.Errorf("titleCase = %q", got)
	}
}
