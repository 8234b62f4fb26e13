package fundamental

import (
	"testing"

	"EquityLens/internal/model"
)

func f(v float64) *float64 { return &v }

func strongMetrics() *model.FinancialMetrics {
	return &model.FinancialMetrics{
		ReportPeriod:    "2024-12-31",
		ReturnOnEquity:  f(0.30),
		NetMargin:       f(0.25),
		OperatingMargin: f(0.28),
		ReturnOnAssets:  f(0.12),
		AssetTurnover:   f(0.9),

		RevenueGrowth:   f(0.15),
		EarningsGrowth:  f(0.20),
		BookValueGrowth: f(0.12),

		CurrentRatio:         f(2.0),
		DebtToEquity:         f(0.3),
		FreeCashFlowPerShare: f(6.0),
		EarningsPerShare:     f(5.0),

		PriceToEarnings: f(18),
		PriceToBook:     f(2.5),
		PriceToSales:    f(4),
	}
}

func TestAnalyzeBullish(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	rep, err := a.Analyze("TEST", strongMetrics())
	if err != nil {
		t.Fatal(err)
	}
	if rep.OverallSignal != "bullish" {
		t.Errorf("overall = %s, want bullish (votes %+v)", rep.OverallSignal, rep.Votes)
	}
	if rep.AsOf != "2024-12-31" {
		t.Errorf("as_of = %q", rep.AsOf)
	}
	// No dividend data: the section must be absent, not bearish.
	if _, ok := rep.Sections["dividends"]; ok {
		t.Error("dividends section present without dividend data")
	}
	if len(rep.Sections) != 4 {
		t.Errorf("got %d sections, want 4", len(rep.Sections))
	}
}

func TestAnalyzeBearish(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	m := &model.FinancialMetrics{
		ReturnOnEquity:  f(0.02),
		NetMargin:       f(0.01),
		OperatingMargin: f(0.02),
		RevenueGrowth:   f(-0.05),
		EarningsGrowth:  f(-0.20),
		CurrentRatio:    f(0.8),
		DebtToEquity:    f(2.5),
		PriceToEarnings: f(60),
		PriceToBook:     f(8),
		PriceToSales:    f(12),
	}
	rep, err := a.Analyze("TEST", m)
	if err != nil {
		t.Fatal(err)
	}
	if rep.OverallSignal != "bearish" {
		t.Errorf("overall = %s, want bearish (votes %+v)", rep.OverallSignal, rep.Votes)
	}
}

func TestAnalyzeNilMetrics(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	if _, err := a.Analyze("TEST", nil); err == nil {
		t.Error("expected error on nil metrics")
	}
}

func TestScoreSkipsMissingValues(t *testing.T) {
	passed, total := score([]criterion{
		{f(0.30), 0.15, true},
		{nil, 0.20, true},
		{f(0.10), 0.15, true},
	})
	if total != 2 {
		t.Errorf("total = %d, want 2 (nil excluded)", total)
	}
	if passed != 1 {
		t.Errorf("passed = %d, want 1", passed)
	}
}

func TestSubSignalCutoffs(t *testing.T) {
	tests := []struct {
		passed, total int
		want          string
	}{
		{3, 3, "bullish"},
		{4, 5, "bullish"},
		{2, 3, "neutral"}, // 0.667 just misses the 0.67 cutoff
		{1, 2, "neutral"},
		{1, 5, "bearish"},
		{1, 3, "neutral"}, // 0.333 just clears the 0.33 cutoff
		{0, 3, "bearish"},
		{0, 0, "bearish"}, // no data scores like failing everything
	}
	for _, tt := range tests {
		if got := subSignal(tt.passed, tt.total); got != tt.want {
			t.Errorf("subSignal(%d, %d) = %s, want %s", tt.passed, tt.total, got, tt.want)
		}
	}
}

func TestDividendSectionWhenPresent(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	m := strongMetrics()
	m.DividendYield = f(0.03)
	m.PayoutRatio = f(0.40)

	rep, err := a.Analyze("TEST", m)
	if err != nil {
		t.Fatal(err)
	}
	sec, ok := rep.Sections["dividends"]
	if !ok {
		t.Fatal("dividends section missing")
	}
	// Both criteria pass: 2/2 is bullish.
	if sec.Signal != model.Action("bullish") {
		t.Errorf("dividends signal = %s, want bullish", sec.Signal)
	}
	if sec.Score != "2/2" {
		t.Errorf("dividends score = %s, want 2/2", sec.Score)
	}
}
