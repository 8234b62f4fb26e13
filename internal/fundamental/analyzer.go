package fundamental

import (
	"fmt"
	"strings"

	"EquityLens/internal/model"
)

// Thresholds are the pass/fail cutoffs for metric scoring. Zero-value
// fields are never read; construct with DefaultThresholds and override.
type Thresholds struct {
	ROEMin            float64
	NetMarginMin      float64
	OpMarginMin       float64
	ROAMin            float64
	AssetTurnoverMin  float64
	RevenueGrowthMin  float64
	EarningsGrowthMin float64
	BVGrowthMin       float64
	CurrentRatioMin   float64
	DebtEquityMax     float64
	FCFEPSRatioMin    float64
	PEMax             float64
	PBMax             float64
	PSMax             float64
	DividendYieldMin  float64
	PayoutRatioMax    float64
}

// DefaultThresholds returns the standard quality-screen cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ROEMin:            0.15,
		NetMarginMin:      0.20,
		OpMarginMin:       0.15,
		ROAMin:            0.05,
		AssetTurnoverMin:  0.5,
		RevenueGrowthMin:  0.10,
		EarningsGrowthMin: 0.10,
		BVGrowthMin:       0.10,
		CurrentRatioMin:   1.5,
		DebtEquityMax:     0.5,
		FCFEPSRatioMin:    0.8,
		PEMax:             25,
		PBMax:             3,
		PSMax:             5,
		DividendYieldMin:  0.02,
		PayoutRatioMax:    0.60,
	}
}

// Analyzer scores a financial-metrics snapshot section by section.
type Analyzer struct {
	th Thresholds
}

func NewAnalyzer(th Thresholds) *Analyzer {
	return &Analyzer{th: th}
}

// criterion is one metric check: pass when the value is above (or below)
// its threshold. Nil values are excluded from scoring entirely.
type criterion struct {
	value     *float64
	threshold float64
	above     bool
}

// score counts passing criteria among those with data.
func score(items []criterion) (passed, total int) {
	for _, c := range items {
		if c.value == nil {
			continue
		}
		total++
		if c.above && *c.value > c.threshold {
			passed++
		} else if !c.above && *c.value < c.threshold {
			passed++
		}
	}
	return passed, total
}

// subSignal maps a pass ratio to a section sentiment. A section with no
// data at all scores 0/0 and reads bearish, same as failing everything.
func subSignal(passed, total int) string {
	ratio := 0.0
	if total > 0 {
		ratio = float64(passed) / float64(total)
	}
	switch {
	case ratio >= 0.67:
		return "bullish"
	case ratio <= 0.33:
		return "bearish"
	default:
		return "neutral"
	}
}

func fmtPct(label string, v *float64) string {
	if v == nil {
		return label + ": N/A"
	}
	return fmt.Sprintf("%s: %.2f%%", label, *v*100)
}

func fmtNum(label string, v *float64) string {
	if v == nil {
		return label + ": N/A"
	}
	return fmt.Sprintf("%s: %.2f", label, *v)
}

func section(sig string, passed, total int, details []string) model.SectionReport {
	return model.SectionReport{
		Signal:  model.Action(sig),
		Score:   fmt.Sprintf("%d/%d", passed, total),
		Details: strings.Join(details, " | "),
	}
}

func (a *Analyzer) profitability(m *model.FinancialMetrics) (string, model.SectionReport) {
	passed, total := score([]criterion{
		{m.ReturnOnEquity, a.th.ROEMin, true},
		{m.NetMargin, a.th.NetMarginMin, true},
		{m.OperatingMargin, a.th.OpMarginMin, true},
		{m.ReturnOnAssets, a.th.ROAMin, true},
		{m.AssetTurnover, a.th.AssetTurnoverMin, true},
	})
	sig := subSignal(passed, total)
	return sig, section(sig, passed, total, []string{
		fmtPct("ROE", m.ReturnOnEquity),
		fmtPct("Net Margin", m.NetMargin),
		fmtPct("Op Margin", m.OperatingMargin),
		fmtPct("ROA", m.ReturnOnAssets),
		fmtNum("Asset Turnover", m.AssetTurnover),
	})
}

func (a *Analyzer) growth(m *model.FinancialMetrics) (string, model.SectionReport) {
	passed, total := score([]criterion{
		{m.RevenueGrowth, a.th.RevenueGrowthMin, true},
		{m.EarningsGrowth, a.th.EarningsGrowthMin, true},
		{m.BookValueGrowth, a.th.BVGrowthMin, true},
	})
	sig := subSignal(passed, total)
	return sig, section(sig, passed, total, []string{
		fmtPct("Revenue Growth", m.RevenueGrowth),
		fmtPct("Earnings Growth", m.EarningsGrowth),
		fmtPct("Book Value Growth", m.BookValueGrowth),
	})
}

func (a *Analyzer) health(m *model.FinancialMetrics) (string, model.SectionReport) {
	// Free-cash-flow conversion: FCF per share relative to EPS, only
	// meaningful with positive earnings.
	var fcfEPS *float64
	if m.FreeCashFlowPerShare != nil && m.EarningsPerShare != nil && *m.EarningsPerShare > 0 {
		r := *m.FreeCashFlowPerShare / *m.EarningsPerShare
		fcfEPS = &r
	}
	passed, total := score([]criterion{
		{m.CurrentRatio, a.th.CurrentRatioMin, true},
		{m.DebtToEquity, a.th.DebtEquityMax, false},
		{fcfEPS, a.th.FCFEPSRatioMin, true},
	})
	sig := subSignal(passed, total)
	return sig, section(sig, passed, total, []string{
		fmtNum("Current Ratio", m.CurrentRatio),
		fmtNum("D/E", m.DebtToEquity),
		fmtNum("FCF/EPS", fcfEPS),
	})
}

func (a *Analyzer) valuationRatios(m *model.FinancialMetrics) (string, model.SectionReport) {
	// Low multiples pass; high multiples read overvalued.
	passed, total := score([]criterion{
		{m.PriceToEarnings, a.th.PEMax, false},
		{m.PriceToBook, a.th.PBMax, false},
		{m.PriceToSales, a.th.PSMax, false},
	})
	sig := subSignal(passed, total)
	return sig, section(sig, passed, total, []string{
		fmtNum("P/E", m.PriceToEarnings),
		fmtNum("P/B", m.PriceToBook),
		fmtNum("P/S", m.PriceToSales),
	})
}

// dividends is only scored when the company reports dividend data.
func (a *Analyzer) dividends(m *model.FinancialMetrics) (string, model.SectionReport, bool) {
	if m.DividendYield == nil && m.PayoutRatio == nil {
		return "", model.SectionReport{}, false
	}
	passed, total := score([]criterion{
		{m.DividendYield, a.th.DividendYieldMin, true},
		{m.PayoutRatio, a.th.PayoutRatioMax, false},
	})
	sig := subSignal(passed, total)
	return sig, section(sig, passed, total, []string{
		fmtPct("Dividend Yield", m.DividendYield),
		fmtPct("Payout Ratio", m.PayoutRatio),
	}), true
}

// Analyze scores the most recent metrics snapshot and aggregates section
// sentiments into an overall call by vote count.
func (a *Analyzer) Analyze(ticker string, m *model.FinancialMetrics) (*model.FundamentalReport, error) {
	if m == nil {
		return nil, fmt.Errorf("fundamental analysis %s: no financial metrics", ticker)
	}

	sections := make(map[string]model.SectionReport, 5)
	var sigs []string

	sig, rep := a.profitability(m)
	sections["profitability"] = rep
	sigs = append(sigs, sig)

	sig, rep = a.growth(m)
	sections["growth"] = rep
	sigs = append(sigs, sig)

	sig, rep = a.health(m)
	sections["health"] = rep
	sigs = append(sigs, sig)

	sig, rep = a.valuationRatios(m)
	sections["valuation"] = rep
	sigs = append(sigs, sig)

	if sig, rep, ok := a.dividends(m); ok {
		sections["dividends"] = rep
		sigs = append(sigs, sig)
	}

	var votes model.SentimentVotes
	for _, s := range sigs {
		switch s {
		case "bullish":
			votes.Bullish++
		case "bearish":
			votes.Bearish++
		default:
			votes.Neutral++
		}
	}

	overall := "neutral"
	if votes.Bullish > votes.Bearish {
		overall = "bullish"
	} else if votes.Bearish > votes.Bullish {
		overall = "bearish"
	}

	confidence := 0
	if len(sigs) > 0 {
		stronger := votes.Bullish
		if votes.Bearish > stronger {
			stronger = votes.Bearish
		}
		confidence = int(model.Round(float64(stronger)/float64(len(sigs))*100, 0))
	}

	asOf := m.ReportPeriod
	if asOf == "" {
		asOf = "N/A"
	}

	return &model.FundamentalReport{
		Ticker:        ticker,
		OverallSignal: overall,
		Confidence:    confidence,
		Votes:         votes,
		Sections:      sections,
		AsOf:          asOf,
	}, nil
}
