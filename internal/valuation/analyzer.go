package valuation

import (
	"fmt"

	"EquityLens/internal/model"
)

// Method weights in the blended gap. EV/EBITDA and residual income get
// less weight than the cash-flow models.
var weights = map[string]float64{
	"dcf":             0.35,
	"owner_earnings":  0.35,
	"ev_ebitda":       0.20,
	"residual_income": 0.10,
}

const (
	bullishGap = 0.15  // weighted gap above this reads undervalued
	bearishGap = -0.15 // below this reads overvalued
)

// Analyzer blends four intrinsic-value estimates against market cap.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze values a company from its metric history and most recent two
// line-item periods. Methods whose inputs cannot support an estimate are
// excluded and the remaining weights renormalized; all methods failing
// is an input problem reported as an error.
func (a *Analyzer) Analyze(ticker string, metrics []model.FinancialMetrics, curr, prev *model.LineItems, marketCap float64) (*model.ValuationReport, error) {
	if len(metrics) == 0 {
		return nil, fmt.Errorf("valuation %s: no financial metrics", ticker)
	}
	if marketCap <= 0 {
		return nil, fmt.Errorf("valuation %s: market cap unavailable", ticker)
	}
	m0 := metrics[0]
	if curr == nil {
		curr = &model.LineItems{}
	}

	wcChange := 0.0
	if curr.WorkingCapital != nil && prev != nil && prev.WorkingCapital != nil {
		wcChange = *curr.WorkingCapital - *prev.WorkingCapital
	}

	growth := 0.05
	if m0.EarningsGrowth != nil && *m0.EarningsGrowth != 0 {
		growth = *m0.EarningsGrowth
	}
	bvGrowth := 0.03
	if m0.BookValueGrowth != nil && *m0.BookValueGrowth != 0 {
		bvGrowth = *m0.BookValueGrowth
	}

	values := map[string]float64{
		"dcf": discountedCashFlow(curr.FreeCashFlow, growth, 0.10, 0.03, 5),
		"owner_earnings": ownerEarnings(curr.NetIncome, curr.DepreciationAndAmortization,
			curr.CapitalExpenditure, wcChange, growth, 0.15, 0.25, 5),
		"ev_ebitda":       evEBITDA(metrics),
		"residual_income": residualIncome(marketCap, curr.NetIncome, m0.PriceToBook, bvGrowth, 0.10, 0.03, 5),
	}

	gaps := make(map[string]float64)
	totalWeight := 0.0
	for name, val := range values {
		if val > 0 {
			gaps[name] = (val - marketCap) / marketCap
			totalWeight += weights[name]
		}
	}
	if totalWeight == 0 {
		return nil, fmt.Errorf("valuation %s: all valuation methods returned zero", ticker)
	}

	weightedGap := 0.0
	for name, gap := range gaps {
		weightedGap += gap * weights[name]
	}
	weightedGap /= totalWeight

	signal := "neutral"
	interpretation := "Stock appears fairly valued"
	switch {
	case weightedGap > bullishGap:
		signal = "bullish"
		interpretation = "Stock appears undervalued"
	case weightedGap < bearishGap:
		signal = "bearish"
		interpretation = "Stock appears overvalued"
	}

	confidence := weightedGap / 0.30 * 100
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 100 {
		confidence = 100
	}

	methods := make(map[string]model.MethodReport, len(values))
	for name, val := range values {
		rep := model.MethodReport{
			Signal:    "neutral",
			MarketCap: model.Round(marketCap, 2),
			WeightPct: model.Round(weights[name]*100, 0),
		}
		if gap, ok := gaps[name]; ok {
			v := model.Round(val, 2)
			g := model.Round(gap*100, 1)
			rep.IntrinsicValue = &v
			rep.GapPct = &g
			if gap > bullishGap {
				rep.Signal = "bullish"
			} else if gap < bearishGap {
				rep.Signal = "bearish"
			}
		}
		methods[name] = rep
	}

	return &model.ValuationReport{
		Ticker:         ticker,
		MarketCap:      model.Round(marketCap, 2),
		OverallSignal:  signal,
		Confidence:     int(model.Round(confidence, 0)),
		WeightedGapPct: model.Round(weightedGap*100, 1),
		Interpretation: interpretation,
		Methods:        methods,
	}, nil
}
