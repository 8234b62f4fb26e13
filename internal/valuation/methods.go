package valuation

import (
	"math"
	"sort"

	"EquityLens/internal/model"
)

// Intrinsic-value methods. Each returns an equity value in the market
// cap's units, or 0 when its inputs cannot support an estimate; zeros are
// excluded from the weighted aggregate rather than treated as "worth
// nothing".

// discountedCashFlow projects free cash flow over a horizon and
// discounts it plus a Gordon-growth terminal value.
func discountedCashFlow(fcf *float64, growthRate, discountRate, terminalGrowth float64, years int) float64 {
	if fcf == nil || *fcf <= 0 {
		return 0
	}
	pv := 0.0
	for yr := 1; yr <= years; yr++ {
		pv += *fcf * math.Pow(1+growthRate, float64(yr)) / math.Pow(1+discountRate, float64(yr))
	}
	terminal := *fcf * math.Pow(1+growthRate, float64(years)) * (1 + terminalGrowth) /
		(discountRate - terminalGrowth)
	return pv + terminal/math.Pow(1+discountRate, float64(years))
}

// ownerEarnings values net income plus depreciation minus capex and
// working-capital change, discounted at a demanding required return and
// haircut by a margin of safety.
func ownerEarnings(netIncome, depreciation, capex *float64, wcChange, growthRate, requiredReturn, marginOfSafety float64, years int) float64 {
	if netIncome == nil || depreciation == nil || capex == nil {
		return 0
	}
	oe := *netIncome + *depreciation - *capex - wcChange
	if oe <= 0 {
		return 0
	}
	pv := 0.0
	for yr := 1; yr <= years; yr++ {
		pv += oe * math.Pow(1+growthRate, float64(yr)) / math.Pow(1+requiredReturn, float64(yr))
	}
	tg := math.Min(growthRate, 0.03)
	terminal := oe * math.Pow(1+growthRate, float64(years)) * (1 + tg) / (requiredReturn - tg)
	pv += terminal / math.Pow(1+requiredReturn, float64(years))
	return pv * (1 - marginOfSafety)
}

// evEBITDA re-prices current EBITDA at the historical median EV/EBITDA
// multiple and backs out implied equity value.
func evEBITDA(metrics []model.FinancialMetrics) float64 {
	if len(metrics) == 0 {
		return 0
	}
	m0 := metrics[0]
	if m0.EnterpriseValue == nil || m0.EVToEBITDARatio == nil || *m0.EVToEBITDARatio == 0 {
		return 0
	}
	ebitda := *m0.EnterpriseValue / *m0.EVToEBITDARatio

	var ratios []float64
	for _, m := range metrics {
		if m.EVToEBITDARatio != nil && *m.EVToEBITDARatio != 0 {
			ratios = append(ratios, *m.EVToEBITDARatio)
		}
	}
	if len(ratios) == 0 {
		return 0
	}

	impliedEV := median(ratios) * ebitda
	netDebt := *m0.EnterpriseValue
	if m0.MarketCap != nil {
		netDebt -= *m0.MarketCap
	}
	return math.Max(impliedEV-netDebt, 0)
}

// residualIncome capitalizes earnings in excess of the equity charge on
// book value, with a 20% haircut.
func residualIncome(marketCap float64, netIncome, pbRatio *float64, bvGrowth, costOfEquity, terminalGrowth float64, years int) float64 {
	if marketCap == 0 || netIncome == nil || pbRatio == nil || *pbRatio <= 0 {
		return 0
	}
	bookValue := marketCap / *pbRatio
	ri0 := *netIncome - costOfEquity*bookValue
	if ri0 <= 0 {
		return 0
	}
	pv := 0.0
	for yr := 1; yr <= years; yr++ {
		pv += ri0 * math.Pow(1+bvGrowth, float64(yr)) / math.Pow(1+costOfEquity, float64(yr))
	}
	terminal := ri0 * math.Pow(1+bvGrowth, float64(years+1)) / (costOfEquity - terminalGrowth)
	pv += terminal / math.Pow(1+costOfEquity, float64(years))
	return (bookValue + pv) * 0.80
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
