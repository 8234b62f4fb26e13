package technical

import (
	"fmt"
	"log"

	"EquityLens/internal/backtest"
	"EquityLens/internal/indicator"
	"EquityLens/internal/model"
)

// Analyzer runs a set of indicators over one price series: each gets a
// current-state snapshot plus a full backtest, and the snapshot calls are
// combined into a majority-vote overall signal.
type Analyzer struct {
	engine *backtest.Engine
}

func NewAnalyzer(engine *backtest.Engine) *Analyzer {
	return &Analyzer{engine: engine}
}

// Run analyzes the requested registry keys (nil means all five).
func (a *Analyzer) Run(series *model.PriceSeries, keys []string) (*model.TechnicalReport, error) {
	return a.RunIndicators(series, indicator.FromKeys(keys))
}

// RunIndicators analyzes explicitly configured indicators, for callers
// overriding windows or thresholds per request.
func (a *Analyzer) RunIndicators(series *model.PriceSeries, inds []indicator.Indicator) (*model.TechnicalReport, error) {
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("technical analysis: %w", err)
	}
	if len(inds) == 0 {
		return nil, fmt.Errorf("technical analysis: no indicators requested")
	}

	reports := make(map[string]model.IndicatorReport, len(inds))
	var votes model.VoteSummary

	for _, ind := range inds {
		snap := ind.Snapshot(series.Bars)
		result, err := a.engine.Run(series, ind.Series(series.Bars), ind.Name())
		if err != nil {
			return nil, err
		}

		reports[ind.Key()] = model.IndicatorReport{
			Name:     ind.Name(),
			Signal:   snap.Signal,
			Reason:   snap.Reason,
			Values:   snap.Values,
			Backtest: result.Summary(),
		}

		switch snap.Signal {
		case model.ActionBuy:
			votes.Buy++
		case model.ActionSell:
			votes.Sell++
		case model.ActionHold:
			votes.Hold++
		default:
			// Neutral (insufficient data) carries no vote.
			log.Printf("[INFO] %s: %s snapshot is neutral (%s)", series.Ticker, ind.Key(), snap.Reason)
		}
	}

	last := series.Bars[len(series.Bars)-1]
	return &model.TechnicalReport{
		Ticker:        series.Ticker,
		Price:         model.Round(last.Close, 2),
		AsOf:          last.Date.Format("2006-01-02"),
		Indicators:    reports,
		OverallSignal: overallSignal(votes),
		Votes:         votes,
	}, nil
}

// overallSignal is a simple majority vote; anything short of a strict
// majority resolves to hold.
func overallSignal(v model.VoteSummary) model.Action {
	switch {
	case v.Buy > v.Sell && v.Buy > v.Hold:
		return model.ActionBuy
	case v.Sell > v.Buy && v.Sell > v.Hold:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}
