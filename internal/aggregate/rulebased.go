package aggregate

import (
	"fmt"
	"strings"

	"EquityLens/internal/model"
)

// Domain weights for the rule-based verdict.
var domainWeights = map[string]float64{
	"technical":   0.35,
	"fundamental": 0.35,
	"valuation":   0.30,
}

// signalScore maps every signal vocabulary onto one numeric axis.
var signalScore = map[string]float64{
	"buy": 1, "bullish": 1,
	"hold": 0, "neutral": 0,
	"sell": -1, "bearish": -1,
}

const verdictCutoff = 0.15

// RuleBased combines the three domain signals by weighted vote. Missing
// domains score zero, so a technical-only analysis still produces a
// coherent (if low-confidence) verdict.
func RuleBased(tech *model.TechnicalReport, fund *model.FundamentalReport, valu *model.ValuationReport) *model.Verdict {
	techSig, fundSig, valuSig := "hold", "neutral", "neutral"
	if tech != nil {
		techSig = string(tech.OverallSignal)
	}
	if fund != nil {
		fundSig = fund.OverallSignal
	}
	if valu != nil {
		valuSig = valu.OverallSignal
	}

	weighted := signalScore[techSig]*domainWeights["technical"] +
		signalScore[fundSig]*domainWeights["fundamental"] +
		signalScore[valuSig]*domainWeights["valuation"]

	signal := "hold"
	if weighted > verdictCutoff {
		signal = "buy"
	} else if weighted < -verdictCutoff {
		signal = "sell"
	}

	confidence := weighted / 0.50 * 100
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 100 {
		confidence = 100
	}

	agents := map[string]model.AgentSignal{
		"technical":   {Signal: techSig},
		"fundamental": {Signal: fundSig},
		"valuation":   {Signal: valuSig},
	}
	if tech != nil {
		agents["technical"] = model.AgentSignal{
			Signal: techSig,
			Detail: fmt.Sprintf("votes buy=%d sell=%d hold=%d", tech.Votes.Buy, tech.Votes.Sell, tech.Votes.Hold),
		}
	}
	if fund != nil {
		agents["fundamental"] = model.AgentSignal{
			Signal: fundSig,
			Detail: fmt.Sprintf("sections bullish=%d bearish=%d neutral=%d", fund.Votes.Bullish, fund.Votes.Bearish, fund.Votes.Neutral),
		}
	}
	if valu != nil {
		agents["valuation"] = model.AgentSignal{
			Signal: valuSig,
			Detail: fmt.Sprintf("weighted gap %+.1f%%", valu.WeightedGapPct),
		}
	}

	return &model.Verdict{
		Signal:        signal,
		Confidence:    int(model.Round(confidence, 0)),
		WeightedScore: model.Round(weighted, 3),
		AgentSignals:  agents,
		Breakdown:     breakdown(tech, fund, valu),
	}
}

// breakdown flattens every indicator, section, and method into one list
// for dashboards.
func breakdown(tech *model.TechnicalReport, fund *model.FundamentalReport, valu *model.ValuationReport) map[string]model.BreakdownEntry {
	out := make(map[string]model.BreakdownEntry)
	if tech != nil {
		for _, rep := range tech.Indicators {
			win := rep.Backtest.WinRatePct
			trades := rep.Backtest.NTrades
			out[rep.Name] = model.BreakdownEntry{
				Signal:         string(rep.Signal),
				BacktestWinPct: &win,
				BacktestTrades: &trades,
			}
		}
	}
	if fund != nil {
		for name, sec := range fund.Sections {
			out["Fundamental: "+titleCase(name)] = model.BreakdownEntry{Signal: string(sec.Signal)}
		}
	}
	if valu != nil {
		for name, method := range valu.Methods {
			out["Valuation: "+titleCase(name)] = model.BreakdownEntry{
				Signal: method.Signal,
				GapPct: method.GapPct,
			}
		}
	}
	return out
}

func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
