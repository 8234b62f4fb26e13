package model

// IndicatorReport combines one indicator's current snapshot with its
// backtest summary.
type IndicatorReport struct {
	Name     string             `json:"name"`
	Signal   Action             `json:"signal"`
	Reason   string             `json:"reason"`
	Values   map[string]float64 `json:"values,omitempty"`
	Backtest BacktestSummary    `json:"backtest"`
}

// VoteSummary counts the buy/hold/sell snapshot calls behind an overall
// signal. Neutral (insufficient data) snapshots are not counted.
type VoteSummary struct {
	Buy  int `json:"buy"`
	Sell int `json:"sell"`
	Hold int `json:"hold"`
}

// TechnicalReport is the full technical-analysis output for one ticker.
type TechnicalReport struct {
	Ticker        string                     `json:"ticker"`
	Price         float64                    `json:"price"`
	AsOf          string                     `json:"as_of"`
	Indicators    map[string]IndicatorReport `json:"indicators"`
	OverallSignal Action                     `json:"overall_technical_signal"`
	Votes         VoteSummary                `json:"vote_summary"`
}

// SectionReport is one fundamental-analysis section result.
type SectionReport struct {
	Signal  Action `json:"signal"`
	Score   string `json:"score"` // e.g. "3/5": criteria passed / criteria with data
	Details string `json:"details"`
}

// SentimentVotes counts bullish/bearish/neutral section signals.
type SentimentVotes struct {
	Bullish int `json:"bullish"`
	Bearish int `json:"bearish"`
	Neutral int `json:"neutral"`
}

// FundamentalReport is the threshold-scoring output over a metrics snapshot.
type FundamentalReport struct {
	Ticker        string                   `json:"ticker"`
	OverallSignal string                   `json:"overall_signal"` // bullish | neutral | bearish
	Confidence    int                      `json:"confidence"`
	Votes         SentimentVotes           `json:"vote_summary"`
	Sections      map[string]SectionReport `json:"sections"`
	AsOf          string                   `json:"as_of"`
}

// MethodReport is one valuation method's result.
type MethodReport struct {
	Signal         string   `json:"signal"`
	IntrinsicValue *float64 `json:"intrinsic_value,omitempty"`
	MarketCap      float64  `json:"market_cap"`
	GapPct         *float64 `json:"gap_%,omitempty"`
	WeightPct      float64  `json:"weight_%"`
}

// ValuationReport combines the four intrinsic-value methods.
type ValuationReport struct {
	Ticker         string                  `json:"ticker"`
	MarketCap      float64                 `json:"market_cap"`
	OverallSignal  string                  `json:"overall_signal"`
	Confidence     int                     `json:"confidence"`
	WeightedGapPct float64                 `json:"weighted_gap_%"`
	Interpretation string                  `json:"interpretation"`
	Methods        map[string]MethodReport `json:"methods"`
}

// AgentSignal summarizes one analysis domain inside a verdict.
type AgentSignal struct {
	Signal string `json:"signal"`
	Detail string `json:"detail,omitempty"`
}

// BreakdownEntry is a per-indicator / per-section line in the verdict.
type BreakdownEntry struct {
	Signal         string   `json:"signal"`
	BacktestWinPct *float64 `json:"backtest_win_rate_%,omitempty"`
	BacktestTrades *int     `json:"backtest_trades,omitempty"`
	GapPct         *float64 `json:"gap_%,omitempty"`
}

// Verdict is the cross-domain aggregation result, optionally enriched
// with an AI narrative.
type Verdict struct {
	Signal        string                    `json:"signal"`
	Confidence    int                       `json:"confidence"`
	WeightedScore float64                   `json:"weighted_score"`
	AgentSignals  map[string]AgentSignal    `json:"agent_signals"`
	Breakdown     map[string]BreakdownEntry `json:"indicator_breakdown"`

	AIVerdict    string   `json:"ai_verdict,omitempty"`
	AIConfidence int      `json:"ai_confidence,omitempty"`
	Reasoning    string   `json:"reasoning,omitempty"`
	Supporting   []string `json:"supporting_arguments,omitempty"`
	KeyRisks     []string `json:"key_risks,omitempty"`
}

// Analysis is the complete per-ticker output of the pipeline.
type Analysis struct {
	Ticker      string             `json:"ticker"`
	Price       float64            `json:"price"`
	AsOf        string             `json:"as_of"`
	Technical   *TechnicalReport   `json:"technical,omitempty"`
	Fundamental *FundamentalReport `json:"fundamental,omitempty"`
	Valuation   *ValuationReport   `json:"valuation,omitempty"`
	Verdict     *Verdict           `json:"verdict,omitempty"`
}
