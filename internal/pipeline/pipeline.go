package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"EquityLens/internal/aggregate"
	"EquityLens/internal/backtest"
	"EquityLens/internal/fundamental"
	"EquityLens/internal/model"
	"EquityLens/internal/provider"
	"EquityLens/internal/technical"
	"EquityLens/internal/valuation"
)

// Options controls one analysis run.
type Options struct {
	Years      int       // price history depth
	Indicators []string  // indicator registry keys; nil = all
	End        time.Time // history end date; zero means now
}

// Pipeline runs the full per-ticker analysis: prices into the technical
// analyzer, fundamentals into the scoring and valuation analyzers, and
// everything into the final verdict. Fundamentals are optional; a
// missing fundamentals provider degrades to a technical-only analysis.
type Pipeline struct {
	prices       provider.PriceProvider
	fundamentals provider.FundamentalsProvider
	technical    *technical.Analyzer
	fundamental  *fundamental.Analyzer
	valuation    *valuation.Analyzer
	advisor      *aggregate.Advisor
}

// New builds a pipeline. fundamentals may be nil.
func New(prices provider.PriceProvider, fundamentals provider.FundamentalsProvider,
	engine *backtest.Engine, advisor *aggregate.Advisor) *Pipeline {
	return &Pipeline{
		prices:       prices,
		fundamentals: fundamentals,
		technical:    technical.NewAnalyzer(engine),
		fundamental:  fundamental.NewAnalyzer(fundamental.DefaultThresholds()),
		valuation:    valuation.NewAnalyzer(),
		advisor:      advisor,
	}
}

// Analyze produces the complete analysis for one ticker. Technical
// analysis failing is fatal; fundamental or valuation failures are
// logged and leave their section nil.
func (p *Pipeline) Analyze(ctx context.Context, ticker string, opts Options) (*model.Analysis, error) {
	if opts.Years <= 0 {
		opts.Years = 3
	}

	series, err := p.prices.PriceHistory(ctx, ticker, opts.Years, opts.End)
	if err != nil {
		return nil, fmt.Errorf("price history %s: %w", ticker, err)
	}

	tech, err := p.technical.Run(series, opts.Indicators)
	if err != nil {
		return nil, err
	}

	var fund *model.FundamentalReport
	var valu *model.ValuationReport
	if p.fundamentals != nil {
		fund, valu = p.runFundamentals(ctx, ticker)
	}

	verdict := p.advisor.Verdict(ctx, ticker, tech, fund, valu, "")

	return &model.Analysis{
		Ticker:      ticker,
		Price:       tech.Price,
		AsOf:        tech.AsOf,
		Technical:   tech,
		Fundamental: fund,
		Valuation:   valu,
		Verdict:     verdict,
	}, nil
}

func (p *Pipeline) runFundamentals(ctx context.Context, ticker string) (*model.FundamentalReport, *model.ValuationReport) {
	metrics, err := p.fundamentals.FinancialMetrics(ctx, ticker, 10)
	if err != nil {
		log.Printf("[WARN] %s: financial metrics unavailable: %v", ticker, err)
		return nil, nil
	}

	fund, err := p.fundamental.Analyze(ticker, &metrics[0])
	if err != nil {
		log.Printf("[WARN] %s: fundamental analysis failed: %v", ticker, err)
	}

	items, err := p.fundamentals.LineItems(ctx, ticker, 2)
	if err != nil {
		log.Printf("[WARN] %s: line items unavailable: %v", ticker, err)
		return fund, nil
	}
	var curr, prev *model.LineItems
	curr = &items[0]
	if len(items) > 1 {
		prev = &items[1]
	}

	marketCap, err := p.fundamentals.MarketCap(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] %s: market cap unavailable: %v", ticker, err)
		return fund, nil
	}

	valu, err := p.valuation.Analyze(ticker, metrics, curr, prev, marketCap)
	if err != nil {
		log.Printf("[WARN] %s: valuation failed: %v", ticker, err)
		return fund, nil
	}
	return fund, valu
}
