package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"EquityLens/internal/model"
)

// DefaultModel is the Claude model used for narrative verdicts.
const DefaultModel = "claude-sonnet-4-6"

const systemPrompt = `You are an expert quantitative equity analyst. You will be given structured
analysis from three agents (technical, fundamental, valuation) for a stock.

Your job:
1. Synthesize all signals into a final verdict: BUY, HOLD, or SELL.
2. Provide a confidence score 0-100.
3. Write a 3-5 sentence reasoning paragraph in clear English covering:
   - What the technical signals say about price momentum
   - What fundamentals reveal about business quality
   - What valuation says about whether the price is fair
   - Any key conflicts or caveats the investor should know
4. List 3 key supporting arguments and 2 key risks.

Respond ONLY with valid JSON matching this schema exactly:
{
  "verdict": "BUY" | "HOLD" | "SELL",
  "confidence": <int 0-100>,
  "reasoning": "<paragraph>",
  "supporting_arguments": ["...", "...", "..."],
  "key_risks": ["...", "..."]
}`

// Advisor produces the final verdict: rule-based weighting, optionally
// enriched by a Claude narrative when an API key is configured. Any API
// or parse failure degrades to the rule-based result instead of failing
// the analysis.
type Advisor struct {
	client  anthropic.Client
	model   string
	enabled bool
}

// NewAdvisor builds an Advisor. An empty API key disables the AI pass.
func NewAdvisor(apiKey, modelName string) *Advisor {
	if apiKey == "" {
		return &Advisor{}
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Advisor{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   modelName,
		enabled: true,
	}
}

type aiOutput struct {
	Verdict    string   `json:"verdict"`
	Confidence int      `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Supporting []string `json:"supporting_arguments"`
	KeyRisks   []string `json:"key_risks"`
}

// Verdict aggregates the domain reports. filingsExcerpt may carry a
// short passage from a recent filing for extra context; empty is fine.
func (a *Advisor) Verdict(ctx context.Context, ticker string, tech *model.TechnicalReport,
	fund *model.FundamentalReport, valu *model.ValuationReport, filingsExcerpt string) *model.Verdict {

	rule := RuleBased(tech, fund, valu)
	if !a.enabled {
		rule.Reasoning = "AI verdict unavailable (no API key). Rule-based result shown."
		return rule
	}

	payload := a.buildPayload(ticker, rule, tech, fund, valu, filingsExcerpt)
	out, err := a.ask(ctx, payload)
	if err != nil {
		log.Printf("[WARN] AI verdict for %s failed, falling back to rule-based: %v", ticker, err)
		rule.AIVerdict = strings.ToUpper(rule.Signal)
		rule.AIConfidence = rule.Confidence
		rule.Reasoning = fmt.Sprintf("AI verdict generation failed (%v). Rule-based result used.", err)
		return rule
	}

	rule.AIVerdict = out.Verdict
	rule.AIConfidence = out.Confidence
	rule.Reasoning = out.Reasoning
	rule.Supporting = out.Supporting
	rule.KeyRisks = out.KeyRisks
	return rule
}

func (a *Advisor) buildPayload(ticker string, rule *model.Verdict, tech *model.TechnicalReport,
	fund *model.FundamentalReport, valu *model.ValuationReport, filingsExcerpt string) map[string]any {

	payload := map[string]any{
		"ticker":             ticker,
		"rule_based_verdict": rule,
	}
	if tech != nil {
		indicators := make(map[string]any, len(tech.Indicators))
		for key, rep := range tech.Indicators {
			indicators[key] = map[string]any{
				"signal":          rep.Signal,
				"reason":          rep.Reason,
				"backtest_win_%":  rep.Backtest.WinRatePct,
				"backtest_trades": rep.Backtest.NTrades,
			}
		}
		payload["technical_summary"] = map[string]any{
			"overall":    tech.OverallSignal,
			"votes":      tech.Votes,
			"indicators": indicators,
		}
	}
	if fund != nil {
		payload["fundamental_summary"] = map[string]any{
			"overall":    fund.OverallSignal,
			"confidence": fund.Confidence,
			"sections":   fund.Sections,
		}
	}
	if valu != nil {
		payload["valuation_summary"] = map[string]any{
			"overall":      valu.OverallSignal,
			"weighted_gap": valu.WeightedGapPct,
			"methods":      valu.Methods,
		}
	}
	if filingsExcerpt != "" {
		// Keep the excerpt short so the analysis payload stays the focus.
		if len(filingsExcerpt) > 2000 {
			filingsExcerpt = filingsExcerpt[:2000]
		}
		payload["filings_excerpt"] = filingsExcerpt
	}
	return payload
}

func (a *Advisor) ask(ctx context.Context, payload map[string]any) (*aiOutput, error) {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(string(body))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic call: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return parseAIOutput(text.String())
}

// parseAIOutput decodes the model's JSON answer, tolerating markdown
// code fences around it.
func parseAIOutput(raw string) (*aiOutput, error) {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")

	var out aiOutput
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil {
		return nil, fmt.Errorf("parse AI response: %w", err)
	}
	return &out, nil
}
