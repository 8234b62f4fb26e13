package notifier

import (
	"fmt"
	"sort"
	"strings"

	"EquityLens/internal/model"
)

var signalEmoji = map[string]string{
	"buy": "🟢", "bullish": "🟢", "BUY": "🟢",
	"sell": "🔴", "bearish": "🔴", "SELL": "🔴",
	"hold": "🟡", "neutral": "⚪", "HOLD": "🟡",
}

func emoji(sig string) string {
	if e, ok := signalEmoji[sig]; ok {
		return e
	}
	return "⚪"
}

// FormatAnalysis renders a full analysis as a Telegram HTML message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %.2f | %s\n\n", a.Ticker, a.Price, a.AsOf))

	if a.Technical != nil {
		b.WriteString(fmt.Sprintf("📈 <b>Technical:</b> %s %s (buy %d / sell %d / hold %d)\n",
			emoji(string(a.Technical.OverallSignal)), strings.ToUpper(string(a.Technical.OverallSignal)),
			a.Technical.Votes.Buy, a.Technical.Votes.Sell, a.Technical.Votes.Hold))

		keys := make([]string, 0, len(a.Technical.Indicators))
		for k := range a.Technical.Indicators {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rep := a.Technical.Indicators[k]
			b.WriteString(fmt.Sprintf("  %s %s: %s (win %.1f%%, %d trades)\n",
				emoji(string(rep.Signal)), rep.Name, rep.Signal,
				rep.Backtest.WinRatePct, rep.Backtest.NTrades))
		}
		b.WriteString("\n")
	}

	if a.Fundamental != nil {
		b.WriteString(fmt.Sprintf("🏦 <b>Fundamental:</b> %s %s (%d%% confidence)\n",
			emoji(a.Fundamental.OverallSignal), a.Fundamental.OverallSignal, a.Fundamental.Confidence))
	}
	if a.Valuation != nil {
		b.WriteString(fmt.Sprintf("💰 <b>Valuation:</b> %s %s (gap %+.1f%%)\n",
			emoji(a.Valuation.OverallSignal), a.Valuation.OverallSignal, a.Valuation.WeightedGapPct))
	}

	if a.Verdict != nil {
		v := a.Verdict
		b.WriteString(fmt.Sprintf("\n⚖️ <b>Verdict:</b> %s %s (%d%%)\n",
			emoji(v.Signal), strings.ToUpper(v.Signal), v.Confidence))
		if v.AIVerdict != "" && v.AIVerdict != strings.ToUpper(v.Signal) {
			b.WriteString(fmt.Sprintf("🤖 AI: %s %s (%d%%)\n", emoji(v.AIVerdict), v.AIVerdict, v.AIConfidence))
		}
		if v.Reasoning != "" {
			b.WriteString(fmt.Sprintf("\n%s\n", v.Reasoning))
		}
		if len(v.KeyRisks) > 0 {
			b.WriteString("\n⚠️ <b>Key risks:</b>\n")
			for _, r := range v.KeyRisks {
				b.WriteString("  • " + r + "\n")
			}
		}
	}

	return b.String()
}

// FormatError renders a per-ticker failure notice.
func FormatError(ticker string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> analysis failed: %v", ticker, err)
}
