package indicator

import "EquityLens/internal/model"

// Indicator is the contract every generator satisfies. Series is the
// strict event stream the backtest engine consumes: a signal only fires
// on a crossing, using bars 0..i at index i, never future bars. Snapshot
// classifies the latest bar's regime for display and may report buy/sell
// on sustained alignment where Series stays silent. The two paths are
// deliberately separate; unifying them would either re-enter on every
// aligned bar or hide the current regime from users.
type Indicator interface {
	// Key is the stable registry key, e.g. "rsi".
	Key() string
	// Name is the display label, e.g. "RSI 14".
	Name() string
	// Series maps bars to one signal per bar.
	Series(bars []model.PriceBar) []model.Signal
	// Snapshot classifies the latest bar.
	Snapshot(bars []model.PriceBar) model.Snapshot
}

// Default parameters, matching the common textbook settings.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStd    = 2.0
	DefaultSMAFast         = 50
	DefaultSMASlow         = 200
	DefaultEMAFast         = 12
	DefaultEMASlow         = 26
	DefaultRSIPeriod       = 14
	DefaultRSIOversold     = 30
	DefaultRSIOverbought   = 70
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
)

// Keys lists the registry in canonical order.
var Keys = []string{"bollinger", "sma", "ema", "rsi", "macd"}

var builders = map[string]func() Indicator{
	"bollinger": func() Indicator { return NewBollinger(DefaultBollingerPeriod, DefaultBollingerStd) },
	"sma":       func() Indicator { return NewSMACross(DefaultSMAFast, DefaultSMASlow) },
	"ema":       func() Indicator { return NewEMACross(DefaultEMAFast, DefaultEMASlow) },
	"rsi":       func() Indicator { return NewRSI(DefaultRSIPeriod, DefaultRSIOversold, DefaultRSIOverbought) },
	"macd":      func() Indicator { return NewMACD(DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal) },
}

// New returns a default-configured indicator for a registry key.
func New(key string) (Indicator, bool) {
	b, ok := builders[key]
	if !ok {
		return nil, false
	}
	return b(), true
}

// FromKeys resolves registry keys to indicators, preserving canonical
// order and silently dropping unknown keys. Nil or empty means all five.
func FromKeys(keys []string) []Indicator {
	if len(keys) == 0 {
		keys = Keys
	}
	requested := make(map[string]bool, len(keys))
	for _, k := range keys {
		requested[k] = true
	}
	inds := make([]Indicator, 0, len(keys))
	for _, k := range Keys {
		if requested[k] {
			ind, _ := New(k)
			inds = append(inds, ind)
		}
	}
	return inds
}
