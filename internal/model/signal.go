package model

// Signal is a per-bar directional instruction produced by a generator.
// The engine acts on it at the next bar's open.
type Signal int

const (
	EnterLong Signal = 1
	ExitLong  Signal = -1
	NoSignal  Signal = 0
)

// Action is a point-in-time directional call rendered to users.
type Action string

const (
	ActionBuy     Action = "buy"
	ActionSell    Action = "sell"
	ActionHold    Action = "hold"
	ActionNeutral Action = "neutral"
)

// Snapshot is the latest-bar classification of an indicator: the current
// regime rather than the most recent cross event.
type Snapshot struct {
	Signal Action             `json:"signal"`
	Reason string             `json:"reason"`
	Values map[string]float64 `json:"values,omitempty"`
}

// InsufficientData builds the neutral snapshot used when the series is
// shorter than the indicator's lookback window.
func InsufficientData(reason string) Snapshot {
	return Snapshot{Signal: ActionNeutral, Reason: reason}
}
