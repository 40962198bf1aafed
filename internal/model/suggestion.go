package model

import "time"

// SuggestionKind identifies which ad-hoc detector produced a suggestion.
type SuggestionKind string

// Suggestion kind constants.
const (
	SuggestionPriceAlert       SuggestionKind = "price_alert"
	SuggestionPatternWatch     SuggestionKind = "pattern_watch"
	SuggestionDailyReading     SuggestionKind = "daily_reading"
	SuggestionPortfolioTracker SuggestionKind = "portfolio_tracker"
)

// AlertDirection says which way a price alert should trigger.
type AlertDirection string

// Alert direction constants.
const (
	AlertAbove AlertDirection = "above"
	AlertBelow AlertDirection = "below"
)

// Holding is one detected asset position in a portfolio suggestion.
type Holding struct {
	Coin   string  `json:"coin"`
	Amount float64 `json:"amount"`
}

// SignalContext carries the conversational context the ad-hoc detectors may
// fall back on when the text itself is ambiguous.
type SignalContext struct {
	Coin      string `json:"coin,omitempty"`
	UserInput string `json:"user_input,omitempty"`
}

// Suggestion is an advisory prompt surfaced to the user after scanning a
// response. Suggestions are not persisted by this pipeline; acceptance
// happens elsewhere. Each detector populates only the fields its kind uses.
type Suggestion struct {
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	Kind           SuggestionKind `json:"kind"`
	Title          string         `json:"title"`
	Symbol         string         `json:"symbol,omitempty"`
	Direction      AlertDirection `json:"direction,omitempty"`
	PatternName    string         `json:"pattern_name,omitempty"`
	Timeframe      string         `json:"timeframe,omitempty"`
	ReadingKind    string         `json:"reading_kind,omitempty"`
	ReadingName    string         `json:"reading_name,omitempty"`
	Interpretation string         `json:"interpretation,omitempty"`
	Holdings       []Holding      `json:"holdings,omitempty"`
	TargetPrice    float64        `json:"target_price,omitempty"`
	Valuation      float64        `json:"valuation"`
}
