// Package model defines the core domain models used throughout the application.
package model

// ResponseType classifies what kind of content an assistant response carries.
type ResponseType string

// Response type constants, in classifier priority order.
const (
	// ResponseManifestationGoal is a full manifestation goal package.
	ResponseManifestationGoal ResponseType = "MANIFESTATION_GOAL"
	// ResponseCrystalRecommendation is a structured crystal recommendation.
	ResponseCrystalRecommendation ResponseType = "CRYSTAL_RECOMMENDATION"
	// ResponseTradingAnalysis is a market/chart analysis.
	ResponseTradingAnalysis ResponseType = "TRADING_ANALYSIS"
	// ResponseAffirmationsOnly is a list of affirmations without a goal.
	ResponseAffirmationsOnly ResponseType = "AFFIRMATIONS_ONLY"
	// ResponseIChingReading is an I-Ching hexagram reading.
	ResponseIChingReading ResponseType = "ICHING_READING"
	// ResponseTarotReading is a tarot card reading.
	ResponseTarotReading ResponseType = "TAROT_READING"
	// ResponseGeneralChat is plain conversation with no structured content.
	ResponseGeneralChat ResponseType = "GENERAL_CHAT"
)

// DetectionResult is the outcome of classifying a single response.
// Confidence is a hand-assigned constant per rule, not a calibrated
// probability.
type DetectionResult struct {
	Type       ResponseType `json:"type"`
	RawText    string       `json:"raw_text"`
	Note       string       `json:"note,omitempty"`
	Confidence float64      `json:"confidence"`
}
