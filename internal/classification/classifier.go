// Package classification decides what kind of structured content an
// assistant response carries.
package classification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/solsticehq/lumen/internal/model"
)

// Hand-assigned rule confidences. These are contractual constants consumed
// verbatim by the synthesis gate, not computed from match strength.
const (
	confidenceManifestation = 0.95
	confidenceCrystal       = 0.92
	confidenceTrading       = 0.90
	confidenceAffirmations  = 0.90
	confidenceReading       = 0.93
	confidenceDefault       = 1.0
	confidenceRecovered     = 0.5
)

// Structured types fire only when at least this many structure markers
// co-occur with a topic keyword.
const minStructureMarkers = 2

// AffirmationsOnly fires on at least this many marker-shaped lines.
const minAffirmationLines = 3

// rule is one priority-ordered classifier entry. The first rule whose
// predicate matches wins; later rules are not evaluated.
type rule struct {
	matches    func(text, lower string) bool
	name       string
	rtype      model.ResponseType
	confidence float64
}

// Classifier classifies raw response text into a response type with a
// confidence score. It is a pure function over the text: no side effects,
// and it never returns an error or panics to the caller.
type Classifier struct {
	rules              []rule
	affirmationMarkers []*regexp.Regexp
}

// New creates a Classifier from the given pattern library.
func New(lib Library) (*Classifier, error) {
	markers := make([]*regexp.Regexp, 0, len(lib.AffirmationMarkers))
	for _, pattern := range lib.AffirmationMarkers {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile affirmation marker %q: %w", pattern, err)
		}
		markers = append(markers, re)
	}

	c := &Classifier{affirmationMarkers: markers}

	structured := func(rtype model.ResponseType) func(text, lower string) bool {
		topics := lib.Topics[rtype]
		structureMarkers := lib.StructureMarkers[rtype]
		return func(_, lower string) bool {
			return containsAny(lower, topics) &&
				countMarkers(lower, structureMarkers) >= minStructureMarkers
		}
	}
	topical := func(rtype model.ResponseType) func(text, lower string) bool {
		topics := lib.Topics[rtype]
		return func(_, lower string) bool {
			return containsAny(lower, topics)
		}
	}

	// Fixed priority order; the fallback GeneralChat rule is implicit.
	c.rules = []rule{
		{
			name:       "Manifestation Goal",
			rtype:      model.ResponseManifestationGoal,
			confidence: confidenceManifestation,
			matches:    structured(model.ResponseManifestationGoal),
		},
		{
			name:       "Crystal Recommendation",
			rtype:      model.ResponseCrystalRecommendation,
			confidence: confidenceCrystal,
			matches:    structured(model.ResponseCrystalRecommendation),
		},
		{
			name:       "Trading Analysis",
			rtype:      model.ResponseTradingAnalysis,
			confidence: confidenceTrading,
			matches:    structured(model.ResponseTradingAnalysis),
		},
		{
			name:       "Affirmations Only",
			rtype:      model.ResponseAffirmationsOnly,
			confidence: confidenceAffirmations,
			matches: func(text, _ string) bool {
				return c.countAffirmationLines(text) >= minAffirmationLines
			},
		},
		{
			name:       "I-Ching Reading",
			rtype:      model.ResponseIChingReading,
			confidence: confidenceReading,
			matches:    topical(model.ResponseIChingReading),
		},
		{
			name:       "Tarot Reading",
			rtype:      model.ResponseTarotReading,
			confidence: confidenceReading,
			matches:    topical(model.ResponseTarotReading),
		},
	}

	return c, nil
}

// NewDefault creates a Classifier with the default pattern library.
func NewDefault() *Classifier {
	c, err := New(DefaultLibrary())
	if err != nil {
		// The default library is compiled-in and covered by tests; a bad
		// pattern here is a programming error.
		panic(err)
	}
	return c
}

// Classify evaluates the rules in priority order and returns the first
// match. Empty input is definite general chat. Any internal panic is
// recovered and downgraded to a GeneralChat result with an attached note;
// classification must never throw at the caller.
func (c *Classifier) Classify(text string) (result model.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.DetectionResult{
				Type:       model.ResponseGeneralChat,
				Confidence: confidenceRecovered,
				RawText:    text,
				Note:       fmt.Sprintf("classification error: %v", r),
			}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return model.DetectionResult{
			Type:       model.ResponseGeneralChat,
			Confidence: confidenceDefault,
			RawText:    text,
		}
	}

	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if r.matches(text, lower) {
			return model.DetectionResult{
				Type:       r.rtype,
				Confidence: r.confidence,
				RawText:    text,
			}
		}
	}

	return model.DetectionResult{
		Type:       model.ResponseGeneralChat,
		Confidence: confidenceDefault,
		RawText:    text,
	}
}

// RuleCount returns the number of non-fallback rules.
func (c *Classifier) RuleCount() int {
	return len(c.rules)
}

func (c *Classifier) countAffirmationLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		for _, re := range c.affirmationMarkers {
			if re.MatchString(line) {
				count++
				break
			}
		}
	}
	return count
}

// containsAny reports whether any keyword appears in the lowercased text.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// countMarkers counts how many distinct markers appear in the text.
func countMarkers(lower string, markers []string) int {
	count := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			count++
		}
	}
	return count
}
