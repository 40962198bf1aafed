// Package extraction pulls typed goal fields out of free-form response
// text using declarative pattern tables with documented fallbacks.
package extraction

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/solsticehq/lumen/internal/model"
)

// Extractor produces a fully populated ExtractedFields record from raw
// text. It is independent of classification: every extraction is always
// attempted and gaps are filled with defaults, so downstream code never
// branches on missing fields.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs every field extraction over the text. Pure and
// deterministic; identical input yields identical output.
func (e *Extractor) Extract(text string) model.ExtractedFields {
	return model.ExtractedFields{
		Title:        extractTitle(text),
		TargetAmount: extractAmount(text),
		Timeline:     extractTimeline(text),
		Affirmations: extractAffirmations(text),
		ActionSteps:  extractActionSteps(text),
		Crystals:     extractCrystals(text),
	}
}

func extractTitle(text string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if title := strings.TrimSpace(m[1]); title != "" {
				return title
			}
		}
	}
	return DefaultTitle
}

func extractAmount(text string) *int64 {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}

	amount := n * millionScale
	return &amount
}

func extractTimeline(text string) model.Timeline {
	if m := monthPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return model.Timeline{Months: n}
		}
	}
	if m := weekPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return model.Timeline{Weeks: n}
		}
	}
	if m := dayPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return model.Timeline{Days: n}
		}
	}
	return model.Timeline{Months: DefaultTimelineMonths}
}

func extractAffirmations(text string) []string {
	affirmations := make([]string, 0, MaxAffirmations)
	for _, line := range strings.Split(text, "\n") {
		if !lineMarkerPattern.MatchString(line) {
			continue
		}
		stripped := lineMarkerPattern.ReplaceAllString(line, "")
		stripped = strings.TrimSpace(stripped)
		stripped = strings.Trim(stripped, `"'“”‘’`)
		if utf8.RuneCountInString(stripped) > minAffirmationRunes {
			affirmations = append(affirmations, stripped)
			if len(affirmations) == MaxAffirmations {
				break
			}
		}
	}
	return affirmations
}

func extractActionSteps(text string) []model.WeekPlan {
	headers := weekHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	if headers == nil {
		return []model.WeekPlan{}
	}

	plans := make([]model.WeekPlan, 0, len(headers))
	for i, header := range headers {
		week, err := strconv.Atoi(text[header[2]:header[3]])
		if err != nil {
			continue
		}

		sectionEnd := len(text)
		if i+1 < len(headers) {
			sectionEnd = headers[i+1][0]
		}
		section := text[header[1]:sectionEnd]

		tasks := []string{}
		for _, line := range strings.Split(section, "\n") {
			m := bulletLinePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			task := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(task) > minTaskRunes {
				tasks = append(tasks, task)
			}
		}

		// Weeks with no qualifying tasks are dropped entirely.
		if len(tasks) > 0 {
			plans = append(plans, model.WeekPlan{Week: week, Tasks: tasks})
		}
	}
	return plans
}

func extractCrystals(text string) []string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if crystalHeaderPattern.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return []string{}
	}

	crystals := make([]string, 0, MaxCrystals)
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
			crystals = append(crystals, strings.TrimSpace(m[1]))
			if len(crystals) == MaxCrystals {
				break
			}
			continue
		}
		if isHeadingLine(line) {
			break
		}
	}
	return crystals
}

// isHeadingLine reports whether a non-bullet line opens a new section,
// ending the crystals block. Headings start with an emoji/symbol or are
// short all-caps lines, optionally colon-terminated.
func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(trimmed)
	if unicode.IsSymbol(first) || first >= 0x1F300 {
		return true
	}

	body := strings.TrimRight(trimmed, ":：")
	if body == "" {
		return false
	}
	hasLetter := false
	for _, r := range body {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
