package extraction

import "regexp"

// Contractual caps and defaults. Downstream UI and fixtures depend on the
// exact values, so they are single-sourced here.
const (
	// MaxAffirmations caps the extracted affirmation list.
	MaxAffirmations = 10
	// MaxCrystals caps the extracted crystal list.
	MaxCrystals = 5
	// DefaultTitle is used when no goal marker matches.
	DefaultTitle = "Mục tiêu mới"
	// DefaultTimelineMonths is the non-null timeline fallback.
	DefaultTimelineMonths = 6

	// An affirmation line must keep more than this many runes after its
	// marker and quotes are stripped.
	minAffirmationRunes = 10
	// An action task line must keep more than this many runes after its
	// marker is stripped.
	minTaskRunes = 5

	millionScale = 1_000_000
)

// titlePatterns are tried in order; the first capture wins.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*🎯\s*(?:MỤC TIÊU|GOAL)?\s*[:：]?\s*(.+)$`),
	regexp.MustCompile(`(?im)\bmanifest(?:ing|ation)?\b\s*[:：]?\s+([^\n]+)`),
	regexp.MustCompile(`(?im)^\s*mục tiêu\s*[:：]\s*(.+)$`),
	regexp.MustCompile(`(?im)^\s*goal\s*[:：]\s*(.+)$`),
}

// amountPattern matches a number followed by a million-scale word. Thousands
// separators inside the number are stripped before parsing.
var amountPattern = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})*|\d+)\s*(?:triệu|million(?:s)?|tr)\b`)

// timelinePatterns are checked in month, week, day order; the first numeric
// match decides the unit.
var (
	monthPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:tháng|months?)`)
	weekPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:tuần|weeks?)`)
	dayPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:ngày|days?)`)
)

// lineMarkerPattern strips the leading sparkle/bullet/dash/number marker
// from an affirmation or task line.
var lineMarkerPattern = regexp.MustCompile(`^\s*(?:[✨🌟💫⭐]|[-–•*+]|\d+[.)])\s*`)

// weekHeaderPattern splits text into per-week action step sections.
var weekHeaderPattern = regexp.MustCompile(`(?i)(?:week|tuần)\s*(\d+)`)

// crystalHeaderPattern recognizes the explicit crystals section; crystals
// are never collected outside it.
var crystalHeaderPattern = regexp.MustCompile(`(?i)💎\s*.*crystal|crystal\s+recommendation`)

// bulletLinePattern matches a bullet/dash item inside a section.
var bulletLinePattern = regexp.MustCompile(`^\s*(?:[-–•*+]|\d+[.)])\s*(.+)$`)
