// Package signals scans response text for transient, non-goal suggestions:
// price alerts, chart-pattern watches, divination-reading saves, and
// portfolio snapshots. Suggestions are advisory prompts only; nothing here
// is persisted.
package signals

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/solsticehq/lumen/internal/model"
)

// readingValidity is how long a saved daily reading stays fresh.
const readingValidity = 24 * time.Hour

// interpretationLimit caps the stored interpretation snippet, in runes.
const interpretationLimit = 300

// Hard-coded fallbacks when a pattern watch names no coin or timeframe.
const (
	fallbackCoin      = "BTC"
	fallbackTimeframe = "4h"
)

// symbolTable normalizes coin names and tickers to canonical symbols.
var symbolTable = map[string]string{
	"bitcoin":  "BTC",
	"btc":      "BTC",
	"ethereum": "ETH",
	"eth":      "ETH",
	"solana":   "SOL",
	"sol":      "SOL",
	"bnb":      "BNB",
	"xrp":      "XRP",
	"dogecoin": "DOGE",
	"doge":     "DOGE",
	"cardano":  "ADA",
	"ada":      "ADA",
}

// chartPatterns maps keyword spellings to canonical pattern names, checked
// in order so detection stays deterministic when several keywords appear.
var chartPatterns = []struct {
	keyword   string
	canonical string
}{
	{"vai đầu vai", "Head & Shoulders"},
	{"head and shoulders", "Head & Shoulders"},
	{"head & shoulders", "Head & Shoulders"},
	{"hai đỉnh", "Double Top"},
	{"double top", "Double Top"},
	{"hai đáy", "Double Bottom"},
	{"double bottom", "Double Bottom"},
	{"cờ tăng", "Bull Flag"},
	{"bull flag", "Bull Flag"},
	{"cờ giảm", "Bear Flag"},
	{"bear flag", "Bear Flag"},
	{"tam giác", "Triangle"},
	{"triangle", "Triangle"},
	{"cốc tay cầm", "Cup & Handle"},
	{"cup and handle", "Cup & Handle"},
}

// majorArcana is the tarot card list the daily-reading detector recognizes.
var majorArcana = []string{
	"the fool", "the magician", "the high priestess", "the empress",
	"the emperor", "the hierophant", "the lovers", "the chariot",
	"strength", "the hermit", "wheel of fortune", "justice",
	"the hanged man", "death", "temperance", "the devil", "the tower",
	"the star", "the moon", "the sun", "judgement", "the world",
}

var (
	coinAlternation = `bitcoin|btc|ethereum|eth|solana|sol|bnb|xrp|dogecoin|doge|cardano|ada`

	// A coin mention followed (within the same clause) by a 4+ digit number.
	priceAlertPattern = regexp.MustCompile(`(?i)\b(` + coinAlternation + `)\b[^\d\n]{0,40}(\d{1,3}(?:[.,]\d{3})+(?:\.\d+)?|\d{4,}(?:\.\d+)?)`)

	// <amount><coin> holding mentions for the portfolio detector.
	holdingPattern = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(` + coinAlternation + `)\b`)

	coinMentionPattern = regexp.MustCompile(`(?i)\b(` + coinAlternation + `)\b`)
	timeframePattern   = regexp.MustCompile(`(?i)\b([1-9]\d?[mhdw])\b`)
	hexagramPattern    = regexp.MustCompile(`(?i)(?:hexagram|quẻ)\s*(?:số\s*)?(\d{1,2})`)
)

var aboveWords = []string{"vượt", "trên", "above", "break", "tăng lên", "lên"}

var belowWords = []string{"dưới", "below", "giảm", "xuống", "drop", "rơi"}

// Detector runs the four independent suggestion scans.
type Detector struct {
	now func() time.Time
}

// New creates a Detector using the wall clock.
func New() *Detector {
	return &Detector{now: time.Now}
}

// NewWithClock creates a Detector with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Detector {
	return &Detector{now: now}
}

// Detect runs every detector over the text and concatenates their results.
// Each detector contributes at most one suggestion. Detection is pure apart
// from reading the clock for the daily-reading expiry.
func (d *Detector) Detect(text string, sctx model.SignalContext) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, 4)

	if s := d.detectPriceAlert(text); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := d.detectPatternWatch(text, sctx); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := d.detectDailyReading(text); s != nil {
		suggestions = append(suggestions, *s)
	}
	if s := d.detectPortfolio(text); s != nil {
		suggestions = append(suggestions, *s)
	}

	return suggestions
}

func (d *Detector) detectPriceAlert(text string) *model.Suggestion {
	m := priceAlertPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	symbol := normalizeSymbol(m[1])
	price, err := parsePrice(m[2])
	if err != nil {
		return nil
	}

	direction := model.AlertAbove
	lower := strings.ToLower(text)
	for _, w := range belowWords {
		if strings.Contains(lower, w) {
			direction = model.AlertBelow
			break
		}
	}
	for _, w := range aboveWords {
		if strings.Contains(lower, w) {
			direction = model.AlertAbove
			break
		}
	}

	return &model.Suggestion{
		Kind:        model.SuggestionPriceAlert,
		Title:       fmt.Sprintf("Tạo cảnh báo giá %s", symbol),
		Symbol:      symbol,
		TargetPrice: price,
		Direction:   direction,
	}
}

func (d *Detector) detectPatternWatch(text string, sctx model.SignalContext) *model.Suggestion {
	lower := strings.ToLower(text)

	var canonical string
	for _, p := range chartPatterns {
		if strings.Contains(lower, p.keyword) {
			canonical = p.canonical
			break
		}
	}
	if canonical == "" {
		return nil
	}

	// Coin resolution order: the response text, the user's own message,
	// the conversation context, then the fallback.
	coin := fallbackCoin
	if m := coinMentionPattern.FindStringSubmatch(text); m != nil {
		coin = normalizeSymbol(m[1])
	} else if m := coinMentionPattern.FindStringSubmatch(sctx.UserInput); m != nil {
		coin = normalizeSymbol(m[1])
	} else if sctx.Coin != "" {
		coin = strings.ToUpper(sctx.Coin)
	}

	timeframe := fallbackTimeframe
	if m := timeframePattern.FindStringSubmatch(text); m != nil {
		timeframe = strings.ToLower(m[1])
	}

	return &model.Suggestion{
		Kind:        model.SuggestionPatternWatch,
		Title:       fmt.Sprintf("Theo dõi mô hình %s trên %s", canonical, coin),
		PatternName: canonical,
		Symbol:      coin,
		Timeframe:   timeframe,
	}
}

func (d *Detector) detectDailyReading(text string) *model.Suggestion {
	var kind, name string

	if m := hexagramPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 64 {
			kind = "iching"
			name = fmt.Sprintf("Hexagram %d", n)
		}
	}
	if kind == "" {
		lower := strings.ToLower(text)
		for _, card := range majorArcana {
			if strings.Contains(lower, card) {
				kind = "tarot"
				name = titleCase(card)
				break
			}
		}
	}
	if kind == "" {
		return nil
	}

	expires := d.now().Add(readingValidity)
	return &model.Suggestion{
		Kind:           model.SuggestionDailyReading,
		Title:          fmt.Sprintf("Lưu %s hôm nay", name),
		ReadingKind:    kind,
		ReadingName:    name,
		Interpretation: truncateRunes(text, interpretationLimit),
		ExpiresAt:      &expires,
	}
}

func (d *Detector) detectPortfolio(text string) *model.Suggestion {
	matches := holdingPattern.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	// Aggregate per coin; the suggestion needs at least two distinct
	// holdings to be worth tracking.
	totals := make(map[string]float64)
	order := make([]string, 0, len(matches))
	for _, m := range matches {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		coin := normalizeSymbol(m[2])
		if _, seen := totals[coin]; !seen {
			order = append(order, coin)
		}
		totals[coin] += amount
	}
	if len(order) < 2 {
		return nil
	}

	holdings := make([]model.Holding, 0, len(order))
	for _, coin := range order {
		holdings = append(holdings, model.Holding{Coin: coin, Amount: totals[coin]})
	}

	// Valuation stays zero; a live price lookup fills it elsewhere.
	return &model.Suggestion{
		Kind:     model.SuggestionPortfolioTracker,
		Title:    fmt.Sprintf("Theo dõi danh mục %d đồng coin", len(holdings)),
		Holdings: holdings,
	}
}

func normalizeSymbol(raw string) string {
	if symbol, ok := symbolTable[strings.ToLower(raw)]; ok {
		return symbol
	}
	return strings.ToUpper(raw)
}

var dotThousandsPattern = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)

func parsePrice(raw string) (float64, error) {
	// Commas are always thousands separators; dots are too when every dot
	// group has exactly three digits ("67.500" is 67500, not 67.5).
	cleaned := strings.ReplaceAll(raw, ",", "")
	if dotThousandsPattern.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "of" && i > 0 {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
