package signals

import (
	"strings"
	"testing"
	"time"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDetectPriceAlert(t *testing.T) {
	d := New()

	tests := []struct {
		name      string
		text      string
		symbol    string
		price     float64
		direction model.AlertDirection
	}{
		{
			name:      "btc break above",
			text:      "BTC có thể break resistance tại 70,000 trong tuần này",
			symbol:    "BTC",
			price:     70000,
			direction: model.AlertAbove,
		},
		{
			name:      "vietnamese dot thousands below",
			text:      "Nếu Bitcoin giảm xuống 67.500 thì nên cân nhắc mua vào",
			symbol:    "BTC",
			price:     67500,
			direction: model.AlertBelow,
		},
		{
			name:      "eth plain number defaults above",
			text:      "Ethereum đang hướng tới 4000",
			symbol:    "ETH",
			price:     4000,
			direction: model.AlertAbove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text, model.SignalContext{})
			require.Len(t, got, 1)

			s := got[0]
			assert.Equal(t, model.SuggestionPriceAlert, s.Kind)
			assert.Equal(t, tt.symbol, s.Symbol)
			assert.Equal(t, tt.price, s.TargetPrice)
			assert.Equal(t, tt.direction, s.Direction)
			assert.Contains(t, s.Title, tt.symbol)
		})
	}
}

func TestDetectPriceAlertNoMatch(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
	}{
		{name: "coin without price", text: "Bitcoin đang rất biến động"},
		{name: "price without coin", text: "Mức 70,000 là quan trọng"},
		{name: "small number ignored", text: "BTC tăng 5 phần trăm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, d.Detect(tt.text, model.SignalContext{}))
		})
	}
}

func TestDetectPatternWatch(t *testing.T) {
	d := New()

	tests := []struct {
		name      string
		text      string
		pattern   string
		symbol    string
		timeframe string
	}{
		{
			name:      "vietnamese head and shoulders",
			text:      "ETH đang hình thành mô hình vai đầu vai trên khung 4h",
			pattern:   "Head & Shoulders",
			symbol:    "ETH",
			timeframe: "4h",
		},
		{
			name:      "bull flag with explicit timeframe",
			text:      "SOL cho thấy bull flag rõ ràng trên chart 1d",
			pattern:   "Bull Flag",
			symbol:    "SOL",
			timeframe: "1d",
		},
		{
			name:      "fallbacks when nothing named",
			text:      "Một tam giác đang hình thành",
			pattern:   "Triangle",
			symbol:    "BTC",
			timeframe: "4h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text, model.SignalContext{})
			require.Len(t, got, 1)

			s := got[0]
			assert.Equal(t, model.SuggestionPatternWatch, s.Kind)
			assert.Equal(t, tt.pattern, s.PatternName)
			assert.Equal(t, tt.symbol, s.Symbol)
			assert.Equal(t, tt.timeframe, s.Timeframe)
		})
	}
}

func TestDetectPatternWatchContextCoin(t *testing.T) {
	d := New()

	got := d.Detect("Mô hình hai đáy đang hoàn thiện", model.SignalContext{Coin: "doge"})
	require.Len(t, got, 1)
	assert.Equal(t, "Double Bottom", got[0].PatternName)
	assert.Equal(t, "DOGE", got[0].Symbol)
}

func TestDetectPatternWatchUserInputCoin(t *testing.T) {
	d := New()

	// The response names no coin; the user's question does, and it wins
	// over the context coin.
	got := d.Detect("Mô hình hai đáy đang hoàn thiện", model.SignalContext{
		Coin:      "doge",
		UserInput: "solana đang có mô hình gì vậy?",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "SOL", got[0].Symbol)
}

func TestDetectDailyReadingIChing(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	d := NewWithClock(fixedClock(now))

	got := d.Detect("Quẻ số 23 hôm nay nói về sự buông bỏ", model.SignalContext{})
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, model.SuggestionDailyReading, s.Kind)
	assert.Equal(t, "iching", s.ReadingKind)
	assert.Equal(t, "Hexagram 23", s.ReadingName)
	require.NotNil(t, s.ExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), *s.ExpiresAt)
}

func TestDetectDailyReadingTarot(t *testing.T) {
	d := New()

	got := d.Detect("Hôm nay bạn rút được lá The Tower, một dấu hiệu của thay đổi", model.SignalContext{})
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "tarot", s.ReadingKind)
	assert.Equal(t, "The Tower", s.ReadingName)
}

func TestDetectDailyReadingHexagramRange(t *testing.T) {
	d := New()

	// Hexagram numbers run 1 to 64; anything outside is not a reading.
	assert.Empty(t, d.Detect("Quẻ số 65 không tồn tại", model.SignalContext{}))
	assert.Empty(t, d.Detect("Quẻ số 0 không tồn tại", model.SignalContext{}))
	assert.Len(t, d.Detect("Quẻ số 64 là quẻ cuối cùng", model.SignalContext{}), 1)
}

func TestDetectDailyReadingTruncatesInterpretation(t *testing.T) {
	d := New()

	text := "Quẻ số 1 " + strings.Repeat("а", 500)
	got := d.Detect(text, model.SignalContext{})
	require.Len(t, got, 1)
	assert.Equal(t, 300, len([]rune(got[0].Interpretation)))
}

func TestDetectPortfolio(t *testing.T) {
	d := New()

	got := d.Detect("Tôi đang giữ 2 BTC và 10 ETH", model.SignalContext{})
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, model.SuggestionPortfolioTracker, s.Kind)
	assert.Equal(t, []model.Holding{
		{Coin: "BTC", Amount: 2},
		{Coin: "ETH", Amount: 10},
	}, s.Holdings)
}

func TestDetectPortfolioAggregatesDuplicates(t *testing.T) {
	d := New()

	got := d.Detect("Ví 1: 2 BTC và 5 ETH. Ví 2: 3 BTC nữa.", model.SignalContext{})
	require.Len(t, got, 1)
	assert.Equal(t, []model.Holding{
		{Coin: "BTC", Amount: 5},
		{Coin: "ETH", Amount: 5},
	}, got[0].Holdings)
}

func TestDetectPortfolioRequiresTwoCoins(t *testing.T) {
	d := New()

	assert.Empty(t, d.Detect("Tôi chỉ giữ 2 BTC thôi", model.SignalContext{}))
}

func TestDetectMultipleSuggestions(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	d := NewWithClock(fixedClock(now))

	text := `ETH có thể break 4,000 nếu bull flag này hoàn thành trên khung 4h.
Quẻ số 11 hôm nay cũng báo hiệu hanh thông.
Danh mục: 2 BTC và 10 ETH.`

	got := d.Detect(text, model.SignalContext{})
	require.Len(t, got, 4)
	assert.Equal(t, model.SuggestionPriceAlert, got[0].Kind)
	assert.Equal(t, model.SuggestionPatternWatch, got[1].Kind)
	assert.Equal(t, model.SuggestionDailyReading, got[2].Kind)
	assert.Equal(t, model.SuggestionPortfolioTracker, got[3].Kind)
}

func TestDetectNothing(t *testing.T) {
	d := New()

	got := d.Detect("Chúc bạn một ngày bình an", model.SignalContext{})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "70,000", want: 70000},
		{raw: "67.500", want: 67500},
		{raw: "1.234.567", want: 1234567},
		{raw: "4000", want: 4000},
		{raw: "4000.5", want: 4000.5},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parsePrice(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
