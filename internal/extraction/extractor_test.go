package extraction

import (
	"fmt"
	"strings"
	"testing"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "target emoji header",
			text: "🎯 MỤC TIÊU: Kiếm thêm 100 triệu trong 6 tháng",
			want: "Kiếm thêm 100 triệu trong 6 tháng",
		},
		{
			name: "bare emoji header",
			text: "🎯 Mua nhà mới cho gia đình",
			want: "Mua nhà mới cho gia đình",
		},
		{
			name: "manifest keyword",
			text: "Bạn đang manifest: một công việc mơ ước",
			want: "một công việc mơ ước",
		},
		{
			name: "plain vietnamese label",
			text: "Mục tiêu: Thăng chức trưởng phòng",
			want: "Thăng chức trưởng phòng",
		},
		{
			name: "plain english label",
			text: "Goal: Run a marathon",
			want: "Run a marathon",
		},
		{
			name: "no title falls back to default",
			text: "Hôm nay là một ngày đẹp trời.",
			want: DefaultTitle,
		},
		{
			name: "empty text falls back to default",
			text: "",
			want: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).Title)
		})
	}
}

func TestExtractAmount(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want *int64
	}{
		{
			name: "simple trieu",
			text: "Kiếm thêm 100 triệu trong 6 tháng",
			want: ptrInt64(100_000_000),
		},
		{
			name: "dot thousands separator",
			text: "Mục tiêu 1.000 triệu",
			want: ptrInt64(1_000_000_000),
		},
		{
			name: "english million",
			text: "save 2 million this year",
			want: ptrInt64(2_000_000),
		},
		{
			name: "number without scale word",
			text: "Khoảng 500 nghìn mỗi tháng",
			want: nil,
		},
		{
			name: "no number at all",
			text: "Thịnh vượng sẽ đến với bạn",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).TargetAmount
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestExtractTimeline(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want model.Timeline
	}{
		{name: "months", text: "hoàn thành trong 6 tháng", want: model.Timeline{Months: 6}},
		{name: "weeks", text: "kế hoạch 8 tuần", want: model.Timeline{Weeks: 8}},
		{name: "days", text: "thử thách 30 ngày", want: model.Timeline{Days: 30}},
		{name: "english months", text: "within 3 months", want: model.Timeline{Months: 3}},
		{
			name: "months win over weeks",
			text: "2 tuần đầu tiên của 6 tháng",
			want: model.Timeline{Months: 6},
		},
		{
			name: "default when absent",
			text: "không có mốc thời gian nào",
			want: model.Timeline{Months: DefaultTimelineMonths},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).Timeline)
		})
	}
}

func TestExtractAffirmations(t *testing.T) {
	e := New()

	text := `Affirmations hàng ngày:
✨ "Tôi xứng đáng với sự thịnh vượng"
- "Tiền đến với tôi dễ dàng và thường xuyên"
1. "Tôi là nam châm thu hút may mắn"
Dòng này không có marker nên bị bỏ qua.`

	got := e.Extract(text).Affirmations
	assert.Equal(t, []string{
		"Tôi xứng đáng với sự thịnh vượng",
		"Tiền đến với tôi dễ dàng và thường xuyên",
		"Tôi là nam châm thu hút may mắn",
	}, got)
}

func TestExtractAffirmationsRuneThreshold(t *testing.T) {
	e := New()

	// "Tôi tự tin" is exactly 10 runes: below the threshold. Adding one
	// character crosses it.
	text := "✨ \"Tôi tự tin\"\n✨ \"Tôi tự tin!\""

	got := e.Extract(text).Affirmations
	assert.Equal(t, []string{"Tôi tự tin!"}, got)
}

func TestExtractAffirmationsCapPreservesOrder(t *testing.T) {
	e := New()

	var b strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "✨ \"Khẳng định tích cực số %02d\"\n", i)
	}

	got := e.Extract(b.String()).Affirmations
	require.Len(t, got, MaxAffirmations)
	assert.Equal(t, "Khẳng định tích cực số 01", got[0])
	assert.Equal(t, "Khẳng định tích cực số 10", got[9])
}

func TestExtractActionSteps(t *testing.T) {
	e := New()

	text := `Kế hoạch hành động:

Tuần 1:
- Viết nhật ký biết ơn mỗi sáng
- Thiền 10 phút trước khi ngủ

Tuần 2:
- Lập ngân sách chi tiêu tháng

Tuần 3:
- ngắn`

	got := e.Extract(text).ActionSteps
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Week)
	assert.Equal(t, []string{
		"Viết nhật ký biết ơn mỗi sáng",
		"Thiền 10 phút trước khi ngủ",
	}, got[0].Tasks)

	assert.Equal(t, 2, got[1].Week)
	assert.Equal(t, []string{"Lập ngân sách chi tiêu tháng"}, got[1].Tasks)
}

func TestExtractActionStepsEmpty(t *testing.T) {
	e := New()

	got := e.Extract("không có kế hoạch tuần nào ở đây").ActionSteps
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExtractCrystals(t *testing.T) {
	e := New()

	text := `💎 Crystal Recommendations:
- Thạch anh tím (Amethyst)
- Thạch anh hồng (Rose Quartz)
- Citrine

🧘 Vị trí đặt: bàn làm việc`

	got := e.Extract(text).Crystals
	assert.Equal(t, []string{
		"Thạch anh tím (Amethyst)",
		"Thạch anh hồng (Rose Quartz)",
		"Citrine",
	}, got)
}

func TestExtractCrystalsStopsAtHeading(t *testing.T) {
	e := New()

	text := `💎 Crystal Recommendations:
- Amethyst
- Citrine
🌙 CLEANSING:
- Obsidian`

	got := e.Extract(text).Crystals
	assert.Equal(t, []string{"Amethyst", "Citrine"}, got)
}

func TestExtractCrystalsCap(t *testing.T) {
	e := New()

	var b strings.Builder
	b.WriteString("💎 Crystal Recommendations:\n")
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "- Crystal %d\n", i)
	}

	got := e.Extract(b.String()).Crystals
	require.Len(t, got, MaxCrystals)
	assert.Equal(t, "Crystal 1", got[0])
	assert.Equal(t, "Crystal 5", got[4])
}

func TestExtractCrystalsRequireHeader(t *testing.T) {
	e := New()

	text := `Một vài loại đá:
- Amethyst
- Citrine`

	got := e.Extract(text).Crystals
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExtractDeterministic(t *testing.T) {
	e := New()

	text := `🎯 MỤC TIÊU: Kiếm thêm 100 triệu trong 6 tháng
✨ "Tôi xứng đáng với sự thịnh vượng"
Tuần 1:
- Viết nhật ký biết ơn mỗi sáng`

	first := e.Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}

func ptrInt64(n int64) *int64 { return &n }
