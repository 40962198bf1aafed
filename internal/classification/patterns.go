package classification

import "github.com/solsticehq/lumen/internal/model"

// Library is the fixed set of keyword lists and regular expressions shared
// by the classifier rules. Topic keywords establish subject matter; structure
// markers gate the structured types, requiring co-occurrence so a passing
// mention of "crystal" is not classified as a full recommendation.
type Library struct {
	Topics             map[model.ResponseType][]string
	StructureMarkers   map[model.ResponseType][]string
	AffirmationMarkers []string
}

// DefaultLibrary returns the default pattern library. Keyword lists are
// bilingual (Vietnamese and English) to match the chat surface.
func DefaultLibrary() Library {
	return Library{
		Topics: map[model.ResponseType][]string{
			model.ResponseManifestationGoal: {
				"mục tiêu",
				"manifest",
				"manifestation",
				"goal",
				"kiếm thêm",
				"đạt được",
				"thu hút",
			},
			model.ResponseCrystalRecommendation: {
				"crystal",
				"đá quý",
				"thạch anh",
				"amethyst",
				"rose quartz",
				"citrine",
				"obsidian",
			},
			model.ResponseTradingAnalysis: {
				"bitcoin",
				"btc",
				"ethereum",
				"trading",
				"phân tích kỹ thuật",
				"biểu đồ",
				"chart",
				"candlestick",
				"nến",
			},
			model.ResponseIChingReading: {
				"kinh dịch",
				"i-ching",
				"i ching",
				"hexagram",
				"quẻ",
			},
			model.ResponseTarotReading: {
				"tarot",
				"lá bài",
				"arcana",
			},
		},
		StructureMarkers: map[model.ResponseType][]string{
			model.ResponseManifestationGoal: {
				"🎯",
				"📅",
				"timeline",
				"affirmation",
				"khẳng định",
				"action plan",
				"kế hoạch",
				"week",
				"tuần",
			},
			model.ResponseCrystalRecommendation: {
				"💎",
				"🧘",
				"🌙",
				"placement",
				"cleansing",
				"cleanse",
				"recommendation",
				"thanh tẩy",
				"vị trí đặt",
			},
			model.ResponseTradingAnalysis: {
				"support",
				"resistance",
				"hỗ trợ",
				"kháng cự",
				"entry",
				"target",
				"stop loss",
				"rsi",
				"macd",
				"volume",
			},
		},
		// A qualifying affirmation line is marker-prefixed and quoted:
		// sparkle, bullet, or numbered.
		AffirmationMarkers: []string{
			`^\s*[✨🌟💫⭐]\s*["“].+["”]\s*$`,
			`^\s*[-•*]\s*["“].+["”]\s*$`,
			`^\s*\d+[.)]\s*["“].+["”]\s*$`,
		},
	}
}
