package synthesis

import (
	"strings"

	"github.com/solsticehq/lumen/internal/model"
)

// categoryFamilies maps goal categories to their title keyword families,
// checked in order. Lifestyle is the fallback when nothing matches.
var categoryFamilies = []struct {
	category model.GoalCategory
	keywords []string
}{
	{model.CategoryFinancial, []string{
		"tiền", "triệu", "tỷ", "vnd", "money", "income", "thu nhập",
		"tài chính", "wealth", "giàu", "tiết kiệm", "save",
	}},
	{model.CategoryCareer, []string{
		"career", "sự nghiệp", "công việc", "job", "promotion",
		"thăng chức", "business", "kinh doanh",
	}},
	{model.CategoryHealth, []string{
		"health", "sức khỏe", "giảm cân", "weight", "gym", "fitness",
		"thể dục", "yoga",
	}},
	{model.CategoryRelationship, []string{
		"love", "tình yêu", "relationship", "mối quan hệ", "gia đình",
		"family", "marriage", "kết hôn",
	}},
}

// inferCategory picks a goal category from title keywords.
func inferCategory(title string) model.GoalCategory {
	lower := strings.ToLower(title)
	for _, family := range categoryFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.category
			}
		}
	}
	return model.CategoryLifestyle
}
