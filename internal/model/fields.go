package model

// Timeline expresses a goal horizon in exactly one unit. Zero values mean
// the unit is unset; the extractor guarantees at least one unit is set.
type Timeline struct {
	Months int `json:"months,omitempty"`
	Weeks  int `json:"weeks,omitempty"`
	Days   int `json:"days,omitempty"`
}

// WeekPlan groups the action tasks for a single week of a goal plan.
type WeekPlan struct {
	Tasks []string `json:"tasks"`
	Week  int      `json:"week"`
}

// TaskCount returns the total number of tasks across all weeks.
func TaskCount(weeks []WeekPlan) int {
	total := 0
	for _, w := range weeks {
		total += len(w.Tasks)
	}
	return total
}

// ExtractedFields is the normalized record produced by the field extractor.
// Every field is populated: absent matches are replaced by documented
// defaults so downstream code never branches on missing data. TargetAmount
// is the single exception and stays nil when no amount was found.
type ExtractedFields struct {
	TargetAmount *int64     `json:"target_amount"`
	Title        string     `json:"title"`
	Affirmations []string   `json:"affirmations"`
	ActionSteps  []WeekPlan `json:"action_steps"`
	Crystals     []string   `json:"crystals"`
	Timeline     Timeline   `json:"timeline"`
}
