package model

import "time"

// WidgetType identifies what kind of card a widget renders as.
type WidgetType string

// Widget type constants.
const (
	WidgetGoalCard        WidgetType = "goal_card"
	WidgetAffirmationCard WidgetType = "affirmation_card"
	WidgetActionPlan      WidgetType = "action_plan"
	WidgetCrystalGrid     WidgetType = "crystal_grid"
	WidgetTradingAnalysis WidgetType = "trading_analysis"
)

// WidgetSize is a display hint for the dashboard grid.
type WidgetSize string

// Widget size constants.
const (
	WidgetSizeSmall  WidgetSize = "small"
	WidgetSizeMedium WidgetSize = "medium"
	WidgetSizeLarge  WidgetSize = "large"
)

// WidgetSourceChat marks widgets created by the synthesis pipeline.
const WidgetSourceChat = "chat"

// WidgetPayload holds all possible type-specific payload fields for any
// widget type. Not all fields are valid for all types; the synthesizer
// populates only the fields its widget type uses.
type WidgetPayload struct {
	NextCleanseAt  *time.Time `json:"next_cleanse_at,omitempty"`
	TargetAmount   *int64     `json:"target_amount,omitempty"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
	AnalysisText   string     `json:"analysis_text,omitempty"`
	Affirmations   []string   `json:"affirmations,omitempty"`
	Crystals       []string   `json:"crystals,omitempty"`
	Weeks          []WeekPlan `json:"weeks,omitempty"`
	CurrentIndex   int        `json:"current_index,omitempty"`
	StreakDays     int        `json:"streak_days,omitempty"`
	TotalTasks     int        `json:"total_tasks,omitempty"`
	CompletedTasks int        `json:"completed_tasks,omitempty"`
	ProgressPct    float64    `json:"progress_pct,omitempty"`
	CompletedToday bool       `json:"completed_today,omitempty"`
	IsResolved     bool       `json:"is_resolved"`
}

// Widget is a persisted, typed record backing one dashboard card.
// LinkedGoalID is nil for widgets created outside a goal package (crystal
// grids, standalone affirmation cards, trading analyses).
type Widget struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LinkedGoalID *string
	ID           string
	UserID       string
	CreatedFrom  string
	Type         WidgetType
	Size         WidgetSize
	Payload      WidgetPayload
	DisplayOrder int
}
