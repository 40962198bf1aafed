package model

import "time"

// GoalCategory groups goals by life area, inferred from title keywords.
type GoalCategory string

// Goal category constants.
const (
	CategoryFinancial    GoalCategory = "financial"
	CategoryCareer       GoalCategory = "career"
	CategoryHealth       GoalCategory = "health"
	CategoryRelationship GoalCategory = "relationship"
	// CategoryLifestyle is the fallback when no keyword family matches.
	CategoryLifestyle GoalCategory = "lifestyle"
)

// GoalStatus tracks a goal's lifecycle. Synthesis only ever creates active
// goals; later status changes come from progress tracking outside this
// pipeline.
type GoalStatus string

// Goal status constants.
const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// Goal is a user's tracked manifestation objective. Affirmations, action
// steps and crystals are denormalized copies of the extracted fields;
// WidgetID points back at the goal's primary GoalCard widget once the
// synthesis two-phase write completes.
type Goal struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TargetDate   time.Time
	TargetAmount *int64
	ID           string
	UserID       string
	Title        string
	WidgetID     string
	Category     GoalCategory
	Status       GoalStatus
	Affirmations []string
	ActionSteps  []WeekPlan
	Crystals     []string
}
