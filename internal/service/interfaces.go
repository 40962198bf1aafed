// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/solsticehq/lumen/internal/model"
)

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoal(ctx context.Context, id string) (*model.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
	UpdateGoalWidgetID(ctx context.Context, goalID, widgetID string) error
	CountActiveGoals(ctx context.Context, userID string) (int, error)

	// Widget operations
	CreateWidget(ctx context.Context, widget *model.Widget) error
	GetWidget(ctx context.Context, id string) (*model.Widget, error)
	ListWidgets(ctx context.Context, userID string) ([]model.Widget, error)
	CountWidgets(ctx context.Context, userID string) (int, error)

	// Reminder operations
	CreateReminder(ctx context.Context, reminder *model.Reminder) error
	ListReminders(ctx context.Context, userID string) ([]model.Reminder, error)

	// Database management
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction. It exposes the full
// Storage contract so the synthesizer's atomic mode can run the goal
// package against either the store or an open transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	Storage
}

// Classifier produces a detection result from raw response text.
type Classifier interface {
	Classify(text string) model.DetectionResult
}

// Extractor produces normalized goal fields from raw response text.
type Extractor interface {
	Extract(text string) model.ExtractedFields
}

// SignalDetector scans text for ad-hoc suggestions.
type SignalDetector interface {
	Detect(text string, sctx model.SignalContext) []model.Suggestion
}
