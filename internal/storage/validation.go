// Package storage provides the data persistence layer for the lumen engine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/solsticehq/lumen/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrInvalidWidget   = errors.New("invalid widget")
	ErrInvalidReminder = errors.New("invalid reminder")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrWidgetNotFound  = errors.New("widget not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateGoal validates a goal before insert.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidGoal)
	}
	if goal.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidGoal)
	}
	if goal.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidGoal)
	}
	if goal.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidGoal)
	}
	return nil
}

// validateWidget validates a widget before insert.
func validateWidget(widget *model.Widget) error {
	if widget == nil {
		return fmt.Errorf("%w: widget", ErrNilParameter)
	}
	if widget.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidWidget)
	}
	if widget.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidWidget)
	}
	if widget.Type == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidWidget)
	}
	return nil
}

// validateReminder validates a reminder before insert.
func validateReminder(reminder *model.Reminder) error {
	if reminder == nil {
		return fmt.Errorf("%w: reminder", ErrNilParameter)
	}
	if reminder.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidReminder)
	}
	if reminder.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidReminder)
	}
	if reminder.SourceID == "" {
		return fmt.Errorf("%w: missing source ID", ErrInvalidReminder)
	}
	if reminder.NextSendAt.IsZero() {
		return fmt.Errorf("%w: missing next send time", ErrInvalidReminder)
	}
	return nil
}
