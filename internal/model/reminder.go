package model

import (
	"fmt"
	"time"
)

// ReminderKind identifies which prompt a scheduled reminder sends.
type ReminderKind string

// Reminder kind constants.
const (
	ReminderAffirmation   ReminderKind = "affirmation"
	ReminderCheckIn       ReminderKind = "check_in"
	ReminderVisualization ReminderKind = "visualization"
)

// ReminderSourceGoal marks reminders attached to a goal.
const ReminderSourceGoal = "goal"

// Reminder is a scheduled notification tied to a synthesized goal.
// TimeOfDay is a fixed "HH:MM" wall-clock time; NextSendAt is the concrete
// next delivery instant.
type Reminder struct {
	CreatedAt  time.Time
	NextSendAt time.Time
	ID         string
	UserID     string
	SourceType string
	SourceID   string
	TimeOfDay  string
	Kind       ReminderKind
}

// NextSendTime computes the first delivery for a "HH:MM" time of day:
// today at that time if it is still in the future, otherwise tomorrow.
func NextSendTime(now time.Time, timeOfDay string) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time of day %q: out of range", timeOfDay)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// Reschedule advances the reminder to the same time of day tomorrow.
// Called after a successful send by the notifier.
func (r *Reminder) Reschedule() {
	r.NextSendAt = r.NextSendAt.AddDate(0, 0, 1)
}
