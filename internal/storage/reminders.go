package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/solsticehq/lumen/internal/model"
)

// CreateReminder inserts a new reminder row. Re-synthesis of the same
// conceptual goal creates independent reminder sets; there is no dedup.
func (s *SQLiteStorage) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReminder(reminder); err != nil {
		return err
	}
	return s.createReminder(ctx, s.db, reminder)
}

func (s *SQLiteStorage) createReminder(ctx context.Context, q dbtx, reminder *model.Reminder) error {
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now().UTC()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO reminders (
			id, user_id, source_type, source_id, kind, time_of_day,
			next_send_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reminder.ID,
		reminder.UserID,
		reminder.SourceType,
		reminder.SourceID,
		string(reminder.Kind),
		reminder.TimeOfDay,
		reminder.NextSendAt,
		reminder.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// ListReminders returns all reminders for a user ordered by next delivery.
func (s *SQLiteStorage) ListReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	return s.listReminders(ctx, s.db, userID)
}

func (s *SQLiteStorage) listReminders(ctx context.Context, q dbtx, userID string) ([]model.Reminder, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, source_type, source_id, kind, time_of_day,
			next_send_at, created_at
		FROM reminders WHERE user_id = ? ORDER BY next_send_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reminders []model.Reminder
	for rows.Next() {
		var (
			reminder model.Reminder
			kind     string
		)
		if scanErr := rows.Scan(
			&reminder.ID, &reminder.UserID, &reminder.SourceType, &reminder.SourceID,
			&kind, &reminder.TimeOfDay, &reminder.NextSendAt, &reminder.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", scanErr)
		}
		reminder.Kind = model.ReminderKind(kind)
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
