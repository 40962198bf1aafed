package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/solsticehq/lumen/internal/model"
)

// CreateWidget inserts a new widget row. A zero DisplayOrder is replaced by
// the next free slot (the count of the user's live widgets).
func (s *SQLiteStorage) CreateWidget(ctx context.Context, widget *model.Widget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWidget(widget); err != nil {
		return err
	}
	return s.createWidget(ctx, s.db, widget)
}

func (s *SQLiteStorage) createWidget(ctx context.Context, q dbtx, widget *model.Widget) error {
	payload, err := json.Marshal(widget.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal widget payload: %w", err)
	}

	if widget.DisplayOrder == 0 {
		count, countErr := s.countWidgets(ctx, q, widget.UserID)
		if countErr != nil {
			return countErr
		}
		widget.DisplayOrder = count
	}
	if widget.Size == "" {
		widget.Size = model.WidgetSizeMedium
	}
	if widget.CreatedFrom == "" {
		widget.CreatedFrom = model.WidgetSourceChat
	}

	now := time.Now().UTC()
	if widget.CreatedAt.IsZero() {
		widget.CreatedAt = now
	}
	widget.UpdatedAt = now

	var linkedGoalID any
	if widget.LinkedGoalID != nil {
		linkedGoalID = *widget.LinkedGoalID
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO widgets (
			id, user_id, type, size, linked_goal_id, payload,
			display_order, created_from, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		widget.ID,
		widget.UserID,
		string(widget.Type),
		string(widget.Size),
		linkedGoalID,
		string(payload),
		widget.DisplayOrder,
		widget.CreatedFrom,
		widget.CreatedAt,
		widget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create widget: %w", err)
	}
	return nil
}

// GetWidget retrieves a widget by ID.
func (s *SQLiteStorage) GetWidget(ctx context.Context, id string) (*model.Widget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getWidget(ctx, s.db, id)
}

func (s *SQLiteStorage) getWidget(ctx context.Context, q dbtx, id string) (*model.Widget, error) {
	row := q.QueryRowContext(ctx, widgetSelect+` WHERE id = ?`, id)

	widget, err := scanWidget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get widget: %w", err)
	}
	return widget, nil
}

// ListWidgets returns all widgets for a user in display order.
func (s *SQLiteStorage) ListWidgets(ctx context.Context, userID string) ([]model.Widget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	return s.listWidgets(ctx, s.db, userID)
}

func (s *SQLiteStorage) listWidgets(ctx context.Context, q dbtx, userID string) ([]model.Widget, error) {
	rows, err := q.QueryContext(ctx, widgetSelect+` WHERE user_id = ? ORDER BY display_order, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list widgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var widgets []model.Widget
	for rows.Next() {
		widget, scanErr := scanWidget(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan widget: %w", scanErr)
		}
		widgets = append(widgets, *widget)
	}
	return widgets, rows.Err()
}

// CountWidgets counts a user's live widgets for quota enforcement.
func (s *SQLiteStorage) CountWidgets(ctx context.Context, userID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	return s.countWidgets(ctx, s.db, userID)
}

func (s *SQLiteStorage) countWidgets(ctx context.Context, q dbtx, userID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM widgets WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count widgets: %w", err)
	}
	return count, nil
}

const widgetSelect = `
	SELECT id, user_id, type, size, linked_goal_id, payload,
		display_order, created_from, created_at, updated_at
	FROM widgets`

func scanWidget(row scanner) (*model.Widget, error) {
	var (
		widget       model.Widget
		wtype        string
		size         string
		linkedGoalID sql.NullString
		payload      string
	)

	err := row.Scan(
		&widget.ID, &widget.UserID, &wtype, &size, &linkedGoalID, &payload,
		&widget.DisplayOrder, &widget.CreatedFrom, &widget.CreatedAt, &widget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	widget.Type = model.WidgetType(wtype)
	widget.Size = model.WidgetSize(size)
	if linkedGoalID.Valid {
		widget.LinkedGoalID = &linkedGoalID.String
	}
	if err := json.Unmarshal([]byte(payload), &widget.Payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal widget payload: %w", err)
	}

	return &widget, nil
}
