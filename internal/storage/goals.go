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

// CreateGoal inserts a new goal row.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	return s.createGoal(ctx, s.db, goal)
}

func (s *SQLiteStorage) createGoal(ctx context.Context, q dbtx, goal *model.Goal) error {
	affirmations, err := json.Marshal(goal.Affirmations)
	if err != nil {
		return fmt.Errorf("failed to marshal affirmations: %w", err)
	}
	actionSteps, err := json.Marshal(goal.ActionSteps)
	if err != nil {
		return fmt.Errorf("failed to marshal action steps: %w", err)
	}
	crystals, err := json.Marshal(goal.Crystals)
	if err != nil {
		return fmt.Errorf("failed to marshal crystals: %w", err)
	}

	now := time.Now().UTC()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now

	_, err = q.ExecContext(ctx, `
		INSERT INTO goals (
			id, user_id, title, category, status, target_amount, target_date,
			affirmations, action_steps, crystals, widget_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.UserID,
		goal.Title,
		string(goal.Category),
		string(goal.Status),
		goal.TargetAmount,
		goal.TargetDate,
		string(affirmations),
		string(actionSteps),
		string(crystals),
		nullableString(goal.WidgetID),
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetGoal retrieves a goal by ID.
func (s *SQLiteStorage) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getGoal(ctx, s.db, id)
}

func (s *SQLiteStorage) getGoal(ctx context.Context, q dbtx, id string) (*model.Goal, error) {
	row := q.QueryRowContext(ctx, goalSelect+` WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// ListGoals returns all goals for a user, newest first.
func (s *SQLiteStorage) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	return s.listGoals(ctx, s.db, userID)
}

func (s *SQLiteStorage) listGoals(ctx context.Context, q dbtx, userID string) ([]model.Goal, error) {
	rows, err := q.QueryContext(ctx, goalSelect+` WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", scanErr)
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

// UpdateGoalWidgetID patches a goal's back-reference to its primary widget.
// This is the second phase of the synthesis two-phase write.
func (s *SQLiteStorage) UpdateGoalWidgetID(ctx context.Context, goalID, widgetID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(goalID, "goalID"); err != nil {
		return err
	}
	if err := validateString(widgetID, "widgetID"); err != nil {
		return err
	}
	return s.updateGoalWidgetID(ctx, s.db, goalID, widgetID)
}

func (s *SQLiteStorage) updateGoalWidgetID(ctx context.Context, q dbtx, goalID, widgetID string) error {
	result, err := q.ExecContext(ctx, `
		UPDATE goals SET widget_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		widgetID, goalID)
	if err != nil {
		return fmt.Errorf("failed to update goal widget ID: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrGoalNotFound, goalID)
	}
	return nil
}

// CountActiveGoals counts a user's live goals for quota enforcement.
func (s *SQLiteStorage) CountActiveGoals(ctx context.Context, userID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	return s.countActiveGoals(ctx, s.db, userID)
}

func (s *SQLiteStorage) countActiveGoals(ctx context.Context, q dbtx, userID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM goals WHERE user_id = ? AND status = ?`,
		userID, string(model.GoalStatusActive)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active goals: %w", err)
	}
	return count, nil
}

const goalSelect = `
	SELECT id, user_id, title, category, status, target_amount, target_date,
		affirmations, action_steps, crystals, widget_id, created_at, updated_at
	FROM goals`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (*model.Goal, error) {
	var (
		goal         model.Goal
		category     string
		status       string
		targetAmount sql.NullInt64
		affirmations string
		actionSteps  string
		crystals     string
		widgetID     sql.NullString
	)

	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &category, &status,
		&targetAmount, &goal.TargetDate,
		&affirmations, &actionSteps, &crystals,
		&widgetID, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	goal.Category = model.GoalCategory(category)
	goal.Status = model.GoalStatus(status)
	if targetAmount.Valid {
		goal.TargetAmount = &targetAmount.Int64
	}
	if widgetID.Valid {
		goal.WidgetID = widgetID.String
	}

	if err := json.Unmarshal([]byte(affirmations), &goal.Affirmations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal affirmations: %w", err)
	}
	if err := json.Unmarshal([]byte(actionSteps), &goal.ActionSteps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal action steps: %w", err)
	}
	if err := json.Unmarshal([]byte(crystals), &goal.Crystals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal crystals: %w", err)
	}

	return &goal, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
