// Package synthesis turns classified responses into persisted goals,
// widgets, and reminders, gated by classification confidence and
// subscription-tier quotas.
package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/service"
)

// ConfidenceThreshold is the sole admission-control check: classifications
// below it never touch storage.
const ConfidenceThreshold = 0.85

// lunarCycleDays approximates one lunar cycle for the crystal cleanse
// schedule.
const lunarCycleDays = 29

// reminderSchedule is the fixed set of reminders created for every
// synthesized goal.
var reminderSchedule = []struct {
	kind      model.ReminderKind
	timeOfDay string
}{
	{model.ReminderAffirmation, "08:00"},
	{model.ReminderCheckIn, "12:00"},
	{model.ReminderVisualization, "21:00"},
}

// Result reports what a synthesis call created. Success is true only when
// the minimum required write (the goal and its primary widget, or the
// single widget for non-goal types) succeeded; Errors lists every write
// step that failed. Internal error text is for logs and callers, never for
// end users.
type Result struct {
	Goal      *model.Goal
	Message   string
	Errors    []string
	Widgets   []model.Widget
	Reminders []model.Reminder
	Success   bool
}

// Config wires a Synthesizer.
type Config struct {
	Storage   service.Storage
	Extractor service.Extractor
	Tiers     model.TierTable
	Now       func() time.Time
	NewID     func() string
	// Atomic wraps the goal package in one storage transaction.
	// Off by default: the goal package performs independent writes with
	// no compensation on partial failure.
	Atomic bool
}

// Synthesizer persists the domain objects for a classified response.
type Synthesizer struct {
	store     service.Storage
	extractor service.Extractor
	tiers     model.TierTable
	now       func() time.Time
	newID     func() string
	atomic    bool
}

// New creates a Synthesizer.
func New(cfg Config) (*Synthesizer, error) {
	if cfg.Storage == nil {
		return nil, fmt.Errorf("synthesis: storage is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("synthesis: extractor is required")
	}
	if cfg.Tiers == nil {
		cfg.Tiers = model.DefaultTierTable()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.NewString() }
	}

	return &Synthesizer{
		store:     cfg.Storage,
		extractor: cfg.Extractor,
		tiers:     cfg.Tiers,
		now:       cfg.Now,
		newID:     cfg.NewID,
		atomic:    cfg.Atomic,
	}, nil
}

// Synthesize dispatches on the classification type and persists the
// corresponding objects. Quota checks are NOT applied here; callers are
// expected to run CheckWidgetLimit/CheckGoalLimit first (or use
// SynthesizeChecked).
func (s *Synthesizer) Synthesize(ctx context.Context, userID string, det model.DetectionResult) *Result {
	if det.Confidence < ConfidenceThreshold {
		return &Result{Success: false, Message: "confidence too low"}
	}

	switch det.Type {
	case model.ResponseManifestationGoal:
		fields := s.extractor.Extract(det.RawText)
		if s.atomic {
			return s.goalPackageAtomic(ctx, userID, fields)
		}
		return s.goalPackage(ctx, s.store, userID, fields)

	case model.ResponseCrystalRecommendation:
		fields := s.extractor.Extract(det.RawText)
		return s.singleWidget(ctx, userID, s.crystalGridWidget(userID, fields.Crystals, nil))

	case model.ResponseAffirmationsOnly:
		fields := s.extractor.Extract(det.RawText)
		return s.singleWidget(ctx, userID, s.affirmationCardWidget(userID, fields.Affirmations, nil))

	case model.ResponseTradingAnalysis:
		return s.singleWidget(ctx, userID, s.tradingAnalysisWidget(userID, det.RawText))

	default:
		return &Result{Success: false, Message: "no widget type for this response"}
	}
}

// SynthesizeChecked runs the documented pre-synthesis quota checks before
// delegating to Synthesize.
func (s *Synthesizer) SynthesizeChecked(ctx context.Context, userID string, tier model.Tier, det model.DetectionResult) (*Result, error) {
	if det.Confidence >= ConfidenceThreshold && widgetProducing(det.Type) {
		if err := s.CheckWidgetLimit(ctx, userID, tier); err != nil {
			return nil, err
		}
		if det.Type == model.ResponseManifestationGoal {
			if err := s.CheckGoalLimit(ctx, userID, tier); err != nil {
				return nil, err
			}
		}
	}
	return s.Synthesize(ctx, userID, det), nil
}

func widgetProducing(rtype model.ResponseType) bool {
	switch rtype {
	case model.ResponseManifestationGoal,
		model.ResponseCrystalRecommendation,
		model.ResponseAffirmationsOnly,
		model.ResponseTradingAnalysis:
		return true
	default:
		return false
	}
}

// goalPackage performs the multi-step goal write. Each insert fails
// independently: a failure partway leaves a partial package behind.
// Success requires the goal row and its GoalCard widget.
func (s *Synthesizer) goalPackage(ctx context.Context, store service.Storage, userID string, fields model.ExtractedFields) *Result {
	result := &Result{}
	now := s.now()

	goal := &model.Goal{
		ID:           s.newID(),
		UserID:       userID,
		Title:        fields.Title,
		Category:     inferCategory(fields.Title),
		Status:       model.GoalStatusActive,
		TargetAmount: fields.TargetAmount,
		TargetDate:   targetDate(now, fields.Timeline),
		Affirmations: fields.Affirmations,
		ActionSteps:  fields.ActionSteps,
		Crystals:     fields.Crystals,
	}

	if err := store.CreateGoal(ctx, goal); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("create goal: %v", err))
		result.Message = "goal creation failed"
		return result
	}
	result.Goal = goal

	goalCard := s.goalCardWidget(userID, goal)
	if err := store.CreateWidget(ctx, goalCard); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("create goal card: %v", err))
		result.Message = "primary widget creation failed"
		return result
	}
	result.Widgets = append(result.Widgets, *goalCard)
	result.Success = true

	if len(fields.Affirmations) > 0 {
		w := s.affirmationCardWidget(userID, fields.Affirmations, &goal.ID)
		if err := store.CreateWidget(ctx, w); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create affirmation card: %v", err))
		} else {
			result.Widgets = append(result.Widgets, *w)
		}
	}

	if len(fields.ActionSteps) > 0 {
		w := s.actionPlanWidget(userID, fields.ActionSteps, &goal.ID)
		if err := store.CreateWidget(ctx, w); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create action plan: %v", err))
		} else {
			result.Widgets = append(result.Widgets, *w)
		}
	}

	if len(fields.Crystals) > 0 {
		w := s.crystalGridWidget(userID, fields.Crystals, &goal.ID)
		if err := store.CreateWidget(ctx, w); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create crystal grid: %v", err))
		} else {
			result.Widgets = append(result.Widgets, *w)
		}
	}

	// Second phase of the two-phase write: point the goal back at its
	// primary widget.
	if err := store.UpdateGoalWidgetID(ctx, goal.ID, goalCard.ID); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("patch goal widget id: %v", err))
	} else {
		goal.WidgetID = goalCard.ID
	}

	for _, entry := range reminderSchedule {
		nextSend, err := model.NextSendTime(now, entry.timeOfDay)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("schedule %s reminder: %v", entry.kind, err))
			continue
		}
		reminder := &model.Reminder{
			ID:         s.newID(),
			UserID:     userID,
			SourceType: model.ReminderSourceGoal,
			SourceID:   goal.ID,
			Kind:       entry.kind,
			TimeOfDay:  entry.timeOfDay,
			NextSendAt: nextSend,
		}
		if err := store.CreateReminder(ctx, reminder); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("create %s reminder: %v", entry.kind, err))
			continue
		}
		result.Reminders = append(result.Reminders, *reminder)
	}

	if len(result.Errors) > 0 {
		result.Message = "goal created with partial package"
		slog.Warn("Goal package partially written",
			"goal_id", goal.ID,
			"user_id", userID,
			"errors", strings.Join(result.Errors, "; "))
	} else {
		result.Message = "goal created"
	}
	return result
}

// goalPackageAtomic runs the goal package inside one storage transaction:
// any step failure rolls the whole package back.
func (s *Synthesizer) goalPackageAtomic(ctx context.Context, userID string, fields model.ExtractedFields) *Result {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return &Result{
			Message: "could not start transaction",
			Errors:  []string{fmt.Sprintf("begin tx: %v", err)},
		}
	}

	result := s.goalPackage(ctx, tx, userID, fields)
	if !result.Success || len(result.Errors) > 0 {
		_ = tx.Rollback()
		return &Result{
			Message: "goal package rolled back",
			Errors:  result.Errors,
		}
	}

	if err := tx.Commit(); err != nil {
		return &Result{
			Message: "goal package commit failed",
			Errors:  []string{fmt.Sprintf("commit: %v", err)},
		}
	}
	return result
}

func (s *Synthesizer) singleWidget(ctx context.Context, userID string, widget *model.Widget) *Result {
	if err := s.store.CreateWidget(ctx, widget); err != nil {
		return &Result{
			Message: "widget creation failed",
			Errors:  []string{fmt.Sprintf("create %s: %v", widget.Type, err)},
		}
	}
	slog.Debug("Widget synthesized", "type", widget.Type, "user_id", userID)
	return &Result{
		Success: true,
		Message: fmt.Sprintf("%s created", widget.Type),
		Widgets: []model.Widget{*widget},
	}
}

func (s *Synthesizer) goalCardWidget(userID string, goal *model.Goal) *model.Widget {
	target := goal.TargetDate
	return &model.Widget{
		ID:           s.newID(),
		UserID:       userID,
		Type:         model.WidgetGoalCard,
		Size:         model.WidgetSizeLarge,
		LinkedGoalID: &goal.ID,
		CreatedFrom:  model.WidgetSourceChat,
		Payload: model.WidgetPayload{
			TargetAmount: goal.TargetAmount,
			TargetDate:   &target,
			ProgressPct:  0,
		},
	}
}

func (s *Synthesizer) affirmationCardWidget(userID string, affirmations []string, goalID *string) *model.Widget {
	return &model.Widget{
		ID:           s.newID(),
		UserID:       userID,
		Type:         model.WidgetAffirmationCard,
		Size:         model.WidgetSizeMedium,
		LinkedGoalID: goalID,
		CreatedFrom:  model.WidgetSourceChat,
		Payload: model.WidgetPayload{
			Affirmations:   affirmations,
			CurrentIndex:   0,
			StreakDays:     0,
			CompletedToday: false,
		},
	}
}

func (s *Synthesizer) actionPlanWidget(userID string, steps []model.WeekPlan, goalID *string) *model.Widget {
	return &model.Widget{
		ID:           s.newID(),
		UserID:       userID,
		Type:         model.WidgetActionPlan,
		Size:         model.WidgetSizeLarge,
		LinkedGoalID: goalID,
		CreatedFrom:  model.WidgetSourceChat,
		Payload: model.WidgetPayload{
			Weeks:          steps,
			TotalTasks:     model.TaskCount(steps),
			CompletedTasks: 0,
		},
	}
}

func (s *Synthesizer) crystalGridWidget(userID string, crystals []string, goalID *string) *model.Widget {
	w := &model.Widget{
		ID:           s.newID(),
		UserID:       userID,
		Type:         model.WidgetCrystalGrid,
		Size:         model.WidgetSizeMedium,
		LinkedGoalID: goalID,
		CreatedFrom:  model.WidgetSourceChat,
		Payload: model.WidgetPayload{
			Crystals: crystals,
		},
	}
	if goalID == nil {
		// Standalone recommendations schedule the next cleanse a lunar
		// cycle out.
		cleanse := s.now().AddDate(0, 0, lunarCycleDays)
		w.Payload.NextCleanseAt = &cleanse
	}
	return w
}

func (s *Synthesizer) tradingAnalysisWidget(userID, rawText string) *model.Widget {
	return &model.Widget{
		ID:          s.newID(),
		UserID:      userID,
		Type:        model.WidgetTradingAnalysis,
		Size:        model.WidgetSizeLarge,
		CreatedFrom: model.WidgetSourceChat,
		Payload: model.WidgetPayload{
			AnalysisText: rawText,
			IsResolved:   false,
		},
	}
}

// targetDate computes the goal's target date from its timeline: add months,
// or weeks as days, or days.
func targetDate(now time.Time, tl model.Timeline) time.Time {
	switch {
	case tl.Months > 0:
		return now.AddDate(0, tl.Months, 0)
	case tl.Weeks > 0:
		return now.AddDate(0, 0, tl.Weeks*7)
	case tl.Days > 0:
		return now.AddDate(0, 0, tl.Days)
	default:
		return now
	}
}
