package synthesis

import (
	"context"
	"fmt"

	"github.com/solsticehq/lumen/internal/common"
	"github.com/solsticehq/lumen/internal/model"
)

// CheckWidgetLimit verifies the user has widget headroom for their tier.
// A ceiling of -1 means unlimited and the live count is not even queried.
// Returns common.ErrQuotaExceeded when the ceiling is reached.
//
// Note: this is a check-then-act protocol. Nothing locks the count between
// this call and the subsequent writes, so two concurrent synthesis calls
// can both pass and together exceed the ceiling. Callers needing a hard
// guarantee should enable atomic mode.
func (s *Synthesizer) CheckWidgetLimit(ctx context.Context, userID string, tier model.Tier) error {
	limits := s.tiers.Limits(tier)
	if limits.MaxWidgets == model.Unlimited {
		return nil
	}

	count, err := s.store.CountWidgets(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count widgets: %w", err)
	}
	if count >= limits.MaxWidgets {
		return fmt.Errorf("%w: %d of %d widgets used on tier %s",
			common.ErrQuotaExceeded, count, limits.MaxWidgets, tier)
	}
	return nil
}

// CheckGoalLimit verifies the user has active-goal headroom for their tier.
// Same check-then-act caveat as CheckWidgetLimit.
func (s *Synthesizer) CheckGoalLimit(ctx context.Context, userID string, tier model.Tier) error {
	limits := s.tiers.Limits(tier)
	if limits.MaxGoals == model.Unlimited {
		return nil
	}

	count, err := s.store.CountActiveGoals(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count active goals: %w", err)
	}
	if count >= limits.MaxGoals {
		return fmt.Errorf("%w: %d of %d active goals on tier %s",
			common.ErrQuotaExceeded, count, limits.MaxGoals, tier)
	}
	return nil
}
