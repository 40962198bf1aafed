package model

// Tier is a subscription level controlling quota ceilings.
type Tier string

// Subscription tier constants.
const (
	TierFree  Tier = "FREE"
	TierOne   Tier = "TIER1"
	TierTwo   Tier = "TIER2"
	TierThree Tier = "TIER3"
)

// Unlimited disables a quota ceiling entirely; the live count is not even
// queried when a limit is set to it.
const Unlimited = -1

// TierLimits holds the quota ceilings for one subscription tier.
type TierLimits struct {
	MaxWidgets int `json:"max_widgets" mapstructure:"max_widgets"`
	MaxGoals   int `json:"max_goals" mapstructure:"max_goals"`
}

// TierTable maps subscription tiers to their quota ceilings. Treated as
// injected configuration rather than a language constant so tiers can be
// edited without touching synthesis logic.
type TierTable map[Tier]TierLimits

// DefaultTierTable returns the built-in quota ceilings, used when the
// configuration file does not override them.
func DefaultTierTable() TierTable {
	return TierTable{
		TierFree:  {MaxWidgets: 3, MaxGoals: 1},
		TierOne:   {MaxWidgets: 10, MaxGoals: 3},
		TierTwo:   {MaxWidgets: 25, MaxGoals: 10},
		TierThree: {MaxWidgets: Unlimited, MaxGoals: Unlimited},
	}
}

// Limits returns the ceilings for a tier, falling back to the FREE tier for
// unknown tier names.
func (t TierTable) Limits(tier Tier) TierLimits {
	if limits, ok := t[tier]; ok {
		return limits
	}
	return t[TierFree]
}
