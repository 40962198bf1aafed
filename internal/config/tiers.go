package config

import (
	"fmt"
	"strings"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/spf13/viper"
)

// TierTable loads the subscription quota table from configuration,
// falling back to the built-in defaults for tiers the config omits.
// Expected shape:
//
//	tiers:
//	  FREE:
//	    max_widgets: 3
//	    max_goals: 1
func TierTable() (model.TierTable, error) {
	table := model.DefaultTierTable()

	if !viper.IsSet("tiers") {
		return table, nil
	}

	raw := make(map[string]model.TierLimits)
	if err := viper.UnmarshalKey("tiers", &raw); err != nil {
		return nil, fmt.Errorf("invalid tiers configuration: %w", err)
	}

	for name, limits := range raw {
		if limits.MaxWidgets < model.Unlimited || limits.MaxGoals < model.Unlimited {
			return nil, fmt.Errorf("invalid tier %s: limits below -1", name)
		}
		// viper lowercases map keys; tier names are canonically uppercase.
		table[model.Tier(strings.ToUpper(name))] = limits
	}

	return table, nil
}
