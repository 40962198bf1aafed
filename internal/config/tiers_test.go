package config

import (
	"testing"

	"github.com/solsticehq/lumen/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierTableDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	table, err := TierTable()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTierTable(), table)
}

func TestTierTableOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("tiers", map[string]any{
		"FREE": map[string]any{"max_widgets": 5, "max_goals": 2},
	})

	table, err := TierTable()
	require.NoError(t, err)

	// Overridden tier takes the configured limits; the rest keep defaults.
	assert.Equal(t, model.TierLimits{MaxWidgets: 5, MaxGoals: 2}, table.Limits(model.TierFree))
	assert.Equal(t, model.DefaultTierTable()[model.TierTwo], table.Limits(model.TierTwo))
}

func TestTierTableNormalizesKeyCase(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// viper lowercases map keys on the way in; the override must still
	// land on the canonical uppercase tier name.
	viper.Set("tiers", map[string]any{
		"tier1": map[string]any{"max_widgets": 12, "max_goals": 4},
	})

	table, err := TierTable()
	require.NoError(t, err)
	assert.Equal(t, model.TierLimits{MaxWidgets: 12, MaxGoals: 4}, table.Limits(model.TierOne))

	// No stray lowercase entry shadows the canonical one.
	_, ok := table["tier1"]
	assert.False(t, ok)
}

func TestTierTableRejectsInvalidLimits(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("tiers", map[string]any{
		"FREE": map[string]any{"max_widgets": -2, "max_goals": 1},
	})

	_, err := TierTable()
	assert.Error(t, err)
}
