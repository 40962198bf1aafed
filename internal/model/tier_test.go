package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTierTable(t *testing.T) {
	table := DefaultTierTable()

	assert.Equal(t, TierLimits{MaxWidgets: 3, MaxGoals: 1}, table[TierFree])
	assert.Equal(t, TierLimits{MaxWidgets: 10, MaxGoals: 3}, table[TierOne])
	assert.Equal(t, TierLimits{MaxWidgets: 25, MaxGoals: 10}, table[TierTwo])
	assert.Equal(t, TierLimits{MaxWidgets: Unlimited, MaxGoals: Unlimited}, table[TierThree])
}

func TestLimitsUnknownTierFallsBackToFree(t *testing.T) {
	table := DefaultTierTable()

	assert.Equal(t, table[TierFree], table.Limits("PLATINUM"))
	assert.Equal(t, table[TierTwo], table.Limits(TierTwo))
}

func TestTaskCount(t *testing.T) {
	weeks := []WeekPlan{
		{Week: 1, Tasks: []string{"a", "b"}},
		{Week: 2, Tasks: []string{"c"}},
	}
	assert.Equal(t, 3, TaskCount(weeks))
	assert.Equal(t, 0, TaskCount(nil))
}
