package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionPlan_RequiredItems(t *testing.T) {
	assert.Equal(t, 0, PlanNone.RequiredItems())
	assert.Equal(t, 4, PlanBasic.RequiredItems())
	assert.Equal(t, 8, PlanFamily.RequiredItems())
	assert.Equal(t, 12, PlanPremium.RequiredItems())
	assert.Equal(t, 0, SubscriptionPlan("GOLD").RequiredItems())
}

func TestSubscriptionPlan_IsPaid(t *testing.T) {
	assert.False(t, PlanNone.IsPaid())
	assert.True(t, PlanBasic.IsPaid())
	assert.True(t, PlanFamily.IsPaid())
	assert.True(t, PlanPremium.IsPaid())
	assert.False(t, SubscriptionPlan("").IsPaid())
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan("FAMILY")
	assert.NoError(t, err)
	assert.Equal(t, PlanFamily, plan)

	_, err = ParsePlan("family")
	assert.Error(t, err, "plan names are case sensitive")

	_, err = ParsePlan("GOLD")
	assert.Error(t, err)
}

func TestPlans(t *testing.T) {
	plans := Plans()
	assert.Len(t, plans, 3, "NONE is not listed")
	assert.Equal(t, PlanBasic, plans[0].Plan)
	assert.Equal(t, 12, plans[2].RequiredItems)
}
