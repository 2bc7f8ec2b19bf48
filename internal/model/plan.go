package model

import "fmt"

// SubscriptionPlan represents a subscription tier.
type SubscriptionPlan string

const (
	PlanNone    SubscriptionPlan = "NONE"
	PlanBasic   SubscriptionPlan = "BASIC"
	PlanFamily  SubscriptionPlan = "FAMILY"
	PlanPremium SubscriptionPlan = "PREMIUM"
)

// RequiredItems returns how many catalog items a cart or order on this plan
// must contain. NONE and unknown plans require zero.
func (p SubscriptionPlan) RequiredItems() int {
	switch p {
	case PlanBasic:
		return 4
	case PlanFamily:
		return 8
	case PlanPremium:
		return 12
	default:
		return 0
	}
}

// IsPaid reports whether the plan is a purchasable tier.
func (p SubscriptionPlan) IsPaid() bool {
	return p == PlanBasic || p == PlanFamily || p == PlanPremium
}

// ParsePlan converts a string into a SubscriptionPlan.
func ParsePlan(s string) (SubscriptionPlan, error) {
	switch SubscriptionPlan(s) {
	case PlanNone, PlanBasic, PlanFamily, PlanPremium:
		return SubscriptionPlan(s), nil
	default:
		return "", fmt.Errorf("unknown plan %q", s)
	}
}

// PlanInfo describes a plan for the public catalog listing.
type PlanInfo struct {
	Plan          SubscriptionPlan `json:"plan"`
	RequiredItems int              `json:"required_items"`
}

// Plans returns the purchasable plans in ascending size order.
func Plans() []PlanInfo {
	return []PlanInfo{
		{Plan: PlanBasic, RequiredItems: PlanBasic.RequiredItems()},
		{Plan: PlanFamily, RequiredItems: PlanFamily.RequiredItems()},
		{Plan: PlanPremium, RequiredItems: PlanPremium.RequiredItems()},
	}
}
