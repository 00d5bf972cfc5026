package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCustomerFullName(t *testing.T) {
	individual := &Customer{CustomerType: CustomerTypeIndividual, FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", individual.FullName())

	org := &Customer{CustomerType: CustomerTypeOrganization, CompanyName: "Acme Inc"}
	assert.Equal(t, "Acme Inc", org.FullName())
}

func TestSubscriptionPlanUnlimited(t *testing.T) {
	plan := &SubscriptionPlan{MaxUsers: PlanLimitUnlimited, MaxStores: 5, MaxProducts: 0}
	assert.True(t, plan.HasUnlimitedUsers())
	assert.False(t, plan.HasUnlimitedStores())
	assert.False(t, plan.HasUnlimitedProducts())
}

func TestTenantHasActiveSubscription(t *testing.T) {
	active := &Tenant{SubscriptionStatus: SubscriptionActive}
	assert.True(t, active.HasActiveSubscription())

	trial := &Tenant{SubscriptionStatus: SubscriptionTrial}
	assert.True(t, trial.HasActiveSubscription())

	expired := &Tenant{SubscriptionStatus: SubscriptionExpired}
	assert.False(t, expired.HasActiveSubscription())

	past := time.Now().Add(-time.Hour)
	lapsed := &Tenant{SubscriptionStatus: SubscriptionActive, SubscriptionEndDate: &past}
	assert.False(t, lapsed.HasActiveSubscription())
}

func TestStorePriceOverrideIsEffective(t *testing.T) {
	now := time.Now().UTC()
	later := now.Add(time.Hour)

	open := &StorePriceOverride{IsActive: true, EffectiveFrom: now.Add(-time.Minute)}
	assert.True(t, open.IsEffective(now))

	upcoming := &StorePriceOverride{IsActive: true, EffectiveFrom: later}
	assert.False(t, upcoming.IsEffective(now))

	closed := &StorePriceOverride{IsActive: true, EffectiveFrom: now.Add(-2 * time.Hour), EffectiveTo: &now}
	assert.False(t, closed.IsEffective(now))

	inactive := &StorePriceOverride{IsActive: false, EffectiveFrom: now.Add(-time.Minute)}
	assert.False(t, inactive.IsEffective(now))
}
