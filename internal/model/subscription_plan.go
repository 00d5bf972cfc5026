package model

import (
	"github.com/shopspring/decimal"
)

// PlanLimitUnlimited marks a plan limit with no cap
const PlanLimitUnlimited = -1

// SubscriptionPlan represents a plan tenants can subscribe to.
// Plans are global: code is unique across the whole platform.
type SubscriptionPlan struct {
	Base
	Code         string          `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_subscription_plans_code"`
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Description  string          `json:"description,omitempty" gorm:"type:text"`
	MaxUsers     int             `json:"max_users" gorm:"not null;default:-1"`
	MaxStores    int             `json:"max_stores" gorm:"not null;default:-1"`
	MaxProducts  int             `json:"max_products" gorm:"not null;default:-1"`
	PriceMonthly decimal.Decimal `json:"price_monthly" gorm:"type:decimal(10,2);not null;default:0"`
	PriceYearly  decimal.Decimal `json:"price_yearly" gorm:"type:decimal(10,2);not null;default:0"`
	IsActive     bool            `json:"is_active" gorm:"not null;default:true"`
	DisplayOrder int             `json:"display_order" gorm:"not null;default:0"`
	Features     string          `json:"features,omitempty" gorm:"type:jsonb"`
}

// HasUnlimitedUsers reports whether the plan caps user count
func (p *SubscriptionPlan) HasUnlimitedUsers() bool {
	return p.MaxUsers == PlanLimitUnlimited
}

// HasUnlimitedStores reports whether the plan caps store count
func (p *SubscriptionPlan) HasUnlimitedStores() bool {
	return p.MaxStores == PlanLimitUnlimited
}

// HasUnlimitedProducts reports whether the plan caps product count
func (p *SubscriptionPlan) HasUnlimitedProducts() bool {
	return p.MaxProducts == PlanLimitUnlimited
}
