package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the lifecycle state of a tenant's subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionTrial     SubscriptionStatus = "TRIAL"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Tenant represents a business organization. Each tenant is isolated and
// owns its customers, stores, branches, and settings. The tenant table
// itself is global; TenantID mirrors the tenant's own code.
type Tenant struct {
	Base
	TenantID     string `json:"tenant_id" gorm:"type:varchar(36);not null;index"`
	Code         string `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_tenants_code"`
	Name         string `json:"name" gorm:"type:varchar(200);not null"`
	Subdomain    string `json:"subdomain,omitempty" gorm:"type:varchar(50);uniqueIndex:idx_tenants_subdomain"`
	BusinessType string `json:"business_type,omitempty" gorm:"type:varchar(50)"`
	Email        string `json:"email" gorm:"type:varchar(255);not null"`
	Phone        string `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address      string `json:"address,omitempty" gorm:"type:varchar(500)"`
	City         string `json:"city,omitempty" gorm:"type:varchar(100)"`
	State        string `json:"state,omitempty" gorm:"type:varchar(100)"`
	Country      string `json:"country,omitempty" gorm:"type:varchar(100)"`
	PostalCode   string `json:"postal_code,omitempty" gorm:"type:varchar(20)"`
	TaxID        string `json:"tax_id,omitempty" gorm:"type:varchar(50)"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`

	// Subscription
	SubscriptionPlanID    *uuid.UUID         `json:"subscription_plan_id,omitempty" gorm:"type:uuid;index"`
	SubscriptionStatus    SubscriptionStatus `json:"subscription_status" gorm:"type:varchar(20);not null;default:ACTIVE"`
	SubscriptionStartDate *time.Time         `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time         `json:"subscription_end_date,omitempty"`

	// Localization
	LogoURL  string `json:"logo_url,omitempty" gorm:"type:varchar(500)"`
	Timezone string `json:"timezone" gorm:"type:varchar(50);default:UTC"`
	Currency string `json:"currency" gorm:"type:varchar(3);default:USD"`
	Locale   string `json:"locale" gorm:"type:varchar(10);default:en_US"`

	// Loyalty configuration
	LoyaltyPointsPerCurrency decimal.Decimal `json:"loyalty_points_per_currency" gorm:"type:decimal(5,2);default:1"`
	LoyaltyEnabled           bool            `json:"loyalty_enabled" gorm:"not null;default:true"`
}

// HasActiveSubscription reports whether the subscription currently grants access
func (t *Tenant) HasActiveSubscription() bool {
	validStatus := t.SubscriptionStatus == SubscriptionActive || t.SubscriptionStatus == SubscriptionTrial
	notExpired := t.SubscriptionEndDate == nil || !time.Now().After(*t.SubscriptionEndDate)
	return validStatus && notExpired
}
