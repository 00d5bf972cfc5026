package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorePriceOverride sets a store-specific price for a product,
// optionally bounded by an effectiveness window.
type StorePriceOverride struct {
	Base
	TenantID           string           `json:"tenant_id" gorm:"type:varchar(36);not null;index:idx_store_price_overrides_tenant_store;index:idx_store_price_overrides_tenant_product"`
	StoreID            uuid.UUID        `json:"store_id" gorm:"type:uuid;not null;index:idx_store_price_overrides_tenant_store"`
	ProductID          uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index:idx_store_price_overrides_tenant_product"`
	OverridePrice      decimal.Decimal  `json:"override_price" gorm:"type:decimal(15,2);not null"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" gorm:"type:decimal(5,2)"`
	EffectiveFrom      time.Time        `json:"effective_from" gorm:"not null"`
	EffectiveTo        *time.Time       `json:"effective_to,omitempty"`
	IsActive           bool             `json:"is_active" gorm:"not null;default:true"`
}

// IsEffective reports whether the override applies at the given instant
func (o *StorePriceOverride) IsEffective(at time.Time) bool {
	afterStart := !at.Before(o.EffectiveFrom)
	beforeEnd := o.EffectiveTo == nil || at.Before(*o.EffectiveTo)
	return o.IsActive && afterStart && beforeEnd
}
