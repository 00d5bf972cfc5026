package model

import (
	"github.com/shopspring/decimal"
)

// LoyaltyTier is a named band in the loyalty program. A customer's tier
// is the highest tier whose MinPoints threshold their TotalPoints has
// reached. Ties on MinPoints resolve to the lowest code.
type LoyaltyTier struct {
	Base
	TenantID           string          `json:"tenant_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_loyalty_tiers_tenant_code;index:idx_loyalty_tiers_min_points"`
	Code               string          `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_loyalty_tiers_tenant_code"`
	Name               string          `json:"name" gorm:"type:varchar(100);not null"`
	MinPoints          int             `json:"min_points" gorm:"not null;default:0;index:idx_loyalty_tiers_min_points"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"type:decimal(5,2);not null;default:0"`
	PointsMultiplier   decimal.Decimal `json:"points_multiplier" gorm:"type:decimal(5,2);not null;default:1"`
	Color              string          `json:"color,omitempty" gorm:"type:varchar(20)"`
	Icon               string          `json:"icon,omitempty" gorm:"type:varchar(50)"`
	Benefits           string          `json:"benefits,omitempty" gorm:"type:jsonb"`
	DisplayOrder       int             `json:"display_order" gorm:"not null;default:0"`
	IsActive           bool            `json:"is_active" gorm:"not null;default:true"`
}
