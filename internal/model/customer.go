package model

import (
	"github.com/google/uuid"
)

// Customer types
const (
	CustomerTypeIndividual   = "INDIVIDUAL"
	CustomerTypeOrganization = "ORGANIZATION"
)

// Customer represents a customer of the business, shared across all
// stores of a tenant. Loyalty state lives here: AvailablePoints is the
// spendable balance and may never go negative; TotalPoints and
// LifetimePoints only ever grow and drive tier assignment.
type Customer struct {
	Base
	TenantID     string `json:"tenant_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_customers_tenant_code"`
	Code         string `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_customers_tenant_code"`
	CustomerType string `json:"customer_type" gorm:"type:varchar(20);not null;default:INDIVIDUAL"`
	FirstName    string `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName     string `json:"last_name,omitempty" gorm:"type:varchar(100)"`
	CompanyName  string `json:"company_name,omitempty" gorm:"type:varchar(200)"`
	Email        string `json:"email,omitempty" gorm:"type:varchar(255);index"`
	Phone        string `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address      string `json:"address,omitempty" gorm:"type:varchar(500)"`
	City         string `json:"city,omitempty" gorm:"type:varchar(100)"`
	State        string `json:"state,omitempty" gorm:"type:varchar(100)"`
	Country      string `json:"country,omitempty" gorm:"type:varchar(100)"`
	PostalCode   string `json:"postal_code,omitempty" gorm:"type:varchar(20)"`
	TaxID        string `json:"tax_id,omitempty" gorm:"type:varchar(50)"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`
	Notes        string `json:"notes,omitempty" gorm:"type:text"`

	// Loyalty state
	LoyaltyTierID   *uuid.UUID `json:"loyalty_tier_id,omitempty" gorm:"type:uuid;index"`
	TotalPoints     int        `json:"total_points" gorm:"not null;default:0"`
	LifetimePoints  int        `json:"lifetime_points" gorm:"not null;default:0"`
	AvailablePoints int        `json:"available_points" gorm:"not null;default:0"`
}

// FullName returns the display name for the customer
func (c *Customer) FullName() string {
	if c.CustomerType == CustomerTypeIndividual {
		return c.FirstName + " " + c.LastName
	}
	return c.CompanyName
}
