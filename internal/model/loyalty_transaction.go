package model

import (
	"github.com/google/uuid"
)

// LoyaltyTransactionType enumerates the kinds of ledger entries
type LoyaltyTransactionType string

const (
	LoyaltyEarn       LoyaltyTransactionType = "EARN"       // points earned from purchase
	LoyaltyRedeem     LoyaltyTransactionType = "REDEEM"     // points redeemed for discount
	LoyaltyAdjustment LoyaltyTransactionType = "ADJUSTMENT" // manual adjustment by admin
	LoyaltyExpired    LoyaltyTransactionType = "EXPIRED"    // points expired
	LoyaltyBonus      LoyaltyTransactionType = "BONUS"      // bonus points from promotion
	LoyaltyRefund     LoyaltyTransactionType = "REFUND"     // points refunded due to return
)

// LoyaltyTransaction is an immutable ledger entry recording a point
// delta for a customer. BalanceAfter snapshots the customer's
// AvailablePoints immediately after the entry was applied. Entries are
// append-only and never mutated once written.
type LoyaltyTransaction struct {
	Base
	TenantID        string                 `json:"tenant_id" gorm:"type:varchar(36);not null;index:idx_loyalty_transactions_tenant_customer"`
	CustomerID      uuid.UUID              `json:"customer_id" gorm:"type:uuid;not null;index:idx_loyalty_transactions_tenant_customer"`
	TransactionType LoyaltyTransactionType `json:"transaction_type" gorm:"type:varchar(20);not null;index"`
	Points          int                    `json:"points" gorm:"not null"`
	BalanceAfter    int                    `json:"balance_after" gorm:"not null"`
	ReferenceID     *uuid.UUID             `json:"reference_id,omitempty" gorm:"type:uuid"`
	ReferenceType   string                 `json:"reference_type,omitempty" gorm:"type:varchar(50)"`
	Description     string                 `json:"description,omitempty" gorm:"type:varchar(500)"`
}
