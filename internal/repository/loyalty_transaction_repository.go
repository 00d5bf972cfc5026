package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// LoyaltyTransactionRepository is the GORM-backed store for the
// append-only loyalty ledger. Entries are inserted and read, never
// updated or deleted.
type LoyaltyTransactionRepository struct {
	db *gorm.DB
}

// NewLoyaltyTransactionRepository creates a ledger repository over the given connection
func NewLoyaltyTransactionRepository(db *gorm.DB) *LoyaltyTransactionRepository {
	return &LoyaltyTransactionRepository{db: db}
}

// FindByID returns the ledger entry with the given id within the tenant, or nil when absent
func (r *LoyaltyTransactionRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTransaction, error) {
	var txn model.LoyaltyTransaction
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find loyalty transaction by id")
	}
	return &txn, nil
}

// FindPageByCustomer returns one page of a customer's ledger entries
func (r *LoyaltyTransactionRepository) FindPageByCustomer(ctx context.Context, tenantID string, customerID uuid.UUID, pageable Pageable) (Page[model.LoyaltyTransaction], error) {
	db := dbFrom(ctx, r.db).Model(&model.LoyaltyTransaction{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	return r.findPage(db, pageable)
}

// FindPage returns one page of the tenant's ledger entries
func (r *LoyaltyTransactionRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.LoyaltyTransaction], error) {
	db := dbFrom(ctx, r.db).Model(&model.LoyaltyTransaction{}).Where("tenant_id = ?", tenantID)
	return r.findPage(db, pageable)
}

func (r *LoyaltyTransactionRepository) findPage(db *gorm.DB, pageable Pageable) (Page[model.LoyaltyTransaction], error) {
	var (
		txns  []model.LoyaltyTransaction
		total int64
	)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.LoyaltyTransaction]{}, errors.Wrap(err, "count loyalty transactions")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&txns).Error
	if err != nil {
		return Page[model.LoyaltyTransaction]{}, errors.Wrap(err, "list loyalty transactions")
	}
	return NewPage(txns, pageable, total), nil
}

// Create appends a new ledger entry
func (r *LoyaltyTransactionRepository) Create(ctx context.Context, txn *model.LoyaltyTransaction) error {
	return dbFrom(ctx, r.db).Create(txn).Error
}
