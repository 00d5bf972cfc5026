package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"gorm.io/gorm"
)

// TxRunner executes a function inside a single database transaction.
// All repository calls made with the context passed to fn commit or
// roll back together.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TenantStore is the persistence surface the tenant service consumes
type TenantStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	FindByCode(ctx context.Context, code string) (*model.Tenant, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
	FindPage(ctx context.Context, pageable repository.Pageable) (repository.Page[model.Tenant], error)
	Create(ctx context.Context, tenant *model.Tenant) error
	Save(ctx context.Context, tenant *model.Tenant) error
	Delete(ctx context.Context, tenant *model.Tenant) error
}

// SubscriptionPlanStore is the persistence surface the plan service consumes
type SubscriptionPlanStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error)
	FindByCode(ctx context.Context, code string) (*model.SubscriptionPlan, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindPage(ctx context.Context, pageable repository.Pageable) (repository.Page[model.SubscriptionPlan], error)
	FindAllOrdered(ctx context.Context) ([]model.SubscriptionPlan, error)
	Create(ctx context.Context, plan *model.SubscriptionPlan) error
	Save(ctx context.Context, plan *model.SubscriptionPlan) error
	Delete(ctx context.Context, plan *model.SubscriptionPlan) error
}

// BranchStore is the persistence surface the branch service consumes
type BranchStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Branch, error)
	FindByCode(ctx context.Context, tenantID, code string) (*model.Branch, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Branch], error)
	Create(ctx context.Context, branch *model.Branch) error
	Save(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, branch *model.Branch) error
}

// StoreStore is the persistence surface the store service consumes
type StoreStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error)
	FindByCode(ctx context.Context, tenantID, code string) (*model.Store, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Store], error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	Create(ctx context.Context, store *model.Store) error
	Save(ctx context.Context, store *model.Store) error
	Delete(ctx context.Context, store *model.Store) error
}

// CustomerStore is the persistence surface the customer and loyalty services consume
type CustomerStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error)
	FindByIDForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error)
	FindByCode(ctx context.Context, tenantID, code string) (*model.Customer, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*model.Customer, error)
	FindByPhone(ctx context.Context, tenantID, phone string) (*model.Customer, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Customer], error)
	FindPageByTier(ctx context.Context, tenantID string, tierID uuid.UUID, pageable repository.Pageable) (repository.Page[model.Customer], error)
	Create(ctx context.Context, customer *model.Customer) error
	Save(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, customer *model.Customer) error
}

// LoyaltyTierStore is the persistence surface for loyalty tiers
type LoyaltyTierStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTier, error)
	FindByCode(ctx context.Context, tenantID, code string) (*model.LoyaltyTier, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTier], error)
	FindAllOrdered(ctx context.Context, tenantID string) ([]model.LoyaltyTier, error)
	FindTierForPoints(ctx context.Context, tenantID string, totalPoints int) (*model.LoyaltyTier, error)
	Create(ctx context.Context, tier *model.LoyaltyTier) error
	Save(ctx context.Context, tier *model.LoyaltyTier) error
	Delete(ctx context.Context, tier *model.LoyaltyTier) error
}

// LoyaltyLedgerStore is the persistence surface for the append-only ledger
type LoyaltyLedgerStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTransaction, error)
	FindPageByCustomer(ctx context.Context, tenantID string, customerID uuid.UUID, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error)
	Create(ctx context.Context, txn *model.LoyaltyTransaction) error
}

// SettingsStore is the persistence surface the settings service consumes
type SettingsStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Settings, error)
	FindByKey(ctx context.Context, tenantID, settingKey string) (*model.Settings, error)
	FindByCategory(ctx context.Context, tenantID, category string) ([]model.Settings, error)
	FindPage(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Settings], error)
	Create(ctx context.Context, setting *model.Settings) error
	Save(ctx context.Context, setting *model.Settings) error
	Delete(ctx context.Context, setting *model.Settings) error
}

// PriceOverrideStore is the persistence surface the price override service consumes
type PriceOverrideStore interface {
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error)
	ExistsForStoreProduct(ctx context.Context, tenantID string, storeID, productID uuid.UUID) (bool, error)
	FindPageByStore(ctx context.Context, tenantID string, storeID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error)
	FindPageByProduct(ctx context.Context, tenantID string, productID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error)
	FindActiveOverride(ctx context.Context, tenantID string, storeID, productID uuid.UUID, at time.Time) (*model.StorePriceOverride, error)
	FindAllActiveForStore(ctx context.Context, tenantID string, storeID uuid.UUID, at time.Time) ([]model.StorePriceOverride, error)
	Create(ctx context.Context, override *model.StorePriceOverride) error
	Save(ctx context.Context, override *model.StorePriceOverride) error
	Delete(ctx context.Context, override *model.StorePriceOverride) error
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// The database index is the authoritative uniqueness guard; the
// existence pre-checks in the services are only fast-path rejections.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
