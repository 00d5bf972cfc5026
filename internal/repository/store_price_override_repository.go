package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// StorePriceOverrideRepository is the GORM-backed store for
// store-specific price overrides, scoped by tenant id.
type StorePriceOverrideRepository struct {
	db *gorm.DB
}

// NewStorePriceOverrideRepository creates an override repository over the given connection
func NewStorePriceOverrideRepository(db *gorm.DB) *StorePriceOverrideRepository {
	return &StorePriceOverrideRepository{db: db}
}

// FindByID returns the override with the given id within the tenant, or nil when absent
func (r *StorePriceOverrideRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error) {
	var override model.StorePriceOverride
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find price override by id")
	}
	return &override, nil
}

// ExistsForStoreProduct reports whether an override already exists for
// the store and product pair within the tenant
func (r *StorePriceOverrideRepository) ExistsForStoreProduct(ctx context.Context, tenantID string, storeID, productID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.StorePriceOverride{}).
		Where("tenant_id = ? AND store_id = ? AND product_id = ?", tenantID, storeID, productID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count price overrides")
	}
	return count > 0, nil
}

// FindPageByStore returns one page of a store's overrides
func (r *StorePriceOverrideRepository) FindPageByStore(ctx context.Context, tenantID string, storeID uuid.UUID, pageable Pageable) (Page[model.StorePriceOverride], error) {
	db := dbFrom(ctx, r.db).Model(&model.StorePriceOverride{}).
		Where("tenant_id = ? AND store_id = ?", tenantID, storeID)
	return r.findPage(db, pageable)
}

// FindPageByProduct returns one page of a product's overrides across stores
func (r *StorePriceOverrideRepository) FindPageByProduct(ctx context.Context, tenantID string, productID uuid.UUID, pageable Pageable) (Page[model.StorePriceOverride], error) {
	db := dbFrom(ctx, r.db).Model(&model.StorePriceOverride{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID)
	return r.findPage(db, pageable)
}

func (r *StorePriceOverrideRepository) findPage(db *gorm.DB, pageable Pageable) (Page[model.StorePriceOverride], error) {
	var (
		overrides []model.StorePriceOverride
		total     int64
	)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.StorePriceOverride]{}, errors.Wrap(err, "count price overrides")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&overrides).Error
	if err != nil {
		return Page[model.StorePriceOverride]{}, errors.Wrap(err, "list price overrides")
	}
	return NewPage(overrides, pageable, total), nil
}

// FindActiveOverride returns the override effective at the given
// instant for the store and product, or nil when none applies
func (r *StorePriceOverrideRepository) FindActiveOverride(ctx context.Context, tenantID string, storeID, productID uuid.UUID, at time.Time) (*model.StorePriceOverride, error) {
	var override model.StorePriceOverride
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND store_id = ? AND product_id = ? AND is_active = ?", tenantID, storeID, productID, true).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to > ?", at).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find active price override")
	}
	return &override, nil
}

// FindAllActiveForStore returns every override effective at the given instant in the store
func (r *StorePriceOverrideRepository) FindAllActiveForStore(ctx context.Context, tenantID string, storeID uuid.UUID, at time.Time) ([]model.StorePriceOverride, error) {
	var overrides []model.StorePriceOverride
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND store_id = ? AND is_active = ?", tenantID, storeID, true).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to > ?", at).
		Find(&overrides).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active price overrides")
	}
	return overrides, nil
}

// Create inserts a new override
func (r *StorePriceOverrideRepository) Create(ctx context.Context, override *model.StorePriceOverride) error {
	return dbFrom(ctx, r.db).Create(override).Error
}

// Save persists changes to an existing override
func (r *StorePriceOverrideRepository) Save(ctx context.Context, override *model.StorePriceOverride) error {
	return dbFrom(ctx, r.db).Save(override).Error
}

// Delete soft-deletes the override; the row stays in the table
func (r *StorePriceOverrideRepository) Delete(ctx context.Context, override *model.StorePriceOverride) error {
	return dbFrom(ctx, r.db).Delete(override).Error
}
