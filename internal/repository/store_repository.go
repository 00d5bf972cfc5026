package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// StoreRepository is the GORM-backed store for store locations, scoped
// by tenant id on every query.
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a store repository over the given connection
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// FindByID returns the store with the given id within the tenant, or nil when absent
func (r *StoreRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find store by id")
	}
	return &store, nil
}

// FindByCode returns the store with the given code within the tenant, or nil when absent
func (r *StoreRepository) FindByCode(ctx context.Context, tenantID, code string) (*model.Store, error) {
	var store model.Store
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND code = ?", tenantID, code).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find store by code")
	}
	return &store, nil
}

// ExistsByCode reports whether any store, deleted or not, holds the code within the tenant
func (r *StoreRepository) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Store{}).Unscoped().
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count stores by code")
	}
	return count > 0, nil
}

// FindPage returns one page of the tenant's stores
func (r *StoreRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.Store], error) {
	var (
		stores []model.Store
		total  int64
	)
	db := dbFrom(ctx, r.db).Model(&model.Store{}).Where("tenant_id = ?", tenantID)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.Store]{}, errors.Wrap(err, "count stores")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&stores).Error
	if err != nil {
		return Page[model.Store]{}, errors.Wrap(err, "list stores")
	}
	return NewPage(stores, pageable, total), nil
}

// CountByTenant returns the number of active stores in the tenant
func (r *StoreRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Store{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count stores by tenant")
	}
	return count, nil
}

// Create inserts a new store
func (r *StoreRepository) Create(ctx context.Context, store *model.Store) error {
	return dbFrom(ctx, r.db).Create(store).Error
}

// Save persists changes to an existing store
func (r *StoreRepository) Save(ctx context.Context, store *model.Store) error {
	return dbFrom(ctx, r.db).Save(store).Error
}

// Delete soft-deletes the store; the row stays in the table
func (r *StoreRepository) Delete(ctx context.Context, store *model.Store) error {
	return dbFrom(ctx, r.db).Delete(store).Error
}
