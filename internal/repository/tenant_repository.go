package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// TenantRepository is the GORM-backed store for tenants. Tenants are a
// global table: no tenant-id scoping applies to these queries.
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a tenant repository over the given connection
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// FindByID returns the tenant with the given id, or nil when absent
func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	var tenant model.Tenant
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tenant by id")
	}
	return &tenant, nil
}

// FindByCode returns the tenant with the given code, or nil when absent
func (r *TenantRepository) FindByCode(ctx context.Context, code string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := dbFrom(ctx, r.db).Where("code = ?", code).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tenant by code")
	}
	return &tenant, nil
}

// ExistsByCode reports whether any tenant, deleted or not, holds the code
func (r *TenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Tenant{}).Unscoped().Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count tenants by code")
	}
	return count > 0, nil
}

// ExistsBySubdomain reports whether any tenant holds the subdomain
func (r *TenantRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Tenant{}).Unscoped().Where("subdomain = ?", subdomain).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count tenants by subdomain")
	}
	return count > 0, nil
}

// FindPage returns one page of tenants
func (r *TenantRepository) FindPage(ctx context.Context, pageable Pageable) (Page[model.Tenant], error) {
	var (
		tenants []model.Tenant
		total   int64
	)
	db := dbFrom(ctx, r.db).Model(&model.Tenant{})
	if err := db.Count(&total).Error; err != nil {
		return Page[model.Tenant]{}, errors.Wrap(err, "count tenants")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&tenants).Error
	if err != nil {
		return Page[model.Tenant]{}, errors.Wrap(err, "list tenants")
	}
	return NewPage(tenants, pageable, total), nil
}

// Create inserts a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *model.Tenant) error {
	return dbFrom(ctx, r.db).Create(tenant).Error
}

// Save persists changes to an existing tenant
func (r *TenantRepository) Save(ctx context.Context, tenant *model.Tenant) error {
	return dbFrom(ctx, r.db).Save(tenant).Error
}

// Delete soft-deletes the tenant; the row stays in the table
func (r *TenantRepository) Delete(ctx context.Context, tenant *model.Tenant) error {
	return dbFrom(ctx, r.db).Delete(tenant).Error
}
