package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// BranchRepository is the GORM-backed store for branches. Every query
// filters by tenant id.
type BranchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a branch repository over the given connection
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// FindByID returns the branch with the given id within the tenant, or nil when absent
func (r *BranchRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find branch by id")
	}
	return &branch, nil
}

// FindByCode returns the branch with the given code within the tenant, or nil when absent
func (r *BranchRepository) FindByCode(ctx context.Context, tenantID, code string) (*model.Branch, error) {
	var branch model.Branch
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND code = ?", tenantID, code).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find branch by code")
	}
	return &branch, nil
}

// ExistsByCode reports whether any branch, deleted or not, holds the code within the tenant
func (r *BranchRepository) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Branch{}).Unscoped().
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count branches by code")
	}
	return count > 0, nil
}

// FindPage returns one page of the tenant's branches
func (r *BranchRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.Branch], error) {
	var (
		branches []model.Branch
		total    int64
	)
	db := dbFrom(ctx, r.db).Model(&model.Branch{}).Where("tenant_id = ?", tenantID)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.Branch]{}, errors.Wrap(err, "count branches")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&branches).Error
	if err != nil {
		return Page[model.Branch]{}, errors.Wrap(err, "list branches")
	}
	return NewPage(branches, pageable, total), nil
}

// Create inserts a new branch
func (r *BranchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return dbFrom(ctx, r.db).Create(branch).Error
}

// Save persists changes to an existing branch
func (r *BranchRepository) Save(ctx context.Context, branch *model.Branch) error {
	return dbFrom(ctx, r.db).Save(branch).Error
}

// Delete soft-deletes the branch; the row stays in the table
func (r *BranchRepository) Delete(ctx context.Context, branch *model.Branch) error {
	return dbFrom(ctx, r.db).Delete(branch).Error
}
