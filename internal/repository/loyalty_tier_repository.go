package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// LoyaltyTierRepository is the GORM-backed store for loyalty tiers,
// scoped by tenant id on every query.
type LoyaltyTierRepository struct {
	db *gorm.DB
}

// NewLoyaltyTierRepository creates a tier repository over the given connection
func NewLoyaltyTierRepository(db *gorm.DB) *LoyaltyTierRepository {
	return &LoyaltyTierRepository{db: db}
}

// FindByID returns the tier with the given id within the tenant, or nil when absent
func (r *LoyaltyTierRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTier, error) {
	var tier model.LoyaltyTier
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tier by id")
	}
	return &tier, nil
}

// FindByCode returns the tier with the given code within the tenant, or nil when absent
func (r *LoyaltyTierRepository) FindByCode(ctx context.Context, tenantID, code string) (*model.LoyaltyTier, error) {
	var tier model.LoyaltyTier
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND code = ?", tenantID, code).First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tier by code")
	}
	return &tier, nil
}

// ExistsByCode reports whether any tier, deleted or not, holds the code within the tenant
func (r *LoyaltyTierRepository) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.LoyaltyTier{}).Unscoped().
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count tiers by code")
	}
	return count > 0, nil
}

// FindPage returns one page of the tenant's tiers
func (r *LoyaltyTierRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.LoyaltyTier], error) {
	var (
		tiers []model.LoyaltyTier
		total int64
	)
	db := dbFrom(ctx, r.db).Model(&model.LoyaltyTier{}).Where("tenant_id = ?", tenantID)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.LoyaltyTier]{}, errors.Wrap(err, "count tiers")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&tiers).Error
	if err != nil {
		return Page[model.LoyaltyTier]{}, errors.Wrap(err, "list tiers")
	}
	return NewPage(tiers, pageable, total), nil
}

// FindAllOrdered returns the tenant's tiers ordered by ascending threshold
func (r *LoyaltyTierRepository) FindAllOrdered(ctx context.Context, tenantID string) ([]model.LoyaltyTier, error) {
	var tiers []model.LoyaltyTier
	err := dbFrom(ctx, r.db).Where("tenant_id = ?", tenantID).
		Order("min_points asc").Find(&tiers).Error
	if err != nil {
		return nil, errors.Wrap(err, "list tiers ordered")
	}
	return tiers, nil
}

// FindTierForPoints returns the highest active tier whose MinPoints
// threshold is at or below the given total, or nil when the total is
// below every threshold. Equal thresholds resolve to the lowest code.
func (r *LoyaltyTierRepository) FindTierForPoints(ctx context.Context, tenantID string, totalPoints int) (*model.LoyaltyTier, error) {
	var tier model.LoyaltyTier
	err := dbFrom(ctx, r.db).
		Where("tenant_id = ? AND min_points <= ? AND is_active = ?", tenantID, totalPoints, true).
		Order("min_points desc").Order("code asc").
		First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tier for points")
	}
	return &tier, nil
}

// Create inserts a new tier
func (r *LoyaltyTierRepository) Create(ctx context.Context, tier *model.LoyaltyTier) error {
	return dbFrom(ctx, r.db).Create(tier).Error
}

// Save persists changes to an existing tier
func (r *LoyaltyTierRepository) Save(ctx context.Context, tier *model.LoyaltyTier) error {
	return dbFrom(ctx, r.db).Save(tier).Error
}

// Delete soft-deletes the tier; the row stays in the table
func (r *LoyaltyTierRepository) Delete(ctx context.Context, tier *model.LoyaltyTier) error {
	return dbFrom(ctx, r.db).Delete(tier).Error
}
