package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// SubscriptionPlanRepository is the GORM-backed store for subscription
// plans. Plans are platform-global, so no tenant scoping applies.
type SubscriptionPlanRepository struct {
	db *gorm.DB
}

// NewSubscriptionPlanRepository creates a plan repository over the given connection
func NewSubscriptionPlanRepository(db *gorm.DB) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{db: db}
}

// FindByID returns the plan with the given id, or nil when absent
func (r *SubscriptionPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find plan by id")
	}
	return &plan, nil
}

// FindByCode returns the plan with the given code, or nil when absent
func (r *SubscriptionPlanRepository) FindByCode(ctx context.Context, code string) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := dbFrom(ctx, r.db).Where("code = ?", code).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find plan by code")
	}
	return &plan, nil
}

// ExistsByCode reports whether an active (not deleted) plan holds the code
func (r *SubscriptionPlanRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.SubscriptionPlan{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count plans by code")
	}
	return count > 0, nil
}

// FindPage returns one page of plans
func (r *SubscriptionPlanRepository) FindPage(ctx context.Context, pageable Pageable) (Page[model.SubscriptionPlan], error) {
	var (
		plans []model.SubscriptionPlan
		total int64
	)
	db := dbFrom(ctx, r.db).Model(&model.SubscriptionPlan{})
	if err := db.Count(&total).Error; err != nil {
		return Page[model.SubscriptionPlan]{}, errors.Wrap(err, "count plans")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&plans).Error
	if err != nil {
		return Page[model.SubscriptionPlan]{}, errors.Wrap(err, "list plans")
	}
	return NewPage(plans, pageable, total), nil
}

// FindAllOrdered returns every plan ordered for display
func (r *SubscriptionPlanRepository) FindAllOrdered(ctx context.Context) ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := dbFrom(ctx, r.db).Order("display_order asc").Find(&plans).Error
	if err != nil {
		return nil, errors.Wrap(err, "list plans ordered")
	}
	return plans, nil
}

// Create inserts a new plan
func (r *SubscriptionPlanRepository) Create(ctx context.Context, plan *model.SubscriptionPlan) error {
	return dbFrom(ctx, r.db).Create(plan).Error
}

// Save persists changes to an existing plan
func (r *SubscriptionPlanRepository) Save(ctx context.Context, plan *model.SubscriptionPlan) error {
	return dbFrom(ctx, r.db).Save(plan).Error
}

// Delete soft-deletes the plan; the row stays in the table
func (r *SubscriptionPlanRepository) Delete(ctx context.Context, plan *model.SubscriptionPlan) error {
	return dbFrom(ctx, r.db).Delete(plan).Error
}
