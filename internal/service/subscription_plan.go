package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubscriptionPlanService manages subscription plans. Plans are
// platform-global: codes are unique across all tenants.
type SubscriptionPlanService struct {
	plans SubscriptionPlanStore
}

// NewSubscriptionPlanService creates a plan service
func NewSubscriptionPlanService(plans SubscriptionPlanStore) *SubscriptionPlanService {
	return &SubscriptionPlanService{plans: plans}
}

// SubscriptionPlanRequest carries the fields for creating a plan
type SubscriptionPlanRequest struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	MaxUsers     *int             `json:"max_users,omitempty"`
	MaxStores    *int             `json:"max_stores,omitempty"`
	MaxProducts  *int             `json:"max_products,omitempty"`
	PriceMonthly *decimal.Decimal `json:"price_monthly,omitempty"`
	PriceYearly  *decimal.Decimal `json:"price_yearly,omitempty"`
	DisplayOrder int              `json:"display_order"`
	Features     string           `json:"features,omitempty"`
}

// UpdateSubscriptionPlanRequest carries a partial update; nil fields are left untouched
type UpdateSubscriptionPlanRequest struct {
	Code         *string          `json:"code,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	MaxUsers     *int             `json:"max_users,omitempty"`
	MaxStores    *int             `json:"max_stores,omitempty"`
	MaxProducts  *int             `json:"max_products,omitempty"`
	PriceMonthly *decimal.Decimal `json:"price_monthly,omitempty"`
	PriceYearly  *decimal.Decimal `json:"price_yearly,omitempty"`
	DisplayOrder *int             `json:"display_order,omitempty"`
	Features     *string          `json:"features,omitempty"`
}

// CreatePlan creates a plan with a globally unique code. Absent limits
// default to unlimited.
func (s *SubscriptionPlanService) CreatePlan(ctx context.Context, req SubscriptionPlanRequest) (*model.SubscriptionPlan, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" || req.Name == "" {
		return nil, apperr.InvalidArgument("code and name are required")
	}

	exists, err := s.plans.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("plan with code %s already exists", req.Code)
	}

	plan := &model.SubscriptionPlan{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		MaxUsers:     model.PlanLimitUnlimited,
		MaxStores:    model.PlanLimitUnlimited,
		MaxProducts:  model.PlanLimitUnlimited,
		PriceMonthly: decimal.Zero,
		PriceYearly:  decimal.Zero,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
		Features:     req.Features,
	}
	if req.MaxUsers != nil {
		plan.MaxUsers = *req.MaxUsers
	}
	if req.MaxStores != nil {
		plan.MaxStores = *req.MaxStores
	}
	if req.MaxProducts != nil {
		plan.MaxProducts = *req.MaxProducts
	}
	if req.PriceMonthly != nil {
		plan.PriceMonthly = *req.PriceMonthly
	}
	if req.PriceYearly != nil {
		plan.PriceYearly = *req.PriceYearly
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("plan with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Subscription plan created", zap.String("code", plan.Code), zap.String("id", plan.ID.String()))
	return plan, nil
}

// GetPlanByID returns a plan by id
func (s *SubscriptionPlanService) GetPlanByID(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFoundf("subscription plan not found with ID: %s", id)
	}
	return plan, nil
}

// GetPlanByCode returns a plan by code
func (s *SubscriptionPlanService) GetPlanByCode(ctx context.Context, code string) (*model.SubscriptionPlan, error) {
	plan, err := s.plans.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFoundf("plan not found with code: %s", code)
	}
	return plan, nil
}

// GetAllPlans returns one page of plans
func (s *SubscriptionPlanService) GetAllPlans(ctx context.Context, pageable repository.Pageable) (repository.Page[model.SubscriptionPlan], error) {
	return s.plans.FindPage(ctx, pageable)
}

// GetActivePlans returns all active plans in display order
func (s *SubscriptionPlanService) GetActivePlans(ctx context.Context) ([]model.SubscriptionPlan, error) {
	plans, err := s.plans.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]model.SubscriptionPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.IsActive {
			active = append(active, plan)
		}
	}
	return active, nil
}

// UpdatePlan applies the non-nil fields of req to the plan. Changing
// the code to one already in use fails with AlreadyExists.
func (s *SubscriptionPlanService) UpdatePlan(ctx context.Context, id uuid.UUID, req UpdateSubscriptionPlanRequest) (*model.SubscriptionPlan, error) {
	log := logger.FromContext(ctx)
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFoundf("subscription plan not found with ID: %s", id)
	}

	if req.Code != nil && *req.Code != plan.Code {
		exists, err := s.plans.ExistsByCode(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.AlreadyExistsf("plan with code %s already exists", *req.Code)
		}
		plan.Code = *req.Code
	}
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.MaxUsers != nil {
		plan.MaxUsers = *req.MaxUsers
	}
	if req.MaxStores != nil {
		plan.MaxStores = *req.MaxStores
	}
	if req.MaxProducts != nil {
		plan.MaxProducts = *req.MaxProducts
	}
	if req.PriceMonthly != nil {
		plan.PriceMonthly = *req.PriceMonthly
	}
	if req.PriceYearly != nil {
		plan.PriceYearly = *req.PriceYearly
	}
	if req.DisplayOrder != nil {
		plan.DisplayOrder = *req.DisplayOrder
	}
	if req.Features != nil {
		plan.Features = *req.Features
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	log.Info("Subscription plan updated", zap.String("id", id.String()))
	return plan, nil
}

// DeletePlan soft-deletes a plan
func (s *SubscriptionPlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return apperr.NotFoundf("subscription plan not found with ID: %s", id)
	}
	if err := s.plans.Delete(ctx, plan); err != nil {
		return err
	}
	log.Info("Subscription plan deleted", zap.String("id", id.String()))
	return nil
}

// ActivatePlan marks a plan active
func (s *SubscriptionPlanService) ActivatePlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	return s.setActive(ctx, id, true)
}

// DeactivatePlan marks a plan inactive
func (s *SubscriptionPlanService) DeactivatePlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error) {
	return s.setActive(ctx, id, false)
}

func (s *SubscriptionPlanService) setActive(ctx context.Context, id uuid.UUID, active bool) (*model.SubscriptionPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperr.NotFoundf("subscription plan not found with ID: %s", id)
	}
	plan.IsActive = active
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// CanChangePlan reports whether current usage fits within the target
// plan's limits. A limit of -1 means unlimited. Used to block
// downgrades that would strand existing users, stores, or products.
func (s *SubscriptionPlanService) CanChangePlan(ctx context.Context, targetPlanID uuid.UUID, currentUsers, currentStores, currentProducts int) (bool, error) {
	plan, err := s.plans.FindByID(ctx, targetPlanID)
	if err != nil {
		return false, err
	}
	if plan == nil {
		return false, apperr.NotFoundf("subscription plan not found with ID: %s", targetPlanID)
	}

	usersOK := plan.HasUnlimitedUsers() || currentUsers <= plan.MaxUsers
	storesOK := plan.HasUnlimitedStores() || currentStores <= plan.MaxStores
	productsOK := plan.HasUnlimitedProducts() || currentProducts <= plan.MaxProducts

	return usersOK && storesOK && productsOK, nil
}
