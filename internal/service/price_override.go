package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceOverrideService manages store-specific product prices
type PriceOverrideService struct {
	overrides PriceOverrideStore
	stores    StoreStore
}

// NewPriceOverrideService creates a price override service
func NewPriceOverrideService(overrides PriceOverrideStore, stores StoreStore) *PriceOverrideService {
	return &PriceOverrideService{overrides: overrides, stores: stores}
}

// PriceOverrideRequest carries the fields for creating an override
type PriceOverrideRequest struct {
	StoreID            uuid.UUID        `json:"store_id"`
	ProductID          uuid.UUID        `json:"product_id"`
	OverridePrice      decimal.Decimal  `json:"override_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	EffectiveFrom      *time.Time       `json:"effective_from,omitempty"`
	EffectiveTo        *time.Time       `json:"effective_to,omitempty"`
}

// UpdatePriceOverrideRequest carries a partial update; nil fields are left untouched
type UpdatePriceOverrideRequest struct {
	OverridePrice      *decimal.Decimal `json:"override_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	EffectiveFrom      *time.Time       `json:"effective_from,omitempty"`
	EffectiveTo        *time.Time       `json:"effective_to,omitempty"`
}

// CreateOverride creates a price override for a store and product pair.
// The store must exist, and only one override per pair is allowed.
func (s *PriceOverrideService) CreateOverride(ctx context.Context, tenantID string, req PriceOverrideRequest) (*model.StorePriceOverride, error) {
	log := logger.FromContext(ctx)
	if req.StoreID == uuid.Nil || req.ProductID == uuid.Nil {
		return nil, apperr.InvalidArgument("store_id and product_id are required")
	}
	if req.OverridePrice.IsNegative() {
		return nil, apperr.InvalidArgument("override_price must not be negative")
	}

	store, err := s.stores.FindByID(ctx, tenantID, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFoundf("store not found with ID: %s", req.StoreID)
	}

	exists, err := s.overrides.ExistsForStoreProduct(ctx, tenantID, req.StoreID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("price override already exists for store %s and product %s", req.StoreID, req.ProductID)
	}

	effectiveFrom := time.Now().UTC()
	if req.EffectiveFrom != nil {
		effectiveFrom = *req.EffectiveFrom
	}
	if req.EffectiveTo != nil && !req.EffectiveTo.After(effectiveFrom) {
		return nil, apperr.InvalidArgument("effective_to must be after effective_from")
	}

	override := &model.StorePriceOverride{
		TenantID:           tenantID,
		StoreID:            req.StoreID,
		ProductID:          req.ProductID,
		OverridePrice:      req.OverridePrice,
		DiscountPercentage: req.DiscountPercentage,
		EffectiveFrom:      effectiveFrom,
		EffectiveTo:        req.EffectiveTo,
		IsActive:           true,
	}

	if err := s.overrides.Create(ctx, override); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("price override already exists for store %s and product %s", req.StoreID, req.ProductID)
		}
		return nil, err
	}

	log.Info("Price override created",
		zap.String("tenant_id", tenantID),
		zap.String("store_id", req.StoreID.String()),
		zap.String("product_id", req.ProductID.String()))
	return override, nil
}

// GetOverrideByID returns one of the tenant's overrides by id
func (s *PriceOverrideService) GetOverrideByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error) {
	override, err := s.overrides.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if override == nil {
		return nil, apperr.NotFoundf("price override not found with ID: %s", id)
	}
	return override, nil
}

// GetOverridesByStore returns one page of overrides for a store
func (s *PriceOverrideService) GetOverridesByStore(ctx context.Context, tenantID string, storeID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error) {
	return s.overrides.FindPageByStore(ctx, tenantID, storeID, pageable)
}

// GetOverridesByProduct returns one page of overrides for a product
func (s *PriceOverrideService) GetOverridesByProduct(ctx context.Context, tenantID string, productID uuid.UUID, pageable repository.Pageable) (repository.Page[model.StorePriceOverride], error) {
	return s.overrides.FindPageByProduct(ctx, tenantID, productID, pageable)
}

// GetActiveOverride returns the override in effect right now for a
// store and product, or NotFound when none applies.
func (s *PriceOverrideService) GetActiveOverride(ctx context.Context, tenantID string, storeID, productID uuid.UUID) (*model.StorePriceOverride, error) {
	override, err := s.overrides.FindActiveOverride(ctx, tenantID, storeID, productID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if override == nil {
		return nil, apperr.NotFoundf("no active price override for store %s and product %s", storeID, productID)
	}
	return override, nil
}

// GetActiveOverridesForStore returns all overrides in effect right now for a store
func (s *PriceOverrideService) GetActiveOverridesForStore(ctx context.Context, tenantID string, storeID uuid.UUID) ([]model.StorePriceOverride, error) {
	return s.overrides.FindAllActiveForStore(ctx, tenantID, storeID, time.Now().UTC())
}

// UpdateOverride applies the non-nil fields of req to the override
func (s *PriceOverrideService) UpdateOverride(ctx context.Context, tenantID string, id uuid.UUID, req UpdatePriceOverrideRequest) (*model.StorePriceOverride, error) {
	log := logger.FromContext(ctx)
	override, err := s.overrides.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if override == nil {
		return nil, apperr.NotFoundf("price override not found with ID: %s", id)
	}

	if req.OverridePrice != nil {
		if req.OverridePrice.IsNegative() {
			return nil, apperr.InvalidArgument("override_price must not be negative")
		}
		override.OverridePrice = *req.OverridePrice
	}
	if req.DiscountPercentage != nil {
		override.DiscountPercentage = req.DiscountPercentage
	}
	if req.EffectiveFrom != nil {
		override.EffectiveFrom = *req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		override.EffectiveTo = req.EffectiveTo
	}
	if override.EffectiveTo != nil && !override.EffectiveTo.After(override.EffectiveFrom) {
		return nil, apperr.InvalidArgument("effective_to must be after effective_from")
	}

	if err := s.overrides.Save(ctx, override); err != nil {
		return nil, err
	}
	log.Info("Price override updated", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return override, nil
}

// DeleteOverride soft-deletes an override
func (s *PriceOverrideService) DeleteOverride(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	override, err := s.overrides.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if override == nil {
		return apperr.NotFoundf("price override not found with ID: %s", id)
	}
	if err := s.overrides.Delete(ctx, override); err != nil {
		return err
	}
	log.Info("Price override deleted", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return nil
}

// ActivateOverride marks an override active
func (s *PriceOverrideService) ActivateOverride(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error) {
	return s.setActive(ctx, tenantID, id, true)
}

// DeactivateOverride marks an override inactive
func (s *PriceOverrideService) DeactivateOverride(ctx context.Context, tenantID string, id uuid.UUID) (*model.StorePriceOverride, error) {
	return s.setActive(ctx, tenantID, id, false)
}

func (s *PriceOverrideService) setActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) (*model.StorePriceOverride, error) {
	override, err := s.overrides.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if override == nil {
		return nil, apperr.NotFoundf("price override not found with ID: %s", id)
	}
	override.IsActive = active
	if err := s.overrides.Save(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}
