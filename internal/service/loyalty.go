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

// LoyaltyService manages the loyalty program: tier definitions, the
// point ledger, and tier assignment.
type LoyaltyService struct {
	tiers     LoyaltyTierStore
	ledger    LoyaltyLedgerStore
	customers CustomerStore
	tx        TxRunner
}

// NewLoyaltyService creates a loyalty service
func NewLoyaltyService(tiers LoyaltyTierStore, ledger LoyaltyLedgerStore, customers CustomerStore, tx TxRunner) *LoyaltyService {
	return &LoyaltyService{
		tiers:     tiers,
		ledger:    ledger,
		customers: customers,
		tx:        tx,
	}
}

// LoyaltyTierRequest carries the fields for creating a tier
type LoyaltyTierRequest struct {
	Code               string           `json:"code"`
	Name               string           `json:"name"`
	MinPoints          int              `json:"min_points"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	PointsMultiplier   *decimal.Decimal `json:"points_multiplier,omitempty"`
	Color              string           `json:"color,omitempty"`
	Icon               string           `json:"icon,omitempty"`
	Benefits           string           `json:"benefits,omitempty"`
	DisplayOrder       int              `json:"display_order"`
}

// UpdateLoyaltyTierRequest carries a partial tier update; nil fields are left untouched
type UpdateLoyaltyTierRequest struct {
	Name               *string          `json:"name,omitempty"`
	MinPoints          *int             `json:"min_points,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	PointsMultiplier   *decimal.Decimal `json:"points_multiplier,omitempty"`
	Color              *string          `json:"color,omitempty"`
	Icon               *string          `json:"icon,omitempty"`
	Benefits           *string          `json:"benefits,omitempty"`
	DisplayOrder       *int             `json:"display_order,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

// CreateTier creates a loyalty tier with a tenant-unique code
func (s *LoyaltyService) CreateTier(ctx context.Context, tenantID string, req LoyaltyTierRequest) (*model.LoyaltyTier, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" || req.Name == "" {
		return nil, apperr.InvalidArgument("code and name are required")
	}

	exists, err := s.tiers.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("tier with code %s already exists", req.Code)
	}

	tier := &model.LoyaltyTier{
		TenantID:           tenantID,
		Code:               req.Code,
		Name:               req.Name,
		MinPoints:          req.MinPoints,
		DiscountPercentage: decimal.Zero,
		PointsMultiplier:   decimal.NewFromInt(1),
		Color:              req.Color,
		Icon:               req.Icon,
		Benefits:           req.Benefits,
		DisplayOrder:       req.DisplayOrder,
		IsActive:           true,
	}
	if req.DiscountPercentage != nil {
		tier.DiscountPercentage = *req.DiscountPercentage
	}
	if req.PointsMultiplier != nil {
		tier.PointsMultiplier = *req.PointsMultiplier
	}

	if err := s.tiers.Create(ctx, tier); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("tier with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Loyalty tier created",
		zap.String("tenant_id", tenantID),
		zap.String("code", tier.Code),
		zap.String("id", tier.ID.String()))
	return tier, nil
}

// GetTierByID returns a tier by id
func (s *LoyaltyService) GetTierByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTier, error) {
	tier, err := s.tiers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperr.NotFoundf("loyalty tier not found with ID: %s", id)
	}
	return tier, nil
}

// GetTierByCode returns a tier by its tenant-unique code
func (s *LoyaltyService) GetTierByCode(ctx context.Context, tenantID, code string) (*model.LoyaltyTier, error) {
	tier, err := s.tiers.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperr.NotFoundf("tier not found with code: %s", code)
	}
	return tier, nil
}

// GetAllTiers returns one page of the tenant's tiers
func (s *LoyaltyService) GetAllTiers(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTier], error) {
	return s.tiers.FindPage(ctx, tenantID, pageable)
}

// GetAllTiersOrdered returns the tenant's tiers by ascending threshold
func (s *LoyaltyService) GetAllTiersOrdered(ctx context.Context, tenantID string) ([]model.LoyaltyTier, error) {
	return s.tiers.FindAllOrdered(ctx, tenantID)
}

// UpdateTier applies the non-nil fields of req to the tier
func (s *LoyaltyService) UpdateTier(ctx context.Context, tenantID string, id uuid.UUID, req UpdateLoyaltyTierRequest) (*model.LoyaltyTier, error) {
	log := logger.FromContext(ctx)
	tier, err := s.tiers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperr.NotFoundf("loyalty tier not found with ID: %s", id)
	}

	if req.Name != nil {
		tier.Name = *req.Name
	}
	if req.MinPoints != nil {
		tier.MinPoints = *req.MinPoints
	}
	if req.DiscountPercentage != nil {
		tier.DiscountPercentage = *req.DiscountPercentage
	}
	if req.PointsMultiplier != nil {
		tier.PointsMultiplier = *req.PointsMultiplier
	}
	if req.Color != nil {
		tier.Color = *req.Color
	}
	if req.Icon != nil {
		tier.Icon = *req.Icon
	}
	if req.Benefits != nil {
		tier.Benefits = *req.Benefits
	}
	if req.DisplayOrder != nil {
		tier.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		tier.IsActive = *req.IsActive
	}

	if err := s.tiers.Save(ctx, tier); err != nil {
		return nil, err
	}

	log.Info("Loyalty tier updated", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return tier, nil
}

// DeleteTier soft-deletes a tier. Customers already assigned to it keep
// the assignment until their next transaction re-runs tier lookup.
func (s *LoyaltyService) DeleteTier(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	tier, err := s.tiers.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if tier == nil {
		return apperr.NotFoundf("loyalty tier not found with ID: %s", id)
	}

	if err := s.tiers.Delete(ctx, tier); err != nil {
		return err
	}
	log.Info("Loyalty tier deleted", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return nil
}

// LoyaltyTransactionRequest carries the fields for recording a ledger entry
type LoyaltyTransactionRequest struct {
	CustomerID      uuid.UUID                    `json:"customer_id"`
	TransactionType model.LoyaltyTransactionType `json:"transaction_type"`
	PointsChange    int                          `json:"points_change"`
	Description     string                       `json:"description,omitempty"`
	ReferenceType   string                       `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID                   `json:"reference_id,omitempty"`
}

// RecordTransaction applies a point delta to a customer as one atomic
// unit: the ledger insert and the customer update commit or roll back
// together. The customer row is locked for the duration so the
// insufficient-points check cannot race a concurrent mutation.
//
// Redemptions only lower AvailablePoints; TotalPoints and
// LifetimePoints grow on positive deltas and never decrease. The
// returned bool reports whether the transaction moved the customer to
// a different tier.
func (s *LoyaltyService) RecordTransaction(ctx context.Context, tenantID string, req LoyaltyTransactionRequest) (*model.LoyaltyTransaction, bool, error) {
	log := logger.FromContext(ctx)
	if req.TransactionType == "" {
		return nil, false, apperr.InvalidArgument("transaction_type is required")
	}

	var (
		created     *model.LoyaltyTransaction
		tierChanged bool
	)
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.FindByIDForUpdate(ctx, tenantID, req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperr.NotFoundf("customer not found with ID: %s", req.CustomerID)
		}

		newBalance := customer.AvailablePoints + req.PointsChange
		if newBalance < 0 {
			return apperr.InvalidArgumentf("insufficient points: current %d, requested %d",
				customer.AvailablePoints, req.PointsChange)
		}

		txn := &model.LoyaltyTransaction{
			TenantID:        tenantID,
			CustomerID:      customer.ID,
			TransactionType: req.TransactionType,
			Points:          req.PointsChange,
			BalanceAfter:    newBalance,
			ReferenceID:     req.ReferenceID,
			ReferenceType:   req.ReferenceType,
			Description:     req.Description,
		}
		if err := s.ledger.Create(ctx, txn); err != nil {
			return err
		}

		customer.AvailablePoints = newBalance
		if req.PointsChange > 0 {
			customer.TotalPoints += req.PointsChange
			customer.LifetimePoints += req.PointsChange
		}

		// Tier re-assignment runs on the possibly increased total. No
		// matching tier leaves the current assignment in place.
		tier, err := s.tiers.FindTierForPoints(ctx, tenantID, customer.TotalPoints)
		if err != nil {
			return err
		}
		if tier != nil {
			tierChanged = customer.LoyaltyTierID == nil || *customer.LoyaltyTierID != tier.ID
			customer.LoyaltyTierID = &tier.ID
		}

		if err := s.customers.Save(ctx, customer); err != nil {
			return err
		}

		created = txn
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	log.Info("Loyalty transaction recorded",
		zap.String("tenant_id", tenantID),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("type", string(req.TransactionType)),
		zap.Int("points", req.PointsChange),
		zap.Int("balance_after", created.BalanceAfter),
		zap.Bool("tier_changed", tierChanged))
	return created, tierChanged, nil
}

// GetTransactionByID returns a ledger entry by id
func (s *LoyaltyService) GetTransactionByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.LoyaltyTransaction, error) {
	txn, err := s.ledger.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperr.NotFoundf("transaction not found with ID: %s", id)
	}
	return txn, nil
}

// GetTransactionsByCustomer returns one page of a customer's ledger entries
func (s *LoyaltyService) GetTransactionsByCustomer(ctx context.Context, tenantID string, customerID uuid.UUID, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error) {
	return s.ledger.FindPageByCustomer(ctx, tenantID, customerID, pageable)
}

// GetAllTransactions returns one page of the tenant's ledger entries
func (s *LoyaltyService) GetAllTransactions(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.LoyaltyTransaction], error) {
	return s.ledger.FindPage(ctx, tenantID, pageable)
}

// PointsForPurchase computes the points a purchase earns for a
// customer: floor(amount * pointsPerCurrency * tierMultiplier). The
// multiplier defaults to 1 when the customer has no tier or the tier
// has been deleted. Pure read; nothing is mutated.
func (s *LoyaltyService) PointsForPurchase(ctx context.Context, tenantID string, customerID uuid.UUID, purchaseAmount, pointsPerCurrency decimal.Decimal) (int64, error) {
	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, apperr.NotFoundf("customer not found with ID: %s", customerID)
	}

	multiplier := decimal.NewFromInt(1)
	if customer.LoyaltyTierID != nil {
		tier, err := s.tiers.FindByID(ctx, tenantID, *customer.LoyaltyTierID)
		if err != nil {
			return 0, err
		}
		if tier != nil {
			multiplier = tier.PointsMultiplier
		}
	}

	// Exact decimal math throughout; truncation to an integer happens
	// only at the last step.
	return purchaseAmount.Mul(pointsPerCurrency).Mul(multiplier).IntPart(), nil
}
