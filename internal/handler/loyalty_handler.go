package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoyaltyHandler exposes the tier, ledger, and point calculation endpoints
type LoyaltyHandler struct {
	loyalty     *service.LoyaltyService
	tenants     *service.TenantService
	defaultRate decimal.Decimal
}

// NewLoyaltyHandler creates a loyalty handler. defaultRate is the
// points-per-currency rate used for tenants without an explicit one.
func NewLoyaltyHandler(loyalty *service.LoyaltyService, tenants *service.TenantService, defaultRate decimal.Decimal) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty, tenants: tenants, defaultRate: defaultRate}
}

// CreateTier handles POST /loyalty/tiers
func (h *LoyaltyHandler) CreateTier(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.LoyaltyTierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tier, err := h.loyalty.CreateTier(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("loyalty_tier")
	return c.JSON(http.StatusCreated, tier)
}

// GetTier handles GET /loyalty/tiers/:id
func (h *LoyaltyHandler) GetTier(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	tier, err := h.loyalty.GetTierByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tier)
}

// GetTierByCode handles GET /loyalty/tiers/code/:code
func (h *LoyaltyHandler) GetTierByCode(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	tier, err := h.loyalty.GetTierByCode(requestContext(c), tenantID, c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tier)
}

// ListTiers handles GET /loyalty/tiers
func (h *LoyaltyHandler) ListTiers(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	if c.QueryParam("ordered") == "true" {
		tiers, err := h.loyalty.GetAllTiersOrdered(requestContext(c), tenantID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, tiers)
	}
	page, err := h.loyalty.GetAllTiers(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateTier handles PUT /loyalty/tiers/:id
func (h *LoyaltyHandler) UpdateTier(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateLoyaltyTierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	tier, err := h.loyalty.UpdateTier(requestContext(c), tenantID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tier)
}

// DeleteTier handles DELETE /loyalty/tiers/:id
func (h *LoyaltyHandler) DeleteTier(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.loyalty.DeleteTier(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("loyalty_tier")
	return c.NoContent(http.StatusNoContent)
}

// RecordTransaction handles POST /loyalty/transactions
func (h *LoyaltyHandler) RecordTransaction(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.LoyaltyTransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	txn, tierChanged, err := h.loyalty.RecordTransaction(requestContext(c), tenantID, req)
	if err != nil {
		if apperr.IsInvalidArgument(err) {
			prometheus.RecordInsufficientPoints()
		}
		return respondError(c, err)
	}

	prometheus.RecordLoyaltyTransaction(string(txn.TransactionType), txn.Points)
	if tierChanged {
		prometheus.RecordTierChange()
	}
	return c.JSON(http.StatusCreated, txn)
}

// GetTransaction handles GET /loyalty/transactions/:id
func (h *LoyaltyHandler) GetTransaction(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	txn, err := h.loyalty.GetTransactionByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, txn)
}

// ListTransactions handles GET /loyalty/transactions
func (h *LoyaltyHandler) ListTransactions(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	page, err := h.loyalty.GetAllTransactions(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListCustomerTransactions handles GET /loyalty/customers/:customerId/transactions
func (h *LoyaltyHandler) ListCustomerTransactions(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	customerID, err := uuidParam(c, "customerId")
	if err != nil {
		return err
	}
	page, err := h.loyalty.GetTransactionsByCustomer(requestContext(c), tenantID, customerID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// pointsCalculationRequest carries the inputs for a purchase point quote
type pointsCalculationRequest struct {
	CustomerID     string          `json:"customer_id"`
	PurchaseAmount decimal.Decimal `json:"purchase_amount"`
}

// CalculatePoints handles POST /loyalty/points/calculate. The tenant's
// earn rate is read from its profile; the customer's tier multiplier is
// applied on top. Nothing is persisted.
func (h *LoyaltyHandler) CalculatePoints(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req pointsCalculationRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer_id"})
	}

	ctx := requestContext(c)
	tenant, err := h.tenants.GetTenantByCode(ctx, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	rate := tenant.LoyaltyPointsPerCurrency
	if rate.IsZero() {
		rate = h.defaultRate
	}

	points, err := h.loyalty.PointsForPurchase(ctx, tenantID, customerID, req.PurchaseAmount, rate)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customer_id":     customerID,
		"purchase_amount": req.PurchaseAmount,
		"points":          points,
	})
}
