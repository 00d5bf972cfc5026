package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// SubscriptionPlanHandler exposes the platform-level plan endpoints
type SubscriptionPlanHandler struct {
	plans *service.SubscriptionPlanService
}

// NewSubscriptionPlanHandler creates a plan handler
func NewSubscriptionPlanHandler(plans *service.SubscriptionPlanService) *SubscriptionPlanHandler {
	return &SubscriptionPlanHandler{plans: plans}
}

// Create handles POST /plans
func (h *SubscriptionPlanHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req service.SubscriptionPlanRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	plan, err := h.plans.CreatePlan(requestContext(c), req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("subscription_plan")
	return c.JSON(http.StatusCreated, plan)
}

// Get handles GET /plans/:id
func (h *SubscriptionPlanHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.plans.GetPlanByID(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// GetByCode handles GET /plans/code/:code
func (h *SubscriptionPlanHandler) GetByCode(c echo.Context) error {
	plan, err := h.plans.GetPlanByCode(requestContext(c), c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// List handles GET /plans
func (h *SubscriptionPlanHandler) List(c echo.Context) error {
	page, err := h.plans.GetAllPlans(requestContext(c), pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListActive handles GET /plans/active
func (h *SubscriptionPlanHandler) ListActive(c echo.Context) error {
	plans, err := h.plans.GetActivePlans(requestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plans)
}

// Update handles PUT /plans/:id
func (h *SubscriptionPlanHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateSubscriptionPlanRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	plan, err := h.plans.UpdatePlan(requestContext(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete handles DELETE /plans/:id
func (h *SubscriptionPlanHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.plans.DeletePlan(requestContext(c), id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("subscription_plan")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /plans/:id/activate
func (h *SubscriptionPlanHandler) Activate(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.plans.ActivatePlan(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Deactivate handles POST /plans/:id/deactivate
func (h *SubscriptionPlanHandler) Deactivate(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.plans.DeactivatePlan(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// CheckChange handles GET /plans/:id/can-change. Current usage comes in
// as query parameters so callers can ask before switching a tenant over.
func (h *SubscriptionPlanHandler) CheckChange(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	users, _ := strconv.Atoi(c.QueryParam("users"))
	stores, _ := strconv.Atoi(c.QueryParam("stores"))
	products, _ := strconv.Atoi(c.QueryParam("products"))

	allowed, err := h.plans.CanChangePlan(requestContext(c), id, users, stores, products)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"allowed": allowed})
}
