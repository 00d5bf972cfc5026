package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// CustomerHandler exposes the tenant-scoped customer endpoints
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a customer handler
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	customer, err := h.customers.CreateCustomer(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("customer")
	return c.JSON(http.StatusCreated, customer)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.GetCustomerByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// GetByCode handles GET /customers/code/:code
func (h *CustomerHandler) GetByCode(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	customer, err := h.customers.GetCustomerByCode(requestContext(c), tenantID, c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Search handles GET /customers/search?email=...&phone=...
func (h *CustomerHandler) Search(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	if email := c.QueryParam("email"); email != "" {
		customer, err := h.customers.GetCustomerByEmail(requestContext(c), tenantID, email)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, customer)
	}
	if phone := c.QueryParam("phone"); phone != "" {
		customer, err := h.customers.GetCustomerByPhone(requestContext(c), tenantID, phone)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, customer)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or phone query parameter is required"})
}

// List handles GET /customers
func (h *CustomerHandler) List(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	page, err := h.customers.GetAllCustomers(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListByTier handles GET /customers/tier/:tierId
func (h *CustomerHandler) ListByTier(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	tierID, err := uuidParam(c, "tierId")
	if err != nil {
		return err
	}
	page, err := h.customers.GetCustomersByLoyaltyTier(requestContext(c), tenantID, tierID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	customer, err := h.customers.UpdateCustomer(requestContext(c), tenantID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.customers.DeleteCustomer(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("customer")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /customers/:id/activate
func (h *CustomerHandler) Activate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.ActivateCustomer(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// Deactivate handles POST /customers/:id/deactivate
func (h *CustomerHandler) Deactivate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.DeactivateCustomer(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}
