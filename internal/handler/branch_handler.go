package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rjnat/cursorpos-admin/internal/service"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"github.com/rjnat/cursorpos-admin/prometheus"
	"go.uber.org/zap"
)

// BranchHandler exposes the tenant-scoped branch endpoints
type BranchHandler struct {
	branches *service.BranchService
}

// NewBranchHandler creates a branch handler
func NewBranchHandler(branches *service.BranchService) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// Create handles POST /branches
func (h *BranchHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}

	var req service.BranchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	branch, err := h.branches.CreateBranch(requestContext(c), tenantID, req)
	if err != nil {
		return respondError(c, err)
	}

	prometheus.RecordEntityCreated("branch")
	return c.JSON(http.StatusCreated, branch)
}

// Get handles GET /branches/:id
func (h *BranchHandler) Get(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	branch, err := h.branches.GetBranchByID(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

// GetByCode handles GET /branches/code/:code
func (h *BranchHandler) GetByCode(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	branch, err := h.branches.GetBranchByCode(requestContext(c), tenantID, c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

// List handles GET /branches
func (h *BranchHandler) List(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	page, err := h.branches.GetAllBranches(requestContext(c), tenantID, pageableFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Update handles PUT /branches/:id
func (h *BranchHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateBranchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	branch, err := h.branches.UpdateBranch(requestContext(c), tenantID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

// Delete handles DELETE /branches/:id
func (h *BranchHandler) Delete(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.branches.DeleteBranch(requestContext(c), tenantID, id); err != nil {
		return respondError(c, err)
	}
	prometheus.RecordEntityDeleted("branch")
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /branches/:id/activate
func (h *BranchHandler) Activate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	branch, err := h.branches.ActivateBranch(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

// Deactivate handles POST /branches/:id/deactivate
func (h *BranchHandler) Deactivate(c echo.Context) error {
	tenantID, err := tenantFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	branch, err := h.branches.DeactivateBranch(requestContext(c), tenantID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}
