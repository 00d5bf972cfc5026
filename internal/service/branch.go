package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/internal/repository"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/rjnat/cursorpos-admin/pkg/logger"
	"go.uber.org/zap"
)

// BranchService manages branches within a tenant
type BranchService struct {
	branches BranchStore
}

// NewBranchService creates a branch service
func NewBranchService(branches BranchStore) *BranchService {
	return &BranchService{branches: branches}
}

// BranchRequest carries the fields for creating a branch
type BranchRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	ManagerName  string `json:"manager_name,omitempty"`
	ManagerEmail string `json:"manager_email,omitempty"`
	ManagerPhone string `json:"manager_phone,omitempty"`
}

// UpdateBranchRequest carries a partial update; nil fields are left untouched
type UpdateBranchRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	ManagerName  *string `json:"manager_name,omitempty"`
	ManagerEmail *string `json:"manager_email,omitempty"`
	ManagerPhone *string `json:"manager_phone,omitempty"`
}

// CreateBranch creates a branch with a code unique within the tenant
func (s *BranchService) CreateBranch(ctx context.Context, tenantID string, req BranchRequest) (*model.Branch, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" || req.Name == "" {
		return nil, apperr.InvalidArgument("code and name are required")
	}

	exists, err := s.branches.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("branch with code %s already exists", req.Code)
	}

	branch := &model.Branch{
		TenantID:     tenantID,
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		Email:        req.Email,
		IsActive:     true,
		ManagerName:  req.ManagerName,
		ManagerEmail: req.ManagerEmail,
		ManagerPhone: req.ManagerPhone,
	}

	if err := s.branches.Create(ctx, branch); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("branch with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Branch created",
		zap.String("tenant_id", tenantID),
		zap.String("code", branch.Code),
		zap.String("id", branch.ID.String()))
	return branch, nil
}

// GetBranchByID returns one of the tenant's branches by id
func (s *BranchService) GetBranchByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Branch, error) {
	branch, err := s.branches.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperr.NotFoundf("branch not found with ID: %s", id)
	}
	return branch, nil
}

// GetBranchByCode returns one of the tenant's branches by code
func (s *BranchService) GetBranchByCode(ctx context.Context, tenantID, code string) (*model.Branch, error) {
	branch, err := s.branches.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperr.NotFoundf("branch not found with code: %s", code)
	}
	return branch, nil
}

// GetAllBranches returns one page of the tenant's branches
func (s *BranchService) GetAllBranches(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Branch], error) {
	return s.branches.FindPage(ctx, tenantID, pageable)
}

// UpdateBranch applies the non-nil fields of req to the branch
func (s *BranchService) UpdateBranch(ctx context.Context, tenantID string, id uuid.UUID, req UpdateBranchRequest) (*model.Branch, error) {
	log := logger.FromContext(ctx)
	branch, err := s.branches.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperr.NotFoundf("branch not found with ID: %s", id)
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Description != nil {
		branch.Description = *req.Description
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.State != nil {
		branch.State = *req.State
	}
	if req.Country != nil {
		branch.Country = *req.Country
	}
	if req.PostalCode != nil {
		branch.PostalCode = *req.PostalCode
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.ManagerName != nil {
		branch.ManagerName = *req.ManagerName
	}
	if req.ManagerEmail != nil {
		branch.ManagerEmail = *req.ManagerEmail
	}
	if req.ManagerPhone != nil {
		branch.ManagerPhone = *req.ManagerPhone
	}

	if err := s.branches.Save(ctx, branch); err != nil {
		return nil, err
	}
	log.Info("Branch updated", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return branch, nil
}

// DeleteBranch soft-deletes a branch
func (s *BranchService) DeleteBranch(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	branch, err := s.branches.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperr.NotFoundf("branch not found with ID: %s", id)
	}
	if err := s.branches.Delete(ctx, branch); err != nil {
		return err
	}
	log.Info("Branch deleted", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return nil
}

// ActivateBranch marks a branch active
func (s *BranchService) ActivateBranch(ctx context.Context, tenantID string, id uuid.UUID) (*model.Branch, error) {
	return s.setActive(ctx, tenantID, id, true)
}

// DeactivateBranch marks a branch inactive
func (s *BranchService) DeactivateBranch(ctx context.Context, tenantID string, id uuid.UUID) (*model.Branch, error) {
	return s.setActive(ctx, tenantID, id, false)
}

func (s *BranchService) setActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) (*model.Branch, error) {
	branch, err := s.branches.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperr.NotFoundf("branch not found with ID: %s", id)
	}
	branch.IsActive = active
	if err := s.branches.Save(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}
