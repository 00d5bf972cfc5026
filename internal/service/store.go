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

// StoreService manages store locations within a tenant
type StoreService struct {
	stores StoreStore
}

// NewStoreService creates a store service
func NewStoreService(stores StoreStore) *StoreService {
	return &StoreService{stores: stores}
}

// StoreRequest carries the fields for creating a store
type StoreRequest struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	StoreType      string   `json:"store_type,omitempty"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state,omitempty"`
	Country        string   `json:"country"`
	PostalCode     string   `json:"postal_code,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ManagerName    string   `json:"manager_name,omitempty"`
	ManagerEmail   string   `json:"manager_email,omitempty"`
	ManagerPhone   string   `json:"manager_phone,omitempty"`
	OperatingHours string   `json:"operating_hours,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
}

// UpdateStoreRequest carries a partial update; nil fields are left untouched
type UpdateStoreRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	StoreType      *string  `json:"store_type,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Address        *string  `json:"address,omitempty"`
	City           *string  `json:"city,omitempty"`
	State          *string  `json:"state,omitempty"`
	Country        *string  `json:"country,omitempty"`
	PostalCode     *string  `json:"postal_code,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ManagerName    *string  `json:"manager_name,omitempty"`
	ManagerEmail   *string  `json:"manager_email,omitempty"`
	ManagerPhone   *string  `json:"manager_phone,omitempty"`
	OperatingHours *string  `json:"operating_hours,omitempty"`
	Timezone       *string  `json:"timezone,omitempty"`
}

// CreateStore creates a store with a code unique within the tenant
func (s *StoreService) CreateStore(ctx context.Context, tenantID string, req StoreRequest) (*model.Store, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" || req.Name == "" {
		return nil, apperr.InvalidArgument("code and name are required")
	}
	if req.Address == "" || req.City == "" || req.Country == "" {
		return nil, apperr.InvalidArgument("address, city and country are required")
	}

	exists, err := s.stores.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("store with code %s already exists", req.Code)
	}

	store := &model.Store{
		TenantID:       tenantID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		StoreType:      req.StoreType,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		PostalCode:     req.PostalCode,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		IsActive:       true,
		ManagerName:    req.ManagerName,
		ManagerEmail:   req.ManagerEmail,
		ManagerPhone:   req.ManagerPhone,
		OperatingHours: req.OperatingHours,
		Timezone:       defaultString(req.Timezone, "UTC"),
	}

	if err := s.stores.Create(ctx, store); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("store with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Store created",
		zap.String("tenant_id", tenantID),
		zap.String("code", store.Code),
		zap.String("id", store.ID.String()))
	return store, nil
}

// GetStoreByID returns one of the tenant's stores by id
func (s *StoreService) GetStoreByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error) {
	store, err := s.stores.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFoundf("store not found with ID: %s", id)
	}
	return store, nil
}

// GetStoreByCode returns one of the tenant's stores by code
func (s *StoreService) GetStoreByCode(ctx context.Context, tenantID, code string) (*model.Store, error) {
	store, err := s.stores.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFoundf("store not found with code: %s", code)
	}
	return store, nil
}

// GetAllStores returns one page of the tenant's stores
func (s *StoreService) GetAllStores(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Store], error) {
	return s.stores.FindPage(ctx, tenantID, pageable)
}

// CountStores returns the number of active stores for the tenant.
// Used when checking subscription plan limits.
func (s *StoreService) CountStores(ctx context.Context, tenantID string) (int64, error) {
	return s.stores.CountByTenant(ctx, tenantID)
}

// UpdateStore applies the non-nil fields of req to the store
func (s *StoreService) UpdateStore(ctx context.Context, tenantID string, id uuid.UUID, req UpdateStoreRequest) (*model.Store, error) {
	log := logger.FromContext(ctx)
	store, err := s.stores.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFoundf("store not found with ID: %s", id)
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.StoreType != nil {
		store.StoreType = *req.StoreType
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Phone != nil {
		store.Phone = *req.Phone
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.City != nil {
		store.City = *req.City
	}
	if req.State != nil {
		store.State = *req.State
	}
	if req.Country != nil {
		store.Country = *req.Country
	}
	if req.PostalCode != nil {
		store.PostalCode = *req.PostalCode
	}
	if req.Latitude != nil {
		store.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		store.Longitude = req.Longitude
	}
	if req.ManagerName != nil {
		store.ManagerName = *req.ManagerName
	}
	if req.ManagerEmail != nil {
		store.ManagerEmail = *req.ManagerEmail
	}
	if req.ManagerPhone != nil {
		store.ManagerPhone = *req.ManagerPhone
	}
	if req.OperatingHours != nil {
		store.OperatingHours = *req.OperatingHours
	}
	if req.Timezone != nil {
		store.Timezone = *req.Timezone
	}

	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	log.Info("Store updated", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return store, nil
}

// DeleteStore soft-deletes a store
func (s *StoreService) DeleteStore(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	store, err := s.stores.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if store == nil {
		return apperr.NotFoundf("store not found with ID: %s", id)
	}
	if err := s.stores.Delete(ctx, store); err != nil {
		return err
	}
	log.Info("Store deleted", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return nil
}

// ActivateStore marks a store active
func (s *StoreService) ActivateStore(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error) {
	return s.setActive(ctx, tenantID, id, true)
}

// DeactivateStore marks a store inactive
func (s *StoreService) DeactivateStore(ctx context.Context, tenantID string, id uuid.UUID) (*model.Store, error) {
	return s.setActive(ctx, tenantID, id, false)
}

func (s *StoreService) setActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) (*model.Store, error) {
	store, err := s.stores.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFoundf("store not found with ID: %s", id)
	}
	store.IsActive = active
	if err := s.stores.Save(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}
