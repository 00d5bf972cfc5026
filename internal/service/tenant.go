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

// TenantService manages tenants. Tenant operations are platform-level:
// they are not scoped by a tenant id.
type TenantService struct {
	tenants TenantStore
}

// NewTenantService creates a tenant service
func NewTenantService(tenants TenantStore) *TenantService {
	return &TenantService{tenants: tenants}
}

// CreateTenantRequest carries the fields for provisioning a tenant
type CreateTenantRequest struct {
	Code                     string           `json:"code"`
	Name                     string           `json:"name"`
	Subdomain                string           `json:"subdomain,omitempty"`
	BusinessType             string           `json:"business_type,omitempty"`
	Email                    string           `json:"email"`
	Phone                    string           `json:"phone,omitempty"`
	Address                  string           `json:"address,omitempty"`
	City                     string           `json:"city,omitempty"`
	State                    string           `json:"state,omitempty"`
	Country                  string           `json:"country,omitempty"`
	PostalCode               string           `json:"postal_code,omitempty"`
	TaxID                    string           `json:"tax_id,omitempty"`
	Timezone                 string           `json:"timezone,omitempty"`
	Currency                 string           `json:"currency,omitempty"`
	Locale                   string           `json:"locale,omitempty"`
	LoyaltyPointsPerCurrency *decimal.Decimal `json:"loyalty_points_per_currency,omitempty"`
	LoyaltyEnabled           *bool            `json:"loyalty_enabled,omitempty"`
}

// UpdateTenantRequest carries a partial update; nil fields are left untouched
type UpdateTenantRequest struct {
	Name                     *string          `json:"name,omitempty"`
	BusinessType             *string          `json:"business_type,omitempty"`
	Email                    *string          `json:"email,omitempty"`
	Phone                    *string          `json:"phone,omitempty"`
	Address                  *string          `json:"address,omitempty"`
	City                     *string          `json:"city,omitempty"`
	State                    *string          `json:"state,omitempty"`
	Country                  *string          `json:"country,omitempty"`
	PostalCode               *string          `json:"postal_code,omitempty"`
	TaxID                    *string          `json:"tax_id,omitempty"`
	LogoURL                  *string          `json:"logo_url,omitempty"`
	Timezone                 *string          `json:"timezone,omitempty"`
	Currency                 *string          `json:"currency,omitempty"`
	Locale                   *string          `json:"locale,omitempty"`
	LoyaltyPointsPerCurrency *decimal.Decimal `json:"loyalty_points_per_currency,omitempty"`
	LoyaltyEnabled           *bool            `json:"loyalty_enabled,omitempty"`
}

// CreateTenant provisions a tenant. Code and subdomain are globally
// unique; the new tenant's TenantID is its own code.
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*model.Tenant, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" || req.Name == "" || req.Email == "" {
		return nil, apperr.InvalidArgument("code, name, and email are required")
	}

	exists, err := s.tenants.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("tenant with code %s already exists", req.Code)
	}
	if req.Subdomain != "" {
		exists, err := s.tenants.ExistsBySubdomain(ctx, req.Subdomain)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.AlreadyExistsf("tenant with subdomain %s already exists", req.Subdomain)
		}
	}

	tenant := &model.Tenant{
		TenantID:                 req.Code,
		Code:                     req.Code,
		Name:                     req.Name,
		Subdomain:                req.Subdomain,
		BusinessType:             req.BusinessType,
		Email:                    req.Email,
		Phone:                    req.Phone,
		Address:                  req.Address,
		City:                     req.City,
		State:                    req.State,
		Country:                  req.Country,
		PostalCode:               req.PostalCode,
		TaxID:                    req.TaxID,
		IsActive:                 true,
		SubscriptionStatus:       model.SubscriptionActive,
		Timezone:                 defaultString(req.Timezone, "UTC"),
		Currency:                 defaultString(req.Currency, "USD"),
		Locale:                   defaultString(req.Locale, "en_US"),
		LoyaltyPointsPerCurrency: decimal.NewFromInt(1),
		LoyaltyEnabled:           true,
	}
	if req.LoyaltyPointsPerCurrency != nil {
		tenant.LoyaltyPointsPerCurrency = *req.LoyaltyPointsPerCurrency
	}
	if req.LoyaltyEnabled != nil {
		tenant.LoyaltyEnabled = *req.LoyaltyEnabled
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("tenant with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Tenant created", zap.String("code", tenant.Code), zap.String("id", tenant.ID.String()))
	return tenant, nil
}

// GetTenantByID returns a tenant by id
func (s *TenantService) GetTenantByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFoundf("tenant not found with ID: %s", id)
	}
	return tenant, nil
}

// GetTenantByCode returns a tenant by its globally unique code
func (s *TenantService) GetTenantByCode(ctx context.Context, code string) (*model.Tenant, error) {
	tenant, err := s.tenants.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFoundf("tenant not found with code: %s", code)
	}
	return tenant, nil
}

// GetAllTenants returns one page of tenants
func (s *TenantService) GetAllTenants(ctx context.Context, pageable repository.Pageable) (repository.Page[model.Tenant], error) {
	return s.tenants.FindPage(ctx, pageable)
}

// UpdateTenant applies the non-nil fields of req to the tenant
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*model.Tenant, error) {
	log := logger.FromContext(ctx)
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFoundf("tenant not found with ID: %s", id)
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.BusinessType != nil {
		tenant.BusinessType = *req.BusinessType
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.City != nil {
		tenant.City = *req.City
	}
	if req.State != nil {
		tenant.State = *req.State
	}
	if req.Country != nil {
		tenant.Country = *req.Country
	}
	if req.PostalCode != nil {
		tenant.PostalCode = *req.PostalCode
	}
	if req.TaxID != nil {
		tenant.TaxID = *req.TaxID
	}
	if req.LogoURL != nil {
		tenant.LogoURL = *req.LogoURL
	}
	if req.Timezone != nil {
		tenant.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		tenant.Currency = *req.Currency
	}
	if req.Locale != nil {
		tenant.Locale = *req.Locale
	}
	if req.LoyaltyPointsPerCurrency != nil {
		tenant.LoyaltyPointsPerCurrency = *req.LoyaltyPointsPerCurrency
	}
	if req.LoyaltyEnabled != nil {
		tenant.LoyaltyEnabled = *req.LoyaltyEnabled
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	log.Info("Tenant updated", zap.String("id", id.String()))
	return tenant, nil
}

// DeleteTenant soft-deletes a tenant
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperr.NotFoundf("tenant not found with ID: %s", id)
	}
	if err := s.tenants.Delete(ctx, tenant); err != nil {
		return err
	}
	log.Info("Tenant deleted", zap.String("id", id.String()))
	return nil
}

// ActivateTenant marks a tenant active
func (s *TenantService) ActivateTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return s.setActive(ctx, id, true)
}

// DeactivateTenant marks a tenant inactive
func (s *TenantService) DeactivateTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return s.setActive(ctx, id, false)
}

func (s *TenantService) setActive(ctx context.Context, id uuid.UUID, active bool) (*model.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperr.NotFoundf("tenant not found with ID: %s", id)
	}
	tenant.IsActive = active
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
