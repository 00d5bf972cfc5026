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

// CustomerService manages customer records. Loyalty point mutation
// lives in LoyaltyService; this service only reads loyalty state.
type CustomerService struct {
	customers CustomerStore
}

// NewCustomerService creates a customer service
func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// CreateCustomerRequest carries the fields for registering a customer
type CreateCustomerRequest struct {
	Code         string `json:"code"`
	CustomerType string `json:"customer_type,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateCustomerRequest carries a partial update; nil fields are left untouched
type UpdateCustomerRequest struct {
	CustomerType *string `json:"customer_type,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	CompanyName  *string `json:"company_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// CreateCustomer registers a customer with a tenant-unique code
func (s *CustomerService) CreateCustomer(ctx context.Context, tenantID string, req CreateCustomerRequest) (*model.Customer, error) {
	log := logger.FromContext(ctx)
	if req.Code == "" {
		return nil, apperr.InvalidArgument("code is required")
	}

	exists, err := s.customers.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExistsf("customer with code %s already exists", req.Code)
	}

	customerType := req.CustomerType
	if customerType == "" {
		customerType = model.CustomerTypeIndividual
	}

	customer := &model.Customer{
		TenantID:     tenantID,
		Code:         req.Code,
		CustomerType: customerType,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		TaxID:        req.TaxID,
		Notes:        req.Notes,
		IsActive:     true,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("customer with code %s already exists", req.Code)
		}
		return nil, err
	}

	log.Info("Customer created",
		zap.String("tenant_id", tenantID),
		zap.String("code", customer.Code),
		zap.String("id", customer.ID.String()))
	return customer, nil
}

// GetCustomerByID returns a customer by id
func (s *CustomerService) GetCustomerByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with ID: %s", id)
	}
	return customer, nil
}

// GetCustomerByCode returns a customer by its tenant-unique code
func (s *CustomerService) GetCustomerByCode(ctx context.Context, tenantID, code string) (*model.Customer, error) {
	customer, err := s.customers.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with code: %s", code)
	}
	return customer, nil
}

// GetCustomerByEmail returns a customer by email
func (s *CustomerService) GetCustomerByEmail(ctx context.Context, tenantID, email string) (*model.Customer, error) {
	customer, err := s.customers.FindByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with email: %s", email)
	}
	return customer, nil
}

// GetCustomerByPhone returns a customer by phone number
func (s *CustomerService) GetCustomerByPhone(ctx context.Context, tenantID, phone string) (*model.Customer, error) {
	customer, err := s.customers.FindByPhone(ctx, tenantID, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with phone: %s", phone)
	}
	return customer, nil
}

// GetAllCustomers returns one page of the tenant's customers
func (s *CustomerService) GetAllCustomers(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Customer], error) {
	return s.customers.FindPage(ctx, tenantID, pageable)
}

// GetCustomersByLoyaltyTier returns one page of customers in the given tier
func (s *CustomerService) GetCustomersByLoyaltyTier(ctx context.Context, tenantID string, tierID uuid.UUID, pageable repository.Pageable) (repository.Page[model.Customer], error) {
	return s.customers.FindPageByTier(ctx, tenantID, tierID, pageable)
}

// UpdateCustomer applies the non-nil fields of req to the customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, tenantID string, id uuid.UUID, req UpdateCustomerRequest) (*model.Customer, error) {
	log := logger.FromContext(ctx)
	customer, err := s.customers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with ID: %s", id)
	}

	if req.CustomerType != nil {
		customer.CustomerType = *req.CustomerType
	}
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}
	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	log.Info("Customer updated", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	customer, err := s.customers.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperr.NotFoundf("customer not found with ID: %s", id)
	}
	if err := s.customers.Delete(ctx, customer); err != nil {
		return err
	}
	log.Info("Customer deleted", zap.String("tenant_id", tenantID), zap.String("id", id.String()))
	return nil
}

// ActivateCustomer marks a customer active
func (s *CustomerService) ActivateCustomer(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	return s.setActive(ctx, tenantID, id, true)
}

// DeactivateCustomer marks a customer inactive
func (s *CustomerService) DeactivateCustomer(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	return s.setActive(ctx, tenantID, id, false)
}

func (s *CustomerService) setActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) (*model.Customer, error) {
	customer, err := s.customers.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperr.NotFoundf("customer not found with ID: %s", id)
	}
	customer.IsActive = active
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
