package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository is the GORM-backed store for customers, scoped by
// tenant id on every query.
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository over the given connection
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindByID returns the customer with the given id within the tenant, or nil when absent
func (r *CustomerRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find customer by id")
	}
	return &customer, nil
}

// FindByIDForUpdate loads the customer under a row-level lock. Must be
// called inside a transaction; the lock holds until commit or rollback.
func (r *CustomerRepository) FindByIDForUpdate(ctx context.Context, tenantID string, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find customer for update")
	}
	return &customer, nil
}

// FindByCode returns the customer with the given code within the tenant, or nil when absent
func (r *CustomerRepository) FindByCode(ctx context.Context, tenantID, code string) (*model.Customer, error) {
	return r.findOneBy(ctx, tenantID, "code", code)
}

// FindByEmail returns the customer with the given email within the tenant, or nil when absent
func (r *CustomerRepository) FindByEmail(ctx context.Context, tenantID, email string) (*model.Customer, error) {
	return r.findOneBy(ctx, tenantID, "email", email)
}

// FindByPhone returns the customer with the given phone within the tenant, or nil when absent
func (r *CustomerRepository) FindByPhone(ctx context.Context, tenantID, phone string) (*model.Customer, error) {
	return r.findOneBy(ctx, tenantID, "phone", phone)
}

func (r *CustomerRepository) findOneBy(ctx context.Context, tenantID, column, value string) (*model.Customer, error) {
	var customer model.Customer
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND "+column+" = ?", tenantID, value).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "find customer by %s", column)
	}
	return &customer, nil
}

// ExistsByCode reports whether any customer, deleted or not, holds the code within the tenant
func (r *CustomerRepository) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&model.Customer{}).Unscoped().
		Where("tenant_id = ? AND code = ?", tenantID, code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count customers by code")
	}
	return count > 0, nil
}

// FindPage returns one page of the tenant's customers
func (r *CustomerRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.Customer], error) {
	return r.findPage(ctx, dbFrom(ctx, r.db).Model(&model.Customer{}).Where("tenant_id = ?", tenantID), pageable)
}

// FindPageByTier returns one page of the tenant's customers assigned to the tier
func (r *CustomerRepository) FindPageByTier(ctx context.Context, tenantID string, tierID uuid.UUID, pageable Pageable) (Page[model.Customer], error) {
	db := dbFrom(ctx, r.db).Model(&model.Customer{}).
		Where("tenant_id = ? AND loyalty_tier_id = ?", tenantID, tierID)
	return r.findPage(ctx, db, pageable)
}

func (r *CustomerRepository) findPage(ctx context.Context, db *gorm.DB, pageable Pageable) (Page[model.Customer], error) {
	var (
		customers []model.Customer
		total     int64
	)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.Customer]{}, errors.Wrap(err, "count customers")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&customers).Error
	if err != nil {
		return Page[model.Customer]{}, errors.Wrap(err, "list customers")
	}
	return NewPage(customers, pageable, total), nil
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return dbFrom(ctx, r.db).Create(customer).Error
}

// Save persists changes to an existing customer
func (r *CustomerRepository) Save(ctx context.Context, customer *model.Customer) error {
	return dbFrom(ctx, r.db).Save(customer).Error
}

// Delete soft-deletes the customer; the row stays in the table
func (r *CustomerRepository) Delete(ctx context.Context, customer *model.Customer) error {
	return dbFrom(ctx, r.db).Delete(customer).Error
}
