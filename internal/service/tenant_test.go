package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantFixture() (*TenantService, *fakeTenantStore) {
	store := newFakeTenantStore()
	return NewTenantService(store), store
}

func TestCreateTenant_Defaults(t *testing.T) {
	svc, _ := newTenantFixture()

	tenant, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		Code:  "acme",
		Name:  "Acme Inc",
		Email: "admin@acme.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme", tenant.TenantID)
	assert.Equal(t, "UTC", tenant.Timezone)
	assert.Equal(t, "USD", tenant.Currency)
	assert.Equal(t, "en_US", tenant.Locale)
	assert.True(t, tenant.IsActive)
	assert.True(t, tenant.LoyaltyEnabled)
	assert.True(t, tenant.LoyaltyPointsPerCurrency.Equal(decimal.NewFromInt(1)))
	assert.NotEqual(t, uuid.Nil, tenant.ID)
}

func TestCreateTenant_MissingRequiredFields(t *testing.T) {
	svc, _ := newTenantFixture()

	_, err := svc.CreateTenant(context.Background(), CreateTenantRequest{Code: "acme"})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestCreateTenant_DuplicateCode(t *testing.T) {
	svc, _ := newTenantFixture()
	ctx := context.Background()

	_, err := svc.CreateTenant(ctx, CreateTenantRequest{Code: "acme", Name: "Acme", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = svc.CreateTenant(ctx, CreateTenantRequest{Code: "acme", Name: "Other", Email: "x@y.z"})
	require.Error(t, err)
	assert.True(t, apperr.IsAlreadyExists(err))
}

func TestCreateTenant_DuplicateSubdomain(t *testing.T) {
	svc, _ := newTenantFixture()
	ctx := context.Background()

	_, err := svc.CreateTenant(ctx, CreateTenantRequest{
		Code: "acme", Name: "Acme", Email: "a@b.c", Subdomain: "acme",
	})
	require.NoError(t, err)

	_, err = svc.CreateTenant(ctx, CreateTenantRequest{
		Code: "other", Name: "Other", Email: "x@y.z", Subdomain: "acme",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsAlreadyExists(err))
}

func TestUpdateTenant_PartialPatch(t *testing.T) {
	svc, _ := newTenantFixture()
	ctx := context.Background()

	tenant, err := svc.CreateTenant(ctx, CreateTenantRequest{Code: "acme", Name: "Acme", Email: "a@b.c"})
	require.NoError(t, err)

	newName := "Acme International"
	rate := decimal.RequireFromString("2.5")
	updated, err := svc.UpdateTenant(ctx, tenant.ID, UpdateTenantRequest{
		Name:                     &newName,
		LoyaltyPointsPerCurrency: &rate,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme International", updated.Name)
	assert.True(t, updated.LoyaltyPointsPerCurrency.Equal(rate))
	// Untouched fields keep their values
	assert.Equal(t, "a@b.c", updated.Email)
	assert.Equal(t, "USD", updated.Currency)
}

func TestDeleteTenant_ThenNotFound(t *testing.T) {
	svc, _ := newTenantFixture()
	ctx := context.Background()

	tenant, err := svc.CreateTenant(ctx, CreateTenantRequest{Code: "acme", Name: "Acme", Email: "a@b.c"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTenant(ctx, tenant.ID))

	_, err = svc.GetTenantByID(ctx, tenant.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeactivateTenant(t *testing.T) {
	svc, _ := newTenantFixture()
	ctx := context.Background()

	tenant, err := svc.CreateTenant(ctx, CreateTenantRequest{Code: "acme", Name: "Acme", Email: "a@b.c"})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	reactivated, err := svc.ActivateTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
}
