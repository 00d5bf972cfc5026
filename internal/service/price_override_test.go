package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverrideFixture(t *testing.T) (*PriceOverrideService, *fakeOverrideStore, *model.Store) {
	t.Helper()
	overrides := newFakeOverrideStore()
	stores := newFakeStoreStore()
	store := &model.Store{
		TenantID: testTenant,
		Code:     "STORE-001",
		Name:     "Downtown",
		Address:  "1 Main St",
		City:     "Springfield",
		Country:  "US",
		IsActive: true,
	}
	require.NoError(t, stores.Create(context.Background(), store))
	return NewPriceOverrideService(overrides, stores), overrides, store
}

func TestCreateOverride_StoreMustExist(t *testing.T) {
	svc, _, _ := newOverrideFixture(t)

	_, err := svc.CreateOverride(context.Background(), testTenant, PriceOverrideRequest{
		StoreID:       uuid.New(),
		ProductID:     uuid.New(),
		OverridePrice: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOverride_OnePerStoreProduct(t *testing.T) {
	svc, _, store := newOverrideFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	_, err := svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     productID,
		OverridePrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     productID,
		OverridePrice: decimal.NewFromInt(12),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsAlreadyExists(err))
}

func TestCreateOverride_NegativePriceRejected(t *testing.T) {
	svc, _, store := newOverrideFixture(t)

	_, err := svc.CreateOverride(context.Background(), testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     uuid.New(),
		OverridePrice: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestCreateOverride_WindowMustBeOrdered(t *testing.T) {
	svc, _, store := newOverrideFixture(t)

	from := time.Now().UTC()
	to := from.Add(-time.Hour)
	_, err := svc.CreateOverride(context.Background(), testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     uuid.New(),
		OverridePrice: decimal.NewFromInt(10),
		EffectiveFrom: &from,
		EffectiveTo:   &to,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestGetActiveOverride_RespectsWindow(t *testing.T) {
	svc, _, store := newOverrideFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	past := time.Now().UTC().Add(-2 * time.Hour)
	expired := time.Now().UTC().Add(-time.Hour)
	_, err := svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     productID,
		OverridePrice: decimal.NewFromInt(10),
		EffectiveFrom: &past,
		EffectiveTo:   &expired,
	})
	require.NoError(t, err)

	_, err = svc.GetActiveOverride(ctx, testTenant, store.ID, productID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetActiveOverride_CurrentWindow(t *testing.T) {
	svc, _, store := newOverrideFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	created, err := svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     productID,
		OverridePrice: decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	active, err := svc.GetActiveOverride(ctx, testTenant, store.ID, productID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)
	assert.True(t, active.OverridePrice.Equal(decimal.RequireFromString("9.99")))
}

func TestDeactivateOverride_HidesFromActiveLookup(t *testing.T) {
	svc, _, store := newOverrideFixture(t)
	ctx := context.Background()
	productID := uuid.New()

	created, err := svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     productID,
		OverridePrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = svc.DeactivateOverride(ctx, testTenant, created.ID)
	require.NoError(t, err)

	_, err = svc.GetActiveOverride(ctx, testTenant, store.ID, productID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// The row itself is still retrievable
	kept, err := svc.GetOverrideByID(ctx, testTenant, created.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestUpdateOverride_WindowValidation(t *testing.T) {
	svc, _, store := newOverrideFixture(t)
	ctx := context.Background()

	created, err := svc.CreateOverride(ctx, testTenant, PriceOverrideRequest{
		StoreID:       store.ID,
		ProductID:     uuid.New(),
		OverridePrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	bad := created.EffectiveFrom.Add(-time.Hour)
	_, err = svc.UpdateOverride(ctx, testTenant, created.ID, UpdatePriceOverrideRequest{
		EffectiveTo: &bad,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}
