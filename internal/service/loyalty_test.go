package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTenant = "acme"

func newLoyaltyFixture() (*LoyaltyService, *fakeTierStore, *fakeLedgerStore, *fakeCustomerStore, *fakeTxRunner) {
	tiers := newFakeTierStore()
	ledger := newFakeLedgerStore()
	customers := newFakeCustomerStore()
	tx := &fakeTxRunner{}
	return NewLoyaltyService(tiers, ledger, customers, tx), tiers, ledger, customers, tx
}

func seedCustomer(t *testing.T, customers *fakeCustomerStore, available, total int) *model.Customer {
	t.Helper()
	c := &model.Customer{
		TenantID:        testTenant,
		Code:            "CUST-001",
		CustomerType:    model.CustomerTypeIndividual,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		IsActive:        true,
		AvailablePoints: available,
		TotalPoints:     total,
		LifetimePoints:  total,
	}
	require.NoError(t, customers.Create(context.Background(), c))
	return c
}

func seedTier(t *testing.T, tiers *fakeTierStore, code string, minPoints int, multiplier decimal.Decimal) *model.LoyaltyTier {
	t.Helper()
	tier := &model.LoyaltyTier{
		TenantID:         testTenant,
		Code:             code,
		Name:             code,
		MinPoints:        minPoints,
		PointsMultiplier: multiplier,
		IsActive:         true,
	}
	require.NoError(t, tiers.Create(context.Background(), tier))
	return tier
}

func TestRecordTransaction_EarnUpdatesBalancesAndTier(t *testing.T) {
	svc, tiers, ledger, customers, tx := newLoyaltyFixture()
	ctx := context.Background()

	seedTier(t, tiers, "BRONZE", 0, decimal.NewFromInt(1))
	silver := seedTier(t, tiers, "SILVER", 500, decimal.NewFromInt(2))
	cust := seedCustomer(t, customers, 50, 100)

	txn, tierChanged, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    500,
	})
	require.NoError(t, err)

	assert.True(t, tierChanged)
	assert.Equal(t, 550, txn.BalanceAfter)
	assert.Equal(t, model.LoyaltyEarn, txn.TransactionType)
	assert.Equal(t, 500, txn.Points)

	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, 550, updated.AvailablePoints)
	assert.Equal(t, 600, updated.TotalPoints)
	assert.Equal(t, 600, updated.LifetimePoints)
	require.NotNil(t, updated.LoyaltyTierID)
	assert.Equal(t, silver.ID, *updated.LoyaltyTierID)

	assert.Len(t, ledger.entries, 1)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, customers.lockCalls)
}

func TestRecordTransaction_RedeemLeavesTotalsAlone(t *testing.T) {
	svc, _, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 200, 1000)

	txn, tierChanged, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyRedeem,
		PointsChange:    -150,
	})
	require.NoError(t, err)
	assert.False(t, tierChanged)
	assert.Equal(t, 50, txn.BalanceAfter)

	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, updated.AvailablePoints)
	assert.Equal(t, 1000, updated.TotalPoints)
	assert.Equal(t, 1000, updated.LifetimePoints)
}

func TestRecordTransaction_InsufficientPoints(t *testing.T) {
	svc, _, ledger, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 100, 100)

	_, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyRedeem,
		PointsChange:    -101,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	// Rejection leaves no ledger entry and no balance change
	assert.Empty(t, ledger.entries)
	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.AvailablePoints)
}

func TestRecordTransaction_RedeemToExactlyZero(t *testing.T) {
	svc, _, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 100, 100)

	txn, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyRedeem,
		PointsChange:    -100,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, txn.BalanceAfter)
}

func TestRecordTransaction_CustomerNotFound(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()

	_, _, err := svc.RecordTransaction(context.Background(), testTenant, LoyaltyTransactionRequest{
		CustomerID:      uuid.New(),
		TransactionType: model.LoyaltyEarn,
		PointsChange:    10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRecordTransaction_NoMatchingTierKeepsAssignment(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	seedTier(t, tiers, "GOLD", 5000, decimal.NewFromInt(3))
	cust := seedCustomer(t, customers, 0, 0)
	existing := uuid.New()
	cust.LoyaltyTierID = &existing
	require.NoError(t, customers.Save(ctx, cust))

	_, tierChanged, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    10,
	})
	require.NoError(t, err)
	assert.False(t, tierChanged)

	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LoyaltyTierID)
	assert.Equal(t, existing, *updated.LoyaltyTierID)
}

func TestRecordTransaction_TierThresholdTieBreaksOnCode(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	seedTier(t, tiers, "BETA", 100, decimal.NewFromInt(1))
	alpha := seedTier(t, tiers, "ALPHA", 100, decimal.NewFromInt(1))
	cust := seedCustomer(t, customers, 0, 0)

	_, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    150,
	})
	require.NoError(t, err)

	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LoyaltyTierID)
	assert.Equal(t, alpha.ID, *updated.LoyaltyTierID)
}

func TestRecordTransaction_ReportsTierChangeOnlyOnReassignment(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	bronze := seedTier(t, tiers, "BRONZE", 0, decimal.NewFromInt(1))
	seedTier(t, tiers, "SILVER", 500, decimal.NewFromInt(2))
	cust := seedCustomer(t, customers, 0, 0)
	cust.LoyaltyTierID = &bronze.ID
	require.NoError(t, customers.Save(ctx, cust))

	// Small earn keeps the customer in BRONZE
	_, tierChanged, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    100,
	})
	require.NoError(t, err)
	assert.False(t, tierChanged)

	// Crossing the SILVER threshold reassigns and reports the change
	_, tierChanged, err = svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    400,
	})
	require.NoError(t, err)
	assert.True(t, tierChanged)
}

func TestRecordTransaction_TierBoundaryIsInclusive(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	zero := seedTier(t, tiers, "ZERO", 0, decimal.NewFromInt(1))
	thousand := seedTier(t, tiers, "THOUSAND", 1000, decimal.NewFromInt(2))
	fivek := seedTier(t, tiers, "FIVEK", 5000, decimal.NewFromInt(3))

	// A total exactly equal to a threshold qualifies for that tier
	cases := []struct {
		total int
		want  uuid.UUID
	}{
		{999, zero.ID},
		{1000, thousand.ID},
		{4999, thousand.ID},
		{5000, fivek.ID},
	}
	for _, tc := range cases {
		cust := seedCustomer(t, customers, 0, 0)
		_, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
			CustomerID:      cust.ID,
			TransactionType: model.LoyaltyEarn,
			PointsChange:    tc.total,
		})
		require.NoError(t, err)

		updated, err := customers.FindByID(ctx, testTenant, cust.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.LoyaltyTierID, "total %d", tc.total)
		assert.Equal(t, tc.want, *updated.LoyaltyTierID, "total %d", tc.total)
	}
}

func TestRecordTransaction_InactiveTierIgnored(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	bronze := seedTier(t, tiers, "BRONZE", 0, decimal.NewFromInt(1))
	gold := seedTier(t, tiers, "GOLD", 100, decimal.NewFromInt(2))
	gold.IsActive = false
	require.NoError(t, tiers.Save(ctx, gold))

	cust := seedCustomer(t, customers, 0, 0)

	_, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
		CustomerID:      cust.ID,
		TransactionType: model.LoyaltyEarn,
		PointsChange:    200,
	})
	require.NoError(t, err)

	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LoyaltyTierID)
	assert.Equal(t, bronze.ID, *updated.LoyaltyTierID)
}

func TestRecordTransaction_BalanceAfterMatchesLedgerReplay(t *testing.T) {
	svc, _, ledger, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 0, 0)

	deltas := []int{100, -30, 250, -90, 5}
	running := 0
	for _, d := range deltas {
		txnType := model.LoyaltyEarn
		if d < 0 {
			txnType = model.LoyaltyRedeem
		}
		txn, _, err := svc.RecordTransaction(ctx, testTenant, LoyaltyTransactionRequest{
			CustomerID:      cust.ID,
			TransactionType: txnType,
			PointsChange:    d,
		})
		require.NoError(t, err)
		running += d
		assert.Equal(t, running, txn.BalanceAfter)
	}

	require.Len(t, ledger.entries, len(deltas))
	updated, err := customers.FindByID(ctx, testTenant, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, running, updated.AvailablePoints)
}

func TestPointsForPurchase_TierMultiplierApplied(t *testing.T) {
	svc, tiers, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	gold := seedTier(t, tiers, "GOLD", 0, decimal.RequireFromString("1.5"))
	cust := seedCustomer(t, customers, 0, 0)
	cust.LoyaltyTierID = &gold.ID
	require.NoError(t, customers.Save(ctx, cust))

	// 123.45 * 1 * 1.5 = 185.175, truncated to 185
	points, err := svc.PointsForPurchase(ctx, testTenant, cust.ID,
		decimal.RequireFromString("123.45"), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(185), points)
}

func TestPointsForPurchase_NoTierDefaultsToOne(t *testing.T) {
	svc, _, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 0, 0)

	points, err := svc.PointsForPurchase(ctx, testTenant, cust.ID,
		decimal.RequireFromString("99.99"), decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, int64(199), points)
}

func TestPointsForPurchase_DeletedTierDefaultsToOne(t *testing.T) {
	svc, _, _, customers, _ := newLoyaltyFixture()
	ctx := context.Background()

	cust := seedCustomer(t, customers, 0, 0)
	gone := uuid.New()
	cust.LoyaltyTierID = &gone
	require.NoError(t, customers.Save(ctx, cust))

	points, err := svc.PointsForPurchase(ctx, testTenant, cust.ID,
		decimal.NewFromInt(100), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(100), points)
}

func TestPointsForPurchase_CustomerNotFound(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()

	_, err := svc.PointsForPurchase(context.Background(), testTenant, uuid.New(),
		decimal.NewFromInt(10), decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTier_DuplicateCode(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()
	ctx := context.Background()

	_, err := svc.CreateTier(ctx, testTenant, LoyaltyTierRequest{Code: "GOLD", Name: "Gold"})
	require.NoError(t, err)

	_, err = svc.CreateTier(ctx, testTenant, LoyaltyTierRequest{Code: "GOLD", Name: "Gold again"})
	require.Error(t, err)
	assert.True(t, apperr.IsAlreadyExists(err))
}

func TestCreateTier_SameCodeDifferentTenant(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()
	ctx := context.Background()

	_, err := svc.CreateTier(ctx, "tenant-a", LoyaltyTierRequest{Code: "GOLD", Name: "Gold"})
	require.NoError(t, err)

	_, err = svc.CreateTier(ctx, "tenant-b", LoyaltyTierRequest{Code: "GOLD", Name: "Gold"})
	require.NoError(t, err)
}

func TestCreateTier_Defaults(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()

	tier, err := svc.CreateTier(context.Background(), testTenant, LoyaltyTierRequest{Code: "GOLD", Name: "Gold"})
	require.NoError(t, err)
	assert.True(t, tier.IsActive)
	assert.True(t, tier.PointsMultiplier.Equal(decimal.NewFromInt(1)))
	assert.True(t, tier.DiscountPercentage.IsZero())
}

func TestDeleteTier_NotFound(t *testing.T) {
	svc, _, _, _, _ := newLoyaltyFixture()

	err := svc.DeleteTier(context.Background(), testTenant, uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
