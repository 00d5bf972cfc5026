package service

import (
	"context"
	"testing"

	"github.com/rjnat/cursorpos-admin/internal/model"
	"github.com/rjnat/cursorpos-admin/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (*SettingsService, *fakeSettingsStore) {
	store := newFakeSettingsStore()
	return NewSettingsService(store), store
}

func TestCreateSetting_Defaults(t *testing.T) {
	svc, _ := newSettingsFixture()

	setting, err := svc.CreateSetting(context.Background(), testTenant, SettingsRequest{
		Category:     "receipt",
		SettingKey:   "receipt.footer",
		SettingValue: "Thanks for shopping",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SettingTypeString, setting.ValueType)
	assert.False(t, setting.IsSystem)
}

func TestCreateSetting_DuplicateKey(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	_, err := svc.CreateSetting(ctx, testTenant, SettingsRequest{Category: "receipt", SettingKey: "receipt.footer"})
	require.NoError(t, err)

	_, err = svc.CreateSetting(ctx, testTenant, SettingsRequest{Category: "receipt", SettingKey: "receipt.footer"})
	require.Error(t, err)
	assert.True(t, apperr.IsAlreadyExists(err))
}

func TestUpsertSetting_CreatesWhenMissing(t *testing.T) {
	svc, _ := newSettingsFixture()

	setting, err := svc.UpsertSetting(context.Background(), testTenant, SettingsRequest{
		Category:     "tax",
		SettingKey:   "tax.rate",
		SettingValue: "7.5",
		ValueType:    model.SettingTypeNumber,
	})
	require.NoError(t, err)
	assert.Equal(t, "7.5", setting.SettingValue)
	assert.Equal(t, model.SettingTypeNumber, setting.ValueType)
}

func TestUpsertSetting_UpdatesExisting(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	created, err := svc.CreateSetting(ctx, testTenant, SettingsRequest{
		Category: "tax", SettingKey: "tax.rate", SettingValue: "7.5",
	})
	require.NoError(t, err)

	updated, err := svc.UpsertSetting(ctx, testTenant, SettingsRequest{
		SettingKey: "tax.rate", SettingValue: "8.0",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "8.0", updated.SettingValue)
	// Absent category keeps the existing one
	assert.Equal(t, "tax", updated.Category)
}

func TestUpsertSetting_SystemRowRejected(t *testing.T) {
	svc, store := newSettingsFixture()
	ctx := context.Background()

	system := &model.Settings{
		TenantID:   testTenant,
		Category:   "core",
		SettingKey: "core.version",
		IsSystem:   true,
	}
	require.NoError(t, store.Create(ctx, system))

	_, err := svc.UpsertSetting(ctx, testTenant, SettingsRequest{
		SettingKey: "core.version", SettingValue: "tampered",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestDeleteSetting_SystemRowRejected(t *testing.T) {
	svc, store := newSettingsFixture()
	ctx := context.Background()

	system := &model.Settings{
		TenantID:   testTenant,
		Category:   "core",
		SettingKey: "core.version",
		IsSystem:   true,
	}
	require.NoError(t, store.Create(ctx, system))

	err := svc.DeleteSetting(ctx, testTenant, system.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	// Still there
	kept, err := svc.GetSettingByKey(ctx, testTenant, "core.version")
	require.NoError(t, err)
	assert.Equal(t, system.ID, kept.ID)
}

func TestGetSettingsByCategory(t *testing.T) {
	svc, _ := newSettingsFixture()
	ctx := context.Background()

	_, err := svc.CreateSetting(ctx, testTenant, SettingsRequest{Category: "receipt", SettingKey: "receipt.footer"})
	require.NoError(t, err)
	_, err = svc.CreateSetting(ctx, testTenant, SettingsRequest{Category: "receipt", SettingKey: "receipt.header"})
	require.NoError(t, err)
	_, err = svc.CreateSetting(ctx, testTenant, SettingsRequest{Category: "tax", SettingKey: "tax.rate"})
	require.NoError(t, err)

	receipt, err := svc.GetSettingsByCategory(ctx, testTenant, "receipt")
	require.NoError(t, err)
	assert.Len(t, receipt, 2)
}
