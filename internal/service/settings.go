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

// SettingsService manages tenant-scoped configuration entries
type SettingsService struct {
	settings SettingsStore
}

// NewSettingsService creates a settings service
func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

// SettingsRequest carries the fields for creating a setting
type SettingsRequest struct {
	Category     string `json:"category"`
	SettingKey   string `json:"setting_key"`
	SettingValue string `json:"setting_value,omitempty"`
	ValueType    string `json:"value_type,omitempty"`
	Description  string `json:"description,omitempty"`
	IsEncrypted  bool   `json:"is_encrypted,omitempty"`
}

// CreateSetting creates a setting with a key unique within the tenant
func (s *SettingsService) CreateSetting(ctx context.Context, tenantID string, req SettingsRequest) (*model.Settings, error) {
	log := logger.FromContext(ctx)
	if req.SettingKey == "" || req.Category == "" {
		return nil, apperr.InvalidArgument("category and setting_key are required")
	}

	existing, err := s.settings.FindByKey(ctx, tenantID, req.SettingKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExistsf("setting with key %s already exists", req.SettingKey)
	}

	setting := &model.Settings{
		TenantID:     tenantID,
		Category:     req.Category,
		SettingKey:   req.SettingKey,
		SettingValue: req.SettingValue,
		ValueType:    defaultString(req.ValueType, model.SettingTypeString),
		Description:  req.Description,
		IsSystem:     false,
		IsEncrypted:  req.IsEncrypted,
	}

	if err := s.settings.Create(ctx, setting); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.AlreadyExistsf("setting with key %s already exists", req.SettingKey)
		}
		return nil, err
	}

	log.Info("Setting created",
		zap.String("tenant_id", tenantID),
		zap.String("key", setting.SettingKey))
	return setting, nil
}

// GetSettingByID returns one of the tenant's settings by id
func (s *SettingsService) GetSettingByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Settings, error) {
	setting, err := s.settings.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperr.NotFoundf("setting not found with ID: %s", id)
	}
	return setting, nil
}

// GetSettingByKey returns one of the tenant's settings by key
func (s *SettingsService) GetSettingByKey(ctx context.Context, tenantID, key string) (*model.Settings, error) {
	setting, err := s.settings.FindByKey(ctx, tenantID, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, apperr.NotFoundf("setting not found with key: %s", key)
	}
	return setting, nil
}

// GetSettingsByCategory returns all of the tenant's settings in a category
func (s *SettingsService) GetSettingsByCategory(ctx context.Context, tenantID, category string) ([]model.Settings, error) {
	return s.settings.FindByCategory(ctx, tenantID, category)
}

// GetAllSettings returns one page of the tenant's settings
func (s *SettingsService) GetAllSettings(ctx context.Context, tenantID string, pageable repository.Pageable) (repository.Page[model.Settings], error) {
	return s.settings.FindPage(ctx, tenantID, pageable)
}

// UpsertSetting sets the value for a key, creating the setting when it
// does not exist yet. System settings cannot be changed this way.
func (s *SettingsService) UpsertSetting(ctx context.Context, tenantID string, req SettingsRequest) (*model.Settings, error) {
	log := logger.FromContext(ctx)
	if req.SettingKey == "" {
		return nil, apperr.InvalidArgument("setting_key is required")
	}

	setting, err := s.settings.FindByKey(ctx, tenantID, req.SettingKey)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return s.CreateSetting(ctx, tenantID, req)
	}
	if setting.IsSystem {
		return nil, apperr.InvalidArgumentf("setting %s is a system setting and cannot be modified", req.SettingKey)
	}

	setting.SettingValue = req.SettingValue
	if req.Category != "" {
		setting.Category = req.Category
	}
	if req.ValueType != "" {
		setting.ValueType = req.ValueType
	}
	if req.Description != "" {
		setting.Description = req.Description
	}
	setting.IsEncrypted = req.IsEncrypted

	if err := s.settings.Save(ctx, setting); err != nil {
		return nil, err
	}
	log.Info("Setting updated",
		zap.String("tenant_id", tenantID),
		zap.String("key", setting.SettingKey))
	return setting, nil
}

// DeleteSetting soft-deletes a setting. System settings cannot be deleted.
func (s *SettingsService) DeleteSetting(ctx context.Context, tenantID string, id uuid.UUID) error {
	log := logger.FromContext(ctx)
	setting, err := s.settings.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if setting == nil {
		return apperr.NotFoundf("setting not found with ID: %s", id)
	}
	if setting.IsSystem {
		return apperr.InvalidArgumentf("setting %s is a system setting and cannot be deleted", setting.SettingKey)
	}
	if err := s.settings.Delete(ctx, setting); err != nil {
		return err
	}
	log.Info("Setting deleted",
		zap.String("tenant_id", tenantID),
		zap.String("key", setting.SettingKey))
	return nil
}
