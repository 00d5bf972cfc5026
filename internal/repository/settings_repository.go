package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rjnat/cursorpos-admin/internal/model"
	"gorm.io/gorm"
)

// SettingsRepository is the GORM-backed store for tenant settings.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a settings repository over the given connection
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindByID returns the setting with the given id within the tenant, or nil when absent
func (r *SettingsRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Settings, error) {
	var setting model.Settings
	err := dbFrom(ctx, r.db).Where("id = ? AND tenant_id = ?", id, tenantID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find setting by id")
	}
	return &setting, nil
}

// FindByKey returns the setting with the given key within the tenant, or nil when absent
func (r *SettingsRepository) FindByKey(ctx context.Context, tenantID, settingKey string) (*model.Settings, error) {
	var setting model.Settings
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND setting_key = ?", tenantID, settingKey).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find setting by key")
	}
	return &setting, nil
}

// FindByCategory returns all of the tenant's settings in a category
func (r *SettingsRepository) FindByCategory(ctx context.Context, tenantID, category string) ([]model.Settings, error) {
	var settings []model.Settings
	err := dbFrom(ctx, r.db).Where("tenant_id = ? AND category = ?", tenantID, category).
		Order("setting_key asc").Find(&settings).Error
	if err != nil {
		return nil, errors.Wrap(err, "list settings by category")
	}
	return settings, nil
}

// FindPage returns one page of the tenant's settings
func (r *SettingsRepository) FindPage(ctx context.Context, tenantID string, pageable Pageable) (Page[model.Settings], error) {
	var (
		settings []model.Settings
		total    int64
	)
	db := dbFrom(ctx, r.db).Model(&model.Settings{}).Where("tenant_id = ?", tenantID)
	if err := db.Count(&total).Error; err != nil {
		return Page[model.Settings]{}, errors.Wrap(err, "count settings")
	}
	err := db.Order(pageable.Order()).Offset(pageable.Offset()).Limit(pageable.Limit()).Find(&settings).Error
	if err != nil {
		return Page[model.Settings]{}, errors.Wrap(err, "list settings")
	}
	return NewPage(settings, pageable, total), nil
}

// Create inserts a new setting
func (r *SettingsRepository) Create(ctx context.Context, setting *model.Settings) error {
	return dbFrom(ctx, r.db).Create(setting).Error
}

// Save persists changes to an existing setting
func (r *SettingsRepository) Save(ctx context.Context, setting *model.Settings) error {
	return dbFrom(ctx, r.db).Save(setting).Error
}

// Delete soft-deletes the setting; the row stays in the table
func (r *SettingsRepository) Delete(ctx context.Context, setting *model.Settings) error {
	return dbFrom(ctx, r.db).Delete(setting).Error
}
