package model

// Setting value types
const (
	SettingTypeString  = "STRING"
	SettingTypeNumber  = "NUMBER"
	SettingTypeBoolean = "BOOLEAN"
	SettingTypeJSON    = "JSON"
)

// Settings stores a single tenant-scoped configuration entry keyed by
// SettingKey. Rows flagged IsSystem cannot be modified or deleted
// through the API.
type Settings struct {
	Base
	TenantID     string `json:"tenant_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_settings_tenant_key"`
	Category     string `json:"category" gorm:"type:varchar(50);not null;index"`
	SettingKey   string `json:"setting_key" gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_tenant_key"`
	SettingValue string `json:"setting_value,omitempty" gorm:"type:text"`
	ValueType    string `json:"value_type" gorm:"type:varchar(20);not null;default:STRING"`
	Description  string `json:"description,omitempty" gorm:"type:varchar(500)"`
	IsSystem     bool   `json:"is_system" gorm:"not null;default:false"`
	IsEncrypted  bool   `json:"is_encrypted" gorm:"not null;default:false"`
}
