package model

// Store represents a physical store location belonging to a tenant
type Store struct {
	Base
	TenantID       string   `json:"tenant_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_stores_tenant_code"`
	Code           string   `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_stores_tenant_code"`
	Name           string   `json:"name" gorm:"type:varchar(200);not null"`
	Description    string   `json:"description,omitempty" gorm:"type:varchar(500)"`
	StoreType      string   `json:"store_type,omitempty" gorm:"type:varchar(50)"`
	Email          string   `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone          string   `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address        string   `json:"address" gorm:"type:varchar(500);not null"`
	City           string   `json:"city" gorm:"type:varchar(100);not null"`
	State          string   `json:"state,omitempty" gorm:"type:varchar(100)"`
	Country        string   `json:"country" gorm:"type:varchar(100);not null"`
	PostalCode     string   `json:"postal_code,omitempty" gorm:"type:varchar(20)"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	IsActive       bool     `json:"is_active" gorm:"not null;default:true"`
	ManagerName    string   `json:"manager_name,omitempty" gorm:"type:varchar(100)"`
	ManagerEmail   string   `json:"manager_email,omitempty" gorm:"type:varchar(255)"`
	ManagerPhone   string   `json:"manager_phone,omitempty" gorm:"type:varchar(20)"`
	OperatingHours string   `json:"operating_hours,omitempty" gorm:"type:varchar(500)"`
	Timezone       string   `json:"timezone" gorm:"type:varchar(50);default:UTC"`
}
