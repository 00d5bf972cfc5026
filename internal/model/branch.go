package model

// Branch represents a regional grouping within a tenant.
// Hierarchy: Tenant -> Branch -> Store.
type Branch struct {
	Base
	TenantID     string `json:"tenant_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_branches_tenant_code"`
	Code         string `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_branches_tenant_code"`
	Name         string `json:"name" gorm:"type:varchar(200);not null"`
	Description  string `json:"description,omitempty" gorm:"type:varchar(500)"`
	Address      string `json:"address,omitempty" gorm:"type:varchar(500)"`
	City         string `json:"city,omitempty" gorm:"type:varchar(100)"`
	State        string `json:"state,omitempty" gorm:"type:varchar(100)"`
	Country      string `json:"country,omitempty" gorm:"type:varchar(100)"`
	PostalCode   string `json:"postal_code,omitempty" gorm:"type:varchar(20)"`
	Phone        string `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Email        string `json:"email,omitempty" gorm:"type:varchar(255)"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`
	ManagerName  string `json:"manager_name,omitempty" gorm:"type:varchar(100)"`
	ManagerEmail string `json:"manager_email,omitempty" gorm:"type:varchar(255)"`
	ManagerPhone string `json:"manager_phone,omitempty" gorm:"type:varchar(20)"`
}
