package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base provides the identity, audit, and soft-delete columns shared by
// every entity. Soft-deleted rows stay in the table; gorm.DeletedAt
// keeps them out of all default queries.
type Base struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsDeleted reports whether the entity is soft-deleted
func (b *Base) IsDeleted() bool {
	return b.DeletedAt.Valid
}
