package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Genre struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	IsActive bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// Association traversal deliberately includes soft-deleted categories;
	// repos load this without filtering the far side by deleted_at.
	Categories []*Category `gorm:"many2many:category_genre" json:"categories,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Genre) TableName() string { return "genres" }
