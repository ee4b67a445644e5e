package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CastMemberTypeDirector = 1
	CastMemberTypeActor    = 2
)

type CastMember struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null" json:"name"`
	Type int       `gorm:"column:type;not null" json:"type"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CastMember) TableName() string { return "cast_members" }

func IsValidCastMemberType(t int) bool {
	return t == CastMemberTypeDirector || t == CastMemberTypeActor
}
