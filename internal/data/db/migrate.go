package db

import (
	"gorm.io/gorm"

	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Entities
		&catalog.Category{},
		&catalog.Genre{},
		&catalog.CastMember{},
		&catalog.Video{},

		// Join rows (owned by the relation syncer)
		&catalog.CategoryGenre{},
		&catalog.CategoryVideo{},
		&catalog.GenreVideo{},
		&catalog.CastMemberVideo{},
	)
}
