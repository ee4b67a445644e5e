package app

import (
	"gorm.io/gorm"

	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type Repos struct {
	Category   catalogrepos.CategoryRepo
	Genre      catalogrepos.GenreRepo
	CastMember catalogrepos.CastMemberRepo
	Video      catalogrepos.VideoRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Category:   catalogrepos.NewCategoryRepo(db, log),
		Genre:      catalogrepos.NewGenreRepo(db, log),
		CastMember: catalogrepos.NewCastMemberRepo(db, log),
		Video:      catalogrepos.NewVideoRepo(db, log),
	}
}
