package app

import (
	"gorm.io/gorm"

	dataagg "github.com/lcamargo/catalog-backend/internal/data/aggregates"
	"github.com/lcamargo/catalog-backend/internal/data/rules"
	"github.com/lcamargo/catalog-backend/internal/observability"
	"github.com/lcamargo/catalog-backend/internal/platform/gcs"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
	"github.com/lcamargo/catalog-backend/internal/services"
)

type Services struct {
	Category   *services.CategoryService
	Genre      *services.GenreService
	CastMember *services.CastMemberService
	Video      *services.VideoService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos, bucket gcs.BucketService, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := dataagg.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: dataagg.NewGormTxRunner(db),
		Hooks:  dataagg.NewObservabilityHooks(metrics),
	}
	syncer := dataagg.NewRelationSyncer(db, log)
	attachments := dataagg.NewAttachmentManager(bucket, log)

	videoAgg := dataagg.NewVideoAggregate(dataagg.VideoAggregateDeps{
		Base:        base,
		Videos:      repos.Video,
		Relations:   syncer,
		Attachments: attachments,
	})
	genreAgg := dataagg.NewGenreAggregate(dataagg.GenreAggregateDeps{
		Base:      base,
		Genres:    repos.Genre,
		Relations: syncer,
	})

	return Services{
		Category:   services.NewCategoryService(repos.Category, log),
		Genre:      services.NewGenreService(genreAgg, repos.Genre, repos.Category, log),
		CastMember: services.NewCastMemberService(repos.CastMember, log),
		Video: services.NewVideoService(
			videoAgg,
			repos.Video,
			repos.Category,
			repos.Genre,
			repos.CastMember,
			rules.NewCategoryGenreFetch(db),
			log,
		),
	}
}
