package app

import (
	httpH "github.com/lcamargo/catalog-backend/internal/http/handlers"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type Handlers struct {
	Category   *httpH.CategoryHandler
	Genre      *httpH.GenreHandler
	CastMember *httpH.CastMemberHandler
	Video      *httpH.VideoHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Category:   httpH.NewCategoryHandler(svcs.Category),
		Genre:      httpH.NewGenreHandler(svcs.Genre),
		CastMember: httpH.NewCastMemberHandler(svcs.CastMember),
		Video:      httpH.NewVideoHandler(svcs.Video),
		Health:     httpH.NewHealthHandler(),
	}
}
