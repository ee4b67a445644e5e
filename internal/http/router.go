package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/lcamargo/catalog-backend/internal/http/handlers"
	httpMW "github.com/lcamargo/catalog-backend/internal/http/middleware"
	"github.com/lcamargo/catalog-backend/internal/observability"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	CategoryHandler   *httpH.CategoryHandler
	GenreHandler      *httpH.GenreHandler
	CastMemberHandler *httpH.CastMemberHandler
	VideoHandler      *httpH.VideoHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	// Video uploads can be large; buffer only a slice in memory.
	r.MaxMultipartMemory = 64 << 20

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.CategoryHandler != nil {
			api.POST("/categories", cfg.CategoryHandler.Create)
			api.GET("/categories", cfg.CategoryHandler.List)
			api.GET("/categories/:id", cfg.CategoryHandler.Get)
			api.PUT("/categories/:id", cfg.CategoryHandler.Update)
			api.DELETE("/categories/:id", cfg.CategoryHandler.Delete)
		}

		if cfg.GenreHandler != nil {
			api.POST("/genres", cfg.GenreHandler.Create)
			api.GET("/genres", cfg.GenreHandler.List)
			api.GET("/genres/:id", cfg.GenreHandler.Get)
			api.PUT("/genres/:id", cfg.GenreHandler.Update)
			api.DELETE("/genres/:id", cfg.GenreHandler.Delete)
		}

		if cfg.CastMemberHandler != nil {
			api.POST("/cast-members", cfg.CastMemberHandler.Create)
			api.GET("/cast-members", cfg.CastMemberHandler.List)
			api.GET("/cast-members/:id", cfg.CastMemberHandler.Get)
			api.PUT("/cast-members/:id", cfg.CastMemberHandler.Update)
			api.DELETE("/cast-members/:id", cfg.CastMemberHandler.Delete)
		}

		if cfg.VideoHandler != nil {
			api.POST("/videos", cfg.VideoHandler.Create)
			api.GET("/videos", cfg.VideoHandler.List)
			api.GET("/videos/:id", cfg.VideoHandler.Get)
			api.PUT("/videos/:id", cfg.VideoHandler.Update)
			api.DELETE("/videos/:id", cfg.VideoHandler.Delete)
		}
	}

	return r
}
