package service

import (
	"github.com/gin-gonic/gin"

	"github.com/jayline-services/assist/app/core"
	"github.com/jayline-services/assist/app/response"
	"github.com/jayline-services/assist/cmd/service/handler"
	"github.com/jayline-services/assist/cmd/service/middleware"
	"github.com/jayline-services/assist/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)

	s.Engine.Use(gin.Recovery())
	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)

	s.Engine.GET("/metrics", metrics.Handler())

	apiV1 := s.Engine.Group("/api/v1")
	{
		qa := apiV1.Group("/qa")
		{
			qa.POST("/query", ipLimit("qa", core.WithLimit(20)), s.Query)
			qa.POST("/chat", ipLimit("qa", core.WithLimit(20)), s.Chat)
		}

		apiV1.POST("/suggestions", ipLimit("suggest", core.WithLimit(10)), s.CreateSuggestion)

		admin := apiV1.Group("")
		admin.Use(middleware.AdminRequired(s.Core))
		{
			admin.GET("/suggestions", s.ListSuggestions)
			admin.POST("/suggestions/review", s.ReviewSuggestion)
			admin.GET("/posts", s.ListPosts)
			admin.POST("/posts/generate", s.GenerateDraft)
			admin.POST("/index/rebuild", s.Reindex)
		}
	}
}
