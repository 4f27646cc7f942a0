package app

import (
	"spm_tracker_backend/docs"
	"spm_tracker_backend/internal/config"
	"spm_tracker_backend/internal/middleware"
	"spm_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.Use(middleware.Identity(cfg))
	{
		api.GET("/health", c.health.HealthCheck)

		// 成绩追踪
		tracker := api.Group("/tracker")
		{
			tracker.GET("/blueprints", c.result.GetBlueprints)

			tracker.GET("/results", c.result.ListResults)
			tracker.POST("/results", c.result.UpsertResult)
			tracker.GET("/results/:id", c.result.GetResult)
			tracker.DELETE("/results/:id", c.result.DeleteResult)

			tracker.GET("/dashboard", c.dashboard.GetDashboard)
			tracker.GET("/dashboard/trend", c.dashboard.GetTrend)

			tracker.GET("/recommendations", c.recommendation.ListRecommendations)
		}

		// 题目清单
		lists := api.Group("/lists")
		{
			lists.GET("", c.list.ListLists)
			lists.POST("", c.list.CreateList)
			lists.GET("/:id", c.list.GetList)
			lists.PATCH("/:id", c.list.PatchList)
			lists.DELETE("/:id", c.list.DeleteList)
		}

		// 题库
		questions := api.Group("/questions")
		{
			questions.GET("", c.question.ListQuestions)
			questions.POST("/save", c.question.SaveQuestions)
		}

		// 课程标准
		api.GET("/learning-standards", c.standards.GetStandards)

		// AI 判分
		marking := api.Group("/marking")
		{
			marking.POST("/recognize-answer", c.marking.RecognizeAnswer)
			marking.POST("/grade-answer", c.marking.GradeAnswer)
		}
	}
}
