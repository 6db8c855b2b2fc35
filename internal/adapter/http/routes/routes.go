package routes

import (
	"github.com/gin-gonic/gin"

	"todohub/internal/adapter/http/handler"
	"todohub/internal/adapter/http/middleware"
	"todohub/internal/core/telemetry"
	. "todohub/pkg/auth"
	"todohub/pkg/config"
	"todohub/pkg/logger"
)

type HandlersConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	TodoHandler     *handler.TodoHandler
	CategoryHandler *handler.CategoryHandler
	TagHandler      *handler.TagHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, appLogger *logger.AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, appLogger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, appLogger *logger.AppLogger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupGinMiddlewareWithConfig(router, "todohub", metrics, appLogger, cfg)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers)

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/signup", authHandler.SignUp)
		public.POST("/auth", authHandler.Login)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig) {
	protected := router.Group("/api")
	protected.Use(GinJwtMiddleware())

	if handlers.TodoHandler != nil {
		todos := protected.Group("/todos")
		{
			todos.GET("", handlers.TodoHandler.ListTodos)
			todos.POST("", handlers.TodoHandler.CreateTodo)
			todos.GET("/stats", handlers.TodoHandler.GetStats)
			todos.POST("/batch/update", handlers.TodoHandler.BatchUpdateTodos)
			todos.POST("/batch/delete", handlers.TodoHandler.BatchDeleteTodos)
			todos.GET("/:id", handlers.TodoHandler.GetTodo)
			todos.PUT("/:id", handlers.TodoHandler.UpdateTodo)
			todos.DELETE("/:id", handlers.TodoHandler.DeleteTodo)
		}
	}

	if handlers.TagHandler != nil {
		protected.POST("/todos/:id/tags/:tag_id", handlers.TagHandler.AssignTag)
		protected.DELETE("/todos/:id/tags/:tag_id", handlers.TagHandler.RemoveTag)

		tags := protected.Group("/tags")
		{
			tags.GET("", handlers.TagHandler.ListTags)
			tags.POST("", handlers.TagHandler.CreateTag)
			tags.GET("/:id", handlers.TagHandler.GetTag)
			tags.DELETE("/:id", handlers.TagHandler.DeleteTag)
		}
	}

	if handlers.CategoryHandler != nil {
		categories := protected.Group("/categories")
		{
			categories.GET("", handlers.CategoryHandler.ListCategories)
			categories.POST("", handlers.CategoryHandler.CreateCategory)
			categories.GET("/:id", handlers.CategoryHandler.GetCategory)
			categories.PUT("/:id", handlers.CategoryHandler.UpdateCategory)
			categories.DELETE("/:id", handlers.CategoryHandler.DeleteCategory)
		}
	}

	if handlers.UserHandler != nil {
		profile := protected.Group("/profile")
		{
			profile.GET("", handlers.UserHandler.GetProfile)
			profile.PUT("", handlers.UserHandler.UpdateProfile)
			profile.DELETE("", handlers.UserHandler.DeleteProfile)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests wires the routes without telemetry or rate limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers)

	return router
}
