package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/laakri/DevCollab/internal/handlers"
)

// RegisterRoutes mounts every handler under /api.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.LearningPostHandler.RegisterRoutes(api)
		appHandlers.SessionHandler.RegisterRoutes(api)
	}
}
