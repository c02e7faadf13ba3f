package routes

import (
	"claritycoach/controllers"

	"github.com/gin-gonic/gin"
)

// SetupFormRoutes registers the subscribe and contact form routes.
func SetupFormRoutes(router *gin.RouterGroup) {
	forms := router.Group("/forms")
	{
		forms.POST("/subscribe", controllers.Subscribe)
		forms.POST("/contact", controllers.Contact)
	}
}
