package routes

import (
	"claritycoach/controllers"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes registers the coach conversation routes.
func SetupChatRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("/send", controllers.SendChatMessage)
		chat.GET("/history", controllers.ChatHistory)
		chat.POST("/reset", controllers.ResetChat)
	}
}
