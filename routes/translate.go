package routes

import (
	"claritycoach/controllers"

	"github.com/gin-gonic/gin"
)

// SetupTranslateRoutes registers the translate/analyze workflow routes.
func SetupTranslateRoutes(router *gin.RouterGroup) {
	translate := router.Group("/translate")
	{
		translate.POST("/submit", controllers.SubmitTranslation)
		translate.POST("/verbose", controllers.ExpandVerbose)
		translate.POST("/edit/begin", controllers.BeginEdit)
		translate.POST("/edit/update", controllers.UpdateEdit)
		translate.POST("/edit/cancel", controllers.CancelEdit)
		translate.POST("/edit/save", controllers.SaveEdit)
		translate.POST("/reanalyze", controllers.Reanalyze)
		translate.POST("/rating", controllers.SubmitRating)
		translate.POST("/reset", controllers.ResetWorkflow)
		translate.GET("/state", controllers.WorkflowStateHandler)
	}
}
