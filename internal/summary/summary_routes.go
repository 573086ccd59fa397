package summary

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	summaries := r.Group("/attendance-summaries")
	{
		summaries.GET("", handler.Get)
		summaries.GET("/team", handler.Team)
		summaries.POST("/generate", handler.Generate)
		summaries.POST("/regenerate-all", handler.RegenerateAll)
	}
}
