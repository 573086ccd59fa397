package income

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	incomes := r.Group("/incomes")
	{
		incomes.GET("", handler.GetMonth)
		incomes.POST("", handler.Create)
		incomes.PUT("/:id", handler.Update)
		incomes.DELETE("/:id", handler.Delete)
	}
}
