package purchase

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	purchases := r.Group("/purchases")
	{
		purchases.GET("", handler.GetReport)
		purchases.POST("", handler.Create)
		purchases.PUT("/:id", handler.Update)
		purchases.DELETE("/:id", handler.Delete)

		purchases.GET("/categories", handler.ListCategories)
		purchases.POST("/categories", handler.CreateCategory)
	}
}
