package expense

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	expenses := r.Group("/expenses")
	{
		expenses.GET("", handler.GetAll)
		expenses.GET("/deleted", handler.GetDeleted)
		expenses.GET("/:id", handler.GetById)
		expenses.POST("", handler.Create)
		expenses.PUT("/:id", handler.Update)
		expenses.DELETE("/:id", handler.Delete)
		expenses.POST("/:id/restore", handler.Restore)
	}
}
