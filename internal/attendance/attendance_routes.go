package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", handler.GetAll)
		attendances.GET("/deleted", handler.GetDeleted)
		attendances.GET("/weekly-overview", handler.WeeklyOverview)
		attendances.POST("", handler.Upsert)
		attendances.PUT("/:id", handler.Edit)
		attendances.DELETE("/:id", handler.Delete)
		attendances.POST("/:id/restore", handler.Restore)
		attendances.DELETE("/employee/:employee", handler.DeleteByEmployee)
	}
}
