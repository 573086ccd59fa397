package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/haingladys/JSDC-Accounting/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", handler.GetPeriod)
		payrolls.GET("/deleted", handler.GetDeleted)
		payrolls.GET("/:id", handler.GetById)
		if redisClient != nil {
			payrolls.POST("", middleware.Idempotency(redisClient), handler.Save)
		} else {
			payrolls.POST("", handler.Save)
		}
		payrolls.POST("/:id/recreate-expenses", handler.RecreateExpenses)
		payrolls.POST("/:id/restore", handler.Restore)
		payrolls.DELETE("/:id", handler.Delete)
	}
}
