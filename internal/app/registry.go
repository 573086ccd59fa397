package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haingladys/JSDC-Accounting/internal/attendance"
	"github.com/haingladys/JSDC-Accounting/internal/expense"
	"github.com/haingladys/JSDC-Accounting/internal/income"
	"github.com/haingladys/JSDC-Accounting/internal/messaging/kafka"
	"github.com/haingladys/JSDC-Accounting/internal/payroll"
	"github.com/haingladys/JSDC-Accounting/internal/purchase"
	"github.com/haingladys/JSDC-Accounting/internal/summary"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(db)
	expenseRepo := expense.NewRepository(db)
	incomeRepo := income.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(db)
	purchaseRepo := purchase.NewRepository(db)
	summaryRepo := summary.NewRepository(db)

	// --- Services ---
	summaryService := summary.NewService(db, summaryRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, summaryService, logger)
	expenseService := expense.NewService(db, expenseRepo, logger)
	incomeService := income.NewService(incomeRepo)
	payrollService := payroll.NewService(db, payrollRepo, expenseRepo, summaryService, outboxRepo, logger)
	purchaseService := purchase.NewService(purchaseRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	expenseHandler := expense.NewHandler(expenseService)
	incomeHandler := income.NewHandler(incomeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	purchaseHandler := purchase.NewHandler(purchaseService)
	summaryHandler := summary.NewHandler(summaryService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		expense.RegisterRoutes(api, expenseHandler)
		income.RegisterRoutes(api, incomeHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
		purchase.RegisterRoutes(api, purchaseHandler)
		summary.RegisterRoutes(api, summaryHandler)
	}

	return nil
}
