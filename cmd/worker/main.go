package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/haingladys/JSDC-Accounting/internal/app"
	"github.com/haingladys/JSDC-Accounting/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
