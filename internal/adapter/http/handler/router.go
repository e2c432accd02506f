package handler

import (
	"party-loot-ledger/internal/adapter/http/middleware"
	"party-loot-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	SplitSvc       ports.SplitService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	ledger := v1.Group("/ledger")
	{
		ledger.GET("/balance", ledgerHandler.GetBalance)
		ledger.GET("/transactions", ledgerHandler.ListTransactions)
		ledger.POST("/deposits", ledgerHandler.Deposit)
		ledger.POST("/withdrawals", ledgerHandler.Withdraw)
		ledger.GET("/export", ledgerHandler.Export)
		ledger.POST("/import", ledgerHandler.Import)
	}

	splitHandler := NewSplitHandler(deps.SplitSvc)
	split := v1.Group("/split")
	{
		split.POST("/preview", splitHandler.Preview)
		split.POST("/commit", splitHandler.Commit)
	}

	return r
}
