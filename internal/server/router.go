// Package server assembles the HTTP API: middleware, routes and the ledger
// backend selected by configuration.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/HeyDYF/Money-Manager/internal/docs" // swagger docs
	"github.com/HeyDYF/Money-Manager/internal/events"
	"github.com/HeyDYF/Money-Manager/internal/handlers"
	"github.com/HeyDYF/Money-Manager/internal/metrics"
	"github.com/HeyDYF/Money-Manager/internal/middleware"
	"github.com/HeyDYF/Money-Manager/internal/services"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Ledger      services.LedgerServicer
	Exchange    services.ExchangeServicer
	Analytics   services.AnalyticsServicer
	Audit       services.AuditServicer
	Hub         *events.Hub
	Metrics     *metrics.Registry
	CORSOrigins []string
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Dependencies) *gin.Engine {
	ledgerHandler := handlers.NewLedgerHandler(d.Ledger, d.Audit)
	transactionHandler := handlers.NewTransactionHandler(d.Ledger, d.Audit)
	achievementHandler := handlers.NewAchievementHandler(d.Ledger)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Analytics)
	exchangeHandler := handlers.NewExchangeHandler(d.Exchange)
	eventsHandler := handlers.NewEventsHandler(d.Hub, d.CORSOrigins)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	if d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(d.CORSOrigins))
	router.NoRoute(middleware.NotFound)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")

	ledger := v1.Group("/ledger")
	ledger.GET("", ledgerHandler.GetLedger)
	ledger.PUT("/balance", ledgerHandler.SetInitialBalance)
	ledger.POST("/import", ledgerHandler.ImportData)
	ledger.GET("/export", ledgerHandler.ExportData)

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/achievements", achievementHandler.GetAchievements)
	v1.GET("/analytics", analyticsHandler.GetSummary)

	v1.GET("/currencies", exchangeHandler.GetCurrencies)
	v1.GET("/exchange", exchangeHandler.GetQuote)
	v1.GET("/exchange/rates", exchangeHandler.GetRates)

	v1.GET("/events", eventsHandler.Stream)

	return router
}
