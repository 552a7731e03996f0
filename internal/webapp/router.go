package webapp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contable-ledger/internal/webapp/handler"
	"github.com/contable-ledger/internal/webapp/middleware"
	"github.com/contable-ledger/internal/webapp/service"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	sessions service.SessionService,
	authHandler *handler.AuthHandler,
	draftHandler *handler.DraftHandler,
	reportHandler *handler.ReportHandler,
	catalogHandler *handler.CatalogHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	v1 := r.Group("/api/v1")

	// Login is the only route reachable without a session
	v1.POST("/auth/login", authHandler.Login)

	private := v1.Group("", middleware.RequireSession(sessions))
	{
		private.POST("/auth/logout", authHandler.Logout)
		private.GET("/catalog", catalogHandler.Get)

		// Draft editing
		draft := private.Group("/draft")
		{
			draft.GET("", draftHandler.Get)
			draft.PUT("", draftHandler.SetHeader)
			draft.POST("/lines", draftHandler.AddLine)
			draft.DELETE("/lines/:index", draftHandler.RemoveLine)
		}

		// Posting
		private.POST("/entries", draftHandler.Submit)

		// Read-side views
		private.GET("/records", reportHandler.Records)
		reports := private.Group("/reports")
		{
			reports.GET("/totals", reportHandler.Totals)
			reports.GET("/accounts", reportHandler.ByAccount)
			reports.GET("/units", reportHandler.ByBusinessUnit)
			reports.GET("/taxes", reportHandler.Taxes)
			reports.GET("/profit-loss", reportHandler.ProfitAndLoss)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
