package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bank-reconciliation-backend/internal/config"
	handler "bank-reconciliation-backend/internal/handlers"
	"bank-reconciliation-backend/internal/repository"
	"bank-reconciliation-backend/internal/services/extraction"
	service "bank-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, log *logrus.Logger) {
	store := repository.NewStore(db)

	var extractor extraction.Extractor = extraction.Disabled{}
	if cfg.ExtractionServiceURL != "" {
		extractor = extraction.NewClient(cfg.ExtractionServiceURL, cfg.ExtractionAPIKey, log)
	}

	reconService := service.NewService(store, extractor, log)
	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	recon := api.Group("/reconciliation")
	recon.POST("/rules/load", reconHandler.LoadRules)
	recon.GET("/stats", reconHandler.GetStats)
	recon.POST("/statements/:id/reconcile", reconHandler.ReconcileStatement)

	tx := recon.Group("/transactions")
	tx.GET("/:id/matches", reconHandler.ListMatches)
	tx.POST("/:id/reconcile", reconHandler.ReconcileTransaction)
	tx.POST("/:id/suggest", reconHandler.SuggestMatch)
	tx.POST("/:id/extract", reconHandler.ExtractTransaction)
	tx.POST("/:id/ignore", reconHandler.IgnoreTransaction)

	matches := api.Group("/matches")
	matches.POST("/:id/accept", reconHandler.AcceptMatch)
	matches.POST("/:id/reject", reconHandler.RejectMatch)
}
