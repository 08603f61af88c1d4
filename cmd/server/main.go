package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bank-reconciliation-backend/internal/config"
	"bank-reconciliation-backend/internal/logger"
	"bank-reconciliation-backend/internal/models"
	"bank-reconciliation-backend/internal/routes"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on system env")
	}
	cfg := config.Load()

	db, err := config.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("cannot connect to database")
	}

	if err := db.AutoMigrate(
		&models.BankAccount{},
		&models.BankStatement{},
		&models.BankTransaction{},
		&models.Invoice{},
		&models.SupplierInvoice{},
		&models.Expense{},
		&models.Payment{},
		&models.ReconciliationRule{},
		&models.ReconciliationMatch{},
		&models.AccountLettrage{},
		&models.LettrageLine{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, log)

	log.WithField("port", cfg.Port).Info("starting reconciliation server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
