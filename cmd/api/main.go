package main

import (
	"log"

	"github.com/Hounds1/Mosk-Server/internal/auth"
	"github.com/Hounds1/Mosk-Server/internal/config"
	"github.com/Hounds1/Mosk-Server/internal/database"
	"github.com/Hounds1/Mosk-Server/internal/handlers"
	"github.com/Hounds1/Mosk-Server/internal/payment"
	"github.com/Hounds1/Mosk-Server/internal/routes"
	"github.com/Hounds1/Mosk-Server/internal/subscribe"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auth.Init(cfg.JWTSecret)

	db, err := database.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run schema migration: %v", err)
	}

	tossClient := payment.NewTossClient(cfg.TossBaseURL, cfg.TossSecretKey)

	app := &handlers.Handlers{
		DB:         db,
		Payments:   tossClient,
		Subscribes: subscribe.NewService(subscribe.NewMySQLRepository(db), tossClient),
	}

	router := routes.SetupRouter(app)

	log.Printf("Starting Mosk API server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
