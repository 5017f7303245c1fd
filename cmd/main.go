package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/api/handler"
	"sauti/backend/internal/enrichment"
	"sauti/backend/internal/feed"
	"sauti/backend/internal/localization"
	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
	"sauti/backend/internal/notify"
	"sauti/backend/internal/storage"
)

func buildDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "sauti"),
		getenv("DB_PASSWORD", "sauti"),
		getenv("DB_NAME", "sauti_db"),
		getenv("DB_PORT", "5432"),
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies(log *logger.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(buildDSN()), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect PostgreSQL")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getenv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.WithError(err).Fatal("Failed to connect Redis")
	}

	if err := db.AutoMigrate(
		&models.Complaint{},
		&models.User{},
	); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	log.Info("Database and Redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: production supplies real environment variables.
		fmt.Println("Warning: no .env file loaded")
	}

	log := logger.New()
	log.Info("Starting Sauti backend...")

	db, rdb := setupDependencies(log)
	s := storage.NewStorageService(db, rdb)

	loc, err := localization.NewLocalizer(getenv("LOCALES_DIR", "locales"))
	if err != nil {
		log.WithError(err).Fatal("Failed to load localizations")
	}

	// A missing AI credential must not stop intake: complaints persist with
	// ai_processed = false and a later batch run picks them up.
	aiClient, err := ai.NewOpenAIClient(log)
	orchestrator := enrichment.NewOrchestrator(s, nil, log)
	if err != nil {
		log.WithError(err).Warn("AI enrichment disabled")
	} else {
		orchestrator.AI = aiClient
	}

	notifier, err := notify.NewTelegramNotifier(log)
	if err != nil {
		log.WithError(err).Warn("Telegram alerting disabled")
	} else if notifier != nil {
		orchestrator.Alerter = notifier
	}

	hub := feed.NewHub(s, log)
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(s, orchestrator, hub, loc, log)

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/anonid", h.GetAnonID)
	r.POST("/complaints", h.SubmitComplaint)
	r.GET("/complaints", h.ListRecentComplaints)
	r.GET("/complaints/:id", h.GetComplaint)
	r.GET("/dashboard/stats", h.DashboardStats)
	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           getenv("LISTEN_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   90 * time.Second, // synchronous enrichment sits inside the request
		MaxHeaderBytes: 1 << 20,
	}

	log.WithField("addr", server.Addr).Info("Listening")
	log.Fatal(server.ListenAndServe())
}
