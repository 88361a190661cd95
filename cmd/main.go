package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"lecturehub/backend/internal/api/handler"
	"lecturehub/backend/internal/api/middleware"
	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/chathub"
	"lecturehub/backend/internal/config"
	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting LectureHub Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	tokens := auth.NewTokenManager(cfg.TokenSecret, config.SessionTokenTTL)

	hub := chathub.NewHub(s, tokens)
	go hub.RunPubSub(s.SubscribeBroadcast())

	r := gin.Default()
	h := handler.NewHandler(hub, s, tokens)

	loginLimiter := middleware.NewLimiterStore(config.LoginRateLimitPerMinute, config.LoginRateBurst, time.Minute)

	r.Use(middleware.SessionAuth(s, tokens))

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", middleware.RateLimit(loginLimiter), h.Login)
	r.POST("/auth/logout", middleware.Authenticated(), h.Logout)

	r.GET("/ws/chat/:other_user_id", h.ServeChatSocket)
	r.GET("/chat/:other_user_id/previous-messages", middleware.Authenticated(), h.PreviousMessages)
	r.POST("/chat/messages/:id/read", middleware.Authenticated(), h.MarkMessageRead)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
		// No blanket write timeout: websocket connections outlive any
		// sensible value. Slow handshakes are bounded instead.
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
