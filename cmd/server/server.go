package server

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/handlers"
	"github.com/thereayou/socialite/internal/services"
	"github.com/thereayou/socialite/internal/websocket"
	"github.com/thereayou/socialite/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		30*24*time.Hour,
	)

	avatarDir := envOrDefault("AVATAR_DIR", filepath.Join("uploads", "avatars"))
	mediaDir := envOrDefault("MEDIA_DIR", filepath.Join("uploads", "publications"))
	for _, dir := range []string{avatarDir, mediaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("cannot create upload dir %s: %v", dir, err)
		}
	}

	hub := websocket.NewHub()
	go hub.Run()

	followSvc := services.NewFollowService(dbConn)

	userH := handlers.NewUserHandler(dbConn, jwtMgr, rdb, followSvc, avatarDir)
	publicationH := handlers.NewPublicationHandler(dbConn, followSvc, hub, mediaDir)
	followH := handlers.NewFollowHandler(dbConn, followSvc, hub)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, userH, publicationH, followH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
