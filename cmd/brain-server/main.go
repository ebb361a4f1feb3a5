package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/config"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/database"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/logging"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/metadata"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/share"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/tags"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	db := database.GetDB()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	secret := []byte(cfg.JWTSecret)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logging.RequestLogger(log), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	resolver := metadata.NewResolver()

	api := r.Group("/api")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(db, secret)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Share resolution needs no credentials
		shareHandler := share.NewHandler(db)
		shareHandler.RegisterPublicRoutes(api)

		// Everything else requires a bearer token
		protected := api.Group("", auth.Middleware(secret))

		contentHandler := content.NewHandler(db, resolver, log)
		contentHandler.RegisterRoutes(protected)

		tagsHandler := tags.NewHandler(db)
		tagsHandler.RegisterRoutes(protected)

		metadataHandler := metadata.NewHandler(resolver)
		metadataHandler.RegisterRoutes(protected)

		shareHandler.RegisterRoutes(protected)
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
