package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/shoply/jobboard/config"
	"github.com/shoply/jobboard/internal/api/handlers"
	"github.com/shoply/jobboard/internal/api/middleware"
	"github.com/shoply/jobboard/internal/api/routes"
	"github.com/shoply/jobboard/internal/cache"
	"github.com/shoply/jobboard/internal/logger"
	"github.com/shoply/jobboard/internal/models"
	pgrepo "github.com/shoply/jobboard/internal/repositories/postgres"
	"github.com/shoply/jobboard/internal/services"
	"github.com/shoply/jobboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	db := config.PostgresDB
	if err := db.AutoMigrate(
		&models.User{},
		&models.ShopProfile{},
		&models.JobVacancy{},
		&models.JobApplication{},
		&models.VacancyComment{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	media, raw, serveMedia := buildUploaders()

	userRepo := pgrepo.NewUserRepo(db)
	shopRepo := pgrepo.NewShopRepo(db)
	vacancyRepo := pgrepo.NewVacancyRepo(db)
	applicationRepo := pgrepo.NewApplicationRepo(db)
	commentRepo := pgrepo.NewCommentRepo(db)

	tokenStore := cache.NewRedisStore(config.RedisClient)

	authSvc := services.NewAuthService(userRepo, tokenStore)
	userSvc := services.NewUserService(userRepo)
	shopSvc := services.NewShopService(shopRepo, vacancyRepo, applicationRepo)
	vacancySvc := services.NewVacancyService(vacancyRepo, shopRepo, applicationRepo)
	applicationSvc := services.NewApplicationService(applicationRepo, shopRepo)
	commentSvc := services.NewCommentService(commentRepo, vacancyRepo, shopRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	if serveMedia != "" {
		r.Static("/media", serveMedia)
	}

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc),
		User:        handlers.NewUserHandler(userSvc, media),
		Shop:        handlers.NewShopHandler(shopSvc, userSvc, media),
		Vacancy:     handlers.NewVacancyHandler(vacancySvc, commentSvc, media, raw),
		Application: handlers.NewApplicationHandler(applicationSvc, userSvc),
		Comment:     handlers.NewCommentHandler(commentSvc, userSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildUploaders picks the storage backends: GCS when GCS_BUCKET is set,
// local disk under MEDIA_DIR otherwise. CV uploads always land on a
// backend segregated from public media.
func buildUploaders() (media, raw storage.Uploader, serveDir string) {
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		ctx := context.Background()
		m, err := storage.NewGCSUploader(ctx, bucket, true)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		rawBucket := os.Getenv("GCS_RAW_BUCKET")
		if rawBucket == "" {
			rawBucket = bucket
		}
		rw, err := storage.NewGCSUploader(ctx, rawBucket, false)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		return m, rw, ""
	}

	dir := os.Getenv("MEDIA_DIR")
	if dir == "" {
		dir = "media"
	}
	// CVs live under a raw/ subtree, kept apart from public media
	return storage.NewLocalUploader(dir, "/media"),
		storage.NewLocalUploader(filepath.Join(dir, "raw"), "/media/raw"),
		dir
}
