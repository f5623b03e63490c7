package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/internmatch-ai/internmatch-api/internal/config"
	"github.com/internmatch-ai/internmatch-api/internal/domain/fiber/handler"
	applogger "github.com/internmatch-ai/internmatch-api/internal/logger"
	"github.com/internmatch-ai/internmatch-api/internal/middleware"
	"github.com/internmatch-ai/internmatch-api/internal/model"
	"github.com/internmatch-ai/internmatch-api/internal/repository"
	"github.com/internmatch-ai/internmatch-api/internal/service"
	"github.com/internmatch-ai/internmatch-api/internal/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zlog, err := applogger.New(appConfig.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(zlog)

	studentRepo := repository.NewStudentRepository(db)
	employerRepo := repository.NewEmployerRepository(db)
	internshipRepo := repository.NewInternshipRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	matchCache := repository.NewMatchCacheRepository(db)

	openRouter := service.NewOpenRouterService(zlog)
	if !openRouter.Enabled() {
		zlog.Warn("OPENROUTER_API_KEY not set, falling back to heuristic match scoring")
	}

	var embedder service.GeminiServiceInterface
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := service.NewGeminiService(ctx, zlog)
		if err != nil {
			log.Fatal(err)
		}
		embedder = gemini
	} else {
		zlog.Warn("GEMINI_API_KEY not set, internship embeddings disabled")
	}

	matchUC := usecase.NewMatchUsecase(
		studentRepo,
		internshipRepo,
		internshipRepo,
		matchCache,
		openRouter,
		zlog,
		config.LoadOpenRouterConfig().MaxConcurrency,
	)
	profileUC := usecase.NewProfileUsecase(db, zlog)
	internshipUC := usecase.NewInternshipUsecase(db, internshipRepo, employerRepo, embedder, zlog)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, internshipRepo, studentRepo, matchCache, openRouter, zlog)

	handler.NewMatchHandler(matchUC).RegisterRoutes(app)
	handler.NewStudentHandler(profileUC).RegisterRoutes(app)
	handler.NewInternshipHandler(internshipUC).RegisterRoutes(app)
	handler.NewApplicationHandler(applicationUC).RegisterRoutes(app)

	zlog.Info("server starting", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// the embedding column needs pgvector before AutoMigrate sees the model
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		zlog.Warn("could not ensure pgvector extension", zap.Error(err))
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Employer{},
		&model.Internship{},
		&model.Application{},
		&model.AIMatch{},
	)
	if err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
