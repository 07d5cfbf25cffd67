package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Nik-Maltcev/careeros-sub000/internal/config"
	"github.com/Nik-Maltcev/careeros-sub000/internal/domain/fiber/handler"
	"github.com/Nik-Maltcev/careeros-sub000/internal/logger"
	"github.com/Nik-Maltcev/careeros-sub000/internal/middleware"
	"github.com/Nik-Maltcev/careeros-sub000/internal/model"
	"github.com/Nik-Maltcev/careeros-sub000/internal/repository"
	"github.com/Nik-Maltcev/careeros-sub000/internal/service"
	"github.com/Nik-Maltcev/careeros-sub000/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
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

	zlog, err := logger.New(appConfig.Env == "production", appConfig.Debug)
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
	app.Use(fiberlog.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()
	interviewRepo := repository.NewInterviewRepository(db)

	// Provider priority: OpenRouter's model list first, Gemini as the last
	// external option. The heuristic path inside the usecase needs neither.
	providers := []usecase.AssessmentProvider{service.NewOpenRouterService(zlog)}
	gemini, err := service.NewGeminiService(ctx, zlog)
	if err != nil {
		zlog.Warn("gemini provider disabled", zap.Error(err))
	} else {
		providers = append(providers, gemini)
	}

	uc := usecase.NewEvaluationUsecase(interviewRepo, zlog, providers...)
	whisper := service.NewWhisperService(zlog)
	h := handler.NewEvaluateHandler(uc, whisper)
	h.RegisterRoutes(app)

	zlog.Info("server starting", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
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
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.InterviewSession{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
