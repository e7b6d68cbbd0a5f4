package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/devendraBainda/AI-Interview-Agent/internal/agent"
	"github.com/devendraBainda/AI-Interview-Agent/internal/config"
	"github.com/devendraBainda/AI-Interview-Agent/internal/domain/fiber/handler"
	applogger "github.com/devendraBainda/AI-Interview-Agent/internal/logger"
	"github.com/devendraBainda/AI-Interview-Agent/internal/middleware"
	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
	"github.com/devendraBainda/AI-Interview-Agent/internal/repository"
	"github.com/devendraBainda/AI-Interview-Agent/internal/service"
	"github.com/devendraBainda/AI-Interview-Agent/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
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
	interviewConfig := config.LoadInterviewConfig()

	zl, err := applogger.New(appConfig.Env)
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer zl.Sync()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 25 * 1024 * 1024,
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
	app.Use(logger.New())
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

	llm, provider := buildLLM(ctx, interviewConfig.LLMProvider, zl)

	var sessions repository.SessionRepository
	var roles *repository.RoleRepository
	if appConfig.SessionStore == "memory" {
		sessions = repository.NewMemorySessionRepository()
		zl.Info("using in-memory session store")
	} else {
		db := ConnectDB(zl)
		sessions = repository.NewGormSessionRepository(db)
		roles = repository.NewRoleRepository(db)
	}

	analyzer := agent.NewAnalyzer(llm, interviewConfig.PlanningTimeout, zl)
	planner := agent.NewPlanner(llm, interviewConfig.MaxQuestions, interviewConfig.PlanningTimeout, zl)
	evaluator := agent.NewEvaluator(llm, interviewConfig.EvaluationTimeout, zl)
	reporter := agent.NewReporter(llm, interviewConfig.ReportTimeout, zl)

	uc := usecase.NewInterviewUsecase(sessions, analyzer, planner, evaluator, reporter, zl)
	if roles != nil {
		if embedder, ok := llm.(service.EmbeddingService); ok {
			uc = uc.WithRoleRetrieval(roles, embedder)
		}
	}

	speech := service.NewSpeechService(zl)

	h := handler.NewInterviewHandler(uc, speech, provider, zl)
	h.RegisterRoutes(app)

	zl.Info("server starting",
		zap.String("port", appConfig.Port),
		zap.String("env", appConfig.Env),
		zap.String("llm_provider", provider),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

// buildLLM constructs the configured provider. A Gemini startup failure
// falls back to OpenRouter so the service can still come up.
func buildLLM(ctx context.Context, provider string, zl *zap.Logger) (service.LLMService, string) {
	if provider == "openrouter" {
		return service.NewOpenRouterService(zl), "openrouter"
	}

	gemini, err := service.NewGeminiService(ctx, zl)
	if err != nil {
		zl.Warn("gemini unavailable, falling back to openrouter", zap.Error(err))
		return service.NewOpenRouterService(zl), "openrouter"
	}
	return gemini, "gemini"
}

func ConnectDB(zl *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		zl.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zl.Fatal("could not get database instance", zap.Error(err))
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

	if err := db.AutoMigrate(&model.Session{}, &model.RoleProfile{}); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	return db
}
