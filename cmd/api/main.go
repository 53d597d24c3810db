package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/application/reporting"
	"github.com/loudbaby/easyops-api/internal/application/usecase"
	"github.com/loudbaby/easyops-api/internal/application/webhook"
	"github.com/loudbaby/easyops-api/internal/infrastructure/cache"
	"github.com/loudbaby/easyops-api/internal/infrastructure/postgres"
	"github.com/loudbaby/easyops-api/internal/infrastructure/square"
	httpRouter "github.com/loudbaby/easyops-api/internal/interfaces/http"
	"github.com/loudbaby/easyops-api/pkg/config"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)

	// El ingestor de webhooks escribe sin usuario autenticado. Si hay un DSN
	// privilegiado aparte, usa su propio pool; si no, comparte el principal.
	webhookTxRunner := txRunner
	if cfg.DB.ServiceRoleURL != "" {
		serviceCfg := cfg.DB
		serviceCfg.DatabaseURL = cfg.DB.ServiceRoleURL
		servicePool, err := postgres.NewPool(ctx, serviceCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL (service role)")
		}
		defer servicePool.Close()
		webhookTxRunner = postgres.NewTxRunner(servicePool)
	}

	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	dateRepo := postgres.NewDateRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	engine := inventory.NewReconciliationEngine(txRunner, locationRepo, log)

	// Cache de deduplicación opcional; sin Redis el constraint único basta.
	var dedup webhook.DedupCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible: deduplicación solo por base de datos")
		} else {
			dedup = cache.NewRedisDedupCache(rdb)
		}
	}

	verifier := square.NewVerifier(cfg.Square.WebhookSecret, cfg.Square.SignatureScheme, cfg.Square.NotificationURL)
	if cfg.Square.Sandbox {
		log.Warn().Msg("modo sandbox de webhooks activo: firmas inválidas se aceptan con warning")
	}
	ingestor := webhook.NewIngestor(verifier, webhookTxRunner, engine, dedup, cfg.Square.Sandbox, log)

	itemUC := usecase.NewItemUseCase(itemRepo, txRunner)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)
	profileUC := usecase.NewProfileUseCase(profileRepo)
	dateUC := usecase.NewDateUseCase(dateRepo, itemRepo)
	reportUC := reporting.NewReportUseCase(reportRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Loud Baby Easy Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		LocationUC:   locationUC,
		TaskUC:       taskUC,
		ProfileUC:    profileUC,
		DateUC:       dateUC,
		ReportUC:     reportUC,
		Engine:       engine,
		Ingestor:     ingestor,
		JWTSecret:    cfg.JWT.Secret,
		SquareSecret: cfg.Square.WebhookSecret,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
