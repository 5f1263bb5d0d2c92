package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/internal/domain/permission"
	"github.com/jhoicas/Agenda-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Agenda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Agenda-api/internal/infrastructure/pubsub"
	httpRouter "github.com/jhoicas/Agenda-api/internal/interfaces/http"
	"github.com/jhoicas/Agenda-api/pkg/config"
	"github.com/jhoicas/Agenda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	policy, err := permission.ParsePolicy(cfg.Permissions.OverridePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("PERMISSIONS_OVERRIDE_POLICY")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterPgxPoolMetrics(reg, pool)
	permMetrics := metrics.NewPermissionMetrics(reg)

	// Sin REDIS_ADDR los cambios de overrides no se publican; los clientes los ven al refrescar.
	var notifier ports.ChangeNotifier = ports.NopNotifier{}
	if cfg.Redis.Enabled() {
		rdb, err := pubsub.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		notifier = pubsub.NewRedisNotifier(rdb)
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	overrideRepo := postgres.NewOverrideRepository(pool)

	permSvc := usecase.NewPermissionService(
		companyRepo, subRepo, overrideRepo,
		permission.Resolver{Policy: policy},
		permMetrics, log.Zerolog(),
	)
	guard := usecase.NewModuleGuard(permSvc, cfg.Permissions.UpgradeBasePath, permMetrics)
	catalogUC := usecase.NewCatalogUseCase(subRepo)
	overrideUC := usecase.NewOverrideUseCase(companyRepo, overrideRepo, notifier, log.Zerolog())

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
		Title:    "Agenda API - permisos",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PermissionUC: permSvc,
		Guard:        guard,
		CatalogUC:    catalogUC,
		OverrideUC:   overrideUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Zerolog(),
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
