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

	"github.com/jhoicas/Inventario-epi/internal/application/auth"
	"github.com/jhoicas/Inventario-epi/internal/application/usecase"
	"github.com/jhoicas/Inventario-epi/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Inventario-epi/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-epi/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-epi/internal/interfaces/http"
	"github.com/jhoicas/Inventario-epi/pkg/config"
	"github.com/jhoicas/Inventario-epi/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Caché de reportes: sin REDIS_ADDR se usa la variante noop.
	reportCache, err := cache.NewReportCache(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Cache.Addr).Msg("redis no disponible, reportes sin caché")
		reportCache = cache.NoopReportCache{}
	}
	if closer, ok := reportCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo, usecase.AnalyticsOptions{
		Cache:      reportCache,
		Renderer:   infrapdf.NewRiskReportPDF(cfg.App.Name),
		Config:     usecase.EngineConfigFrom(cfg.Analytics),
		PeriodDays: cfg.Analytics.DefaultPeriodDays,
		Logger:     log.Named("analytics"),
	})

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el PDF de riesgo puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario EPI API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Logger:      log.Named("http"),
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
