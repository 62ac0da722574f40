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

	"github.com/jhoicas/changerank-api/internal/app"
	infrapdf "github.com/jhoicas/changerank-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/changerank-api/internal/interfaces/http"
	"github.com/jhoicas/changerank-api/pkg/config"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

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
		Str("cache", cfg.Cache.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer a.Close()

	srv := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	srv.Use(recover.New())
	srv.Use(log.RequestLogger())
	srv.Use(a.Metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		srv.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "ChangeRank API",
		}))
	}

	srv.Get("/health", httpRouter.Health(cfg.App.Name, a.Pool))
	srv.Get("/metrics", a.Metrics.Handler())

	httpRouter.Router(srv, httpRouter.RouterDeps{
		MasterImport: a.MasterImport,
		SalesImport:  a.SalesImport,
		Reports:      a.Reports,
		PDF:          infrapdf.NewMarotoPDFGenerator(cfg.Reports.PDFFontFile),
		Shops:        a.Shops,
		Categories:   a.Categories,
		Generation:   a.Derived,
		PageTTL:      cfg.Cache.PageTTL,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := srv.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
