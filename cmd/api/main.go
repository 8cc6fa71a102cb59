// @title       Warehouse Feeds API
// @version     1.0
// @description Importación de feeds CSV de productos, inventario y precios.
// @BasePath    /
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

	_ "github.com/jhoicas/warehouse-feeds/docs"
	"github.com/jhoicas/warehouse-feeds/internal/bootstrap"
	httpRouter "github.com/jhoicas/warehouse-feeds/internal/interfaces/http"
	"github.com/jhoicas/warehouse-feeds/internal/task"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer app.Close()

	// Las importaciones pueden tardar minutos; el límite lo pone FETCH_TIMEOUT.
	srv := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Fetch.Timeout*3 + time.Minute,
		IdleTimeout:  time.Second * 60,
	})
	srv.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		srv.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Warehouse Feeds API",
		}))
	}

	httpRouter.Router(srv, httpRouter.RouterDeps{
		Importer: app.Service,
		Files:    app.Fetcher,
		Products: app.Catalog,
	})

	var scheduled *task.ImportTask
	if cfg.Schedule.Enabled() {
		scheduled = task.NewImportTask(app.Service, cfg.Schedule, cfg.Fetch.Timeout*3+time.Minute, log)
		if err := scheduled.Start(); err != nil {
			log.Fatal().Err(err).Msg("importación programada")
		}
	}

	go func() {
		if err := srv.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if scheduled != nil {
		scheduled.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
