// Package bootstrap construye el grafo de dependencias compartido por la API
// y la CLI a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-feeds/internal/application/catalog"
	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/csvfeed"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/fetcher"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/sqlite"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// Stores repositorios del almacén elegido por DB_DRIVER.
type Stores struct {
	Products  repository.ProductRepository
	Inventory repository.InventoryRepository
	Prices    repository.PriceRepository

	close func()
}

// Close libera la conexión al almacén.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores abre PostgreSQL o SQLite y asegura el esquema.
func OpenStores(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacén conectado")
		return &Stores{
			Products:  postgres.NewProductRepository(pool),
			Inventory: postgres.NewInventoryRepository(pool),
			Prices:    postgres.NewPriceRepository(pool),
			close:     pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacén conectado")
		return &Stores{
			Products:  sqlite.NewProductRepository(db),
			Inventory: sqlite.NewInventoryRepository(db),
			Prices:    sqlite.NewPriceRepository(db),
			close:     func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
}

// App componentes listos para usar.
type App struct {
	Stores  *Stores
	Fetcher *fetcher.Fetcher
	Service *importer.Service
	Catalog *catalog.ProductDetailsUseCase
}

// New construye almacén, descargador, orquestador, servicio y catálogo.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	stores, err := OpenStores(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	f, err := fetcher.New(cfg.Fetch, log.Named("fetcher"))
	if err != nil {
		stores.Close()
		return nil, err
	}

	orch := importer.NewOrchestrator(
		f,
		csvfeed.NewReader(log.Named("csvfeed")),
		stores.Products, stores.Inventory, stores.Prices,
		log.Named("importer"),
		cfg.Import.KeepFiles,
	)

	return &App{
		Stores:  stores,
		Fetcher: f,
		Service: importer.NewService(orch, cfg.Import.LockWait, log.Named("import_service")),
		Catalog: catalog.NewProductDetailsUseCase(stores.Products),
	}, nil
}

// Close libera los recursos del almacén.
func (a *App) Close() { a.Stores.Close() }
