// Package app arma las dependencias compartidas por el servidor HTTP y el CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/changerank-api/internal/application/analytics"
	"github.com/jhoicas/changerank-api/internal/application/derived"
	"github.com/jhoicas/changerank-api/internal/application/importer"
	"github.com/jhoicas/changerank-api/internal/application/usecase"
	"github.com/jhoicas/changerank-api/internal/domain/shopgroup"
	"github.com/jhoicas/changerank-api/internal/infrastructure/cache"
	"github.com/jhoicas/changerank-api/internal/infrastructure/metrics"
	"github.com/jhoicas/changerank-api/internal/infrastructure/postgres"
	"github.com/jhoicas/changerank-api/pkg/config"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

// ClosableStore es un derived.Store que libera recursos al cerrar.
type ClosableStore interface {
	derived.Store
	Close() error
}

// App agrupa pool, caché, métricas y casos de uso ya cableados.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Pool    *pgxpool.Pool
	Metrics *metrics.Metrics

	Derived      *derived.Service
	MasterImport *importer.MasterUseCase
	SalesImport  *importer.SalesUseCase
	Reports      *analytics.ReportUseCase
	Shops        *usecase.ShopUseCase
	Categories   *usecase.CategoryUseCase

	store ClosableStore
}

// New conecta PostgreSQL y el backend de caché y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	store, err := NewCacheStore(cfg.Cache)
	if err != nil {
		pool.Close()
		return nil, err
	}

	m := metrics.New()

	shopRepo := postgres.NewShopRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	derivedSvc := derived.NewService(store, reportRepo, categoryRepo,
		derived.WithTTL(cfg.Cache.DatesTTL, cfg.Cache.TreeTTL),
		derived.WithLogger(log.Component("derived")),
		derived.WithObserver(m),
	)

	importOpts := []importer.Option{
		importer.WithLogger(log.Component("importer")),
		importer.WithObserver(m),
	}

	a := &App{
		Config:       cfg,
		Log:          log,
		Pool:         pool,
		Metrics:      m,
		Derived:      derivedSvc,
		MasterImport: importer.NewMasterUseCase(txRunner, derivedSvc, importOpts...),
		SalesImport:  importer.NewSalesUseCase(txRunner, derivedSvc, importOpts...),
		Reports: analytics.NewReportUseCase(reportRepo, shopRepo, derivedSvc, analytics.Settings{
			Aliases:   shopgroup.Aliases(cfg.Reports.ShopAliases),
			Excluded:  cfg.Reports.ExcludedShops,
			FocusShop: cfg.Reports.FocusShop,
		}, log),
		Shops:      usecase.NewShopUseCase(shopRepo, derivedSvc, log.Component("shops")),
		Categories: usecase.NewCategoryUseCase(categoryRepo),
		store:      store,
	}
	return a, nil
}

// NewCacheStore abre el backend configurado: memoria local o Redis compartido.
func NewCacheStore(cfg config.CacheConfig) (ClosableStore, error) {
	if !cfg.UsesRedis() {
		return cache.NewMemoryStore(), nil
	}
	store, err := cache.NewRedisStore(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("caché redis: %w", err)
	}
	return store, nil
}

// Close libera la caché y el pool.
func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		a.Log.Warn().Err(err).Msg("cerrar caché")
	}
	a.Pool.Close()
}
