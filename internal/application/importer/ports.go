package importer

import (
	"context"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		shops repository.ShopRepository,
		categories repository.CategoryRepository,
		sales repository.SalesRepository,
	) error) error
}

// Invalidator invalida las estructuras derivadas tras una escritura.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Observer recibe el resultado de cada importación (métricas).
type Observer interface {
	ObserveImport(kind string, rows int, err error, elapsed time.Duration)
}

// Tipos de importación.
const (
	KindMaster = "master"
	KindSales  = "sales"
)

type nopObserver struct{}

func (nopObserver) ObserveImport(string, int, error, time.Duration) {}
