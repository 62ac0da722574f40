package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/catalog"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// Derived expone las estructuras cacheadas que usan los reportes.
type Derived interface {
	Dates(ctx context.Context) ([]time.Time, error)
	Tree(ctx context.Context) (*catalog.Tree, error)
	AncestorTable(ctx context.Context) (map[int64]catalog.Ancestors, error)
	DescendantsOfDepartment(ctx context.Context, code int) ([]int64, error)
	Generation(ctx context.Context) int64
}

// ShopLister lista las tiendas registradas.
type ShopLister interface {
	List(ctx context.Context) ([]entity.Shop, error)
}
