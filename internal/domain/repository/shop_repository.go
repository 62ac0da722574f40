package repository

import (
	"context"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
type ShopRepository interface {
	// GetOrCreate devuelve la tienda con ese nombre, creándola si no existe.
	GetOrCreate(ctx context.Context, name string) (*entity.Shop, error)
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Shop, error)
	List(ctx context.Context) ([]entity.Shop, error)
	// Rename devuelve domain.ErrDuplicate si el nombre ya está tomado y domain.ErrNotFound si no existe.
	Rename(ctx context.Context, id int64, name string) error
}
