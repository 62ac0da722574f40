package repository

import (
	"context"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// SalesRepository define las escrituras sobre la tabla de hechos.
type SalesRepository interface {
	// Upsert inserta o reemplaza las cinco medidas de (tienda, categoría, fecha).
	Upsert(ctx context.Context, record *entity.SalesRecord) error
	// PruneMonth borra las filas de la tienda del mismo año y mes con fecha anterior a date.
	PruneMonth(ctx context.Context, shopID int64, date time.Time) (int64, error)
}
