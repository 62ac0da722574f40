package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal suma de ventas y margen por categoría (nivel 180 en la práctica).
type CategoryTotal struct {
	CategoryID int64
	Sales      decimal.Decimal
	Profit     decimal.Decimal
}

// DatedCategoryTotal es CategoryTotal para una fecha concreta.
type DatedCategoryTotal struct {
	Date time.Time
	CategoryTotal
}

// ShopCategoryTotal ventas de una tienda en una categoría.
type ShopCategoryTotal struct {
	ShopID     int64
	CategoryID int64
	Sales      decimal.Decimal
}

// ShopTotal ventas totales de una tienda.
type ShopTotal struct {
	ShopID int64
	Sales  decimal.Decimal
}

// ReportRepository define las consultas de lectura de los reportes.
// Las implementaciones son read-only y excluyen siempre la categoría reservada de clientes.
type ReportRepository interface {
	// DistinctDates devuelve las fechas con ventas (sin contar la categoría de clientes) en orden ascendente.
	DistinctDates(ctx context.Context) ([]time.Time, error)

	// CategoryTotals agrupa por categoría en la fecha; shopIDs vacío significa todas las tiendas.
	CategoryTotals(ctx context.Context, date time.Time, shopIDs []int64) ([]CategoryTotal, error)

	// CategoryTotalsByDate agrupa por (fecha, categoría) en todas las fechas.
	CategoryTotalsByDate(ctx context.Context, shopIDs []int64) ([]DatedCategoryTotal, error)

	// ShopTotals agrupa por tienda en la fecha; categoryIDs vacío significa todas las categorías.
	ShopTotals(ctx context.Context, date time.Time, categoryIDs []int64) ([]ShopTotal, error)

	// ShopCategoryTotals agrupa por (tienda, categoría) para las tiendas dadas.
	ShopCategoryTotals(ctx context.Context, date time.Time, shopIDs []int64) ([]ShopCategoryTotal, error)
}
