package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes.
// Todas excluyen la categoría reservada de clientes (código 9999, nivel 10).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// notReserved filtra la categoría reservada; $1 y $2 son su código y nivel.
const notReserved = `
	sr.category_id NOT IN (SELECT id FROM categories WHERE code = $1 AND level = $2)`

func reservedArgs() []any {
	return []any{entity.CustomerCountCode, entity.CustomerCountLevel}
}

// DistinctDates devuelve las fechas con ventas en orden ascendente. Una fecha que solo
// tiene filas de clientes no cuenta.
func (r *ReportRepo) DistinctDates(ctx context.Context) ([]time.Time, error) {
	query := `
	SELECT DISTINCT sr.date
	FROM sales_records sr
	WHERE ` + notReserved + `
	ORDER BY sr.date`
	rows, err := r.pool.Query(ctx, query, reservedArgs()...)
	if err != nil {
		return nil, fmt.Errorf("report.DistinctDates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("report.DistinctDates scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CategoryTotals suma ventas y margen por categoría en la fecha.
func (r *ReportRepo) CategoryTotals(ctx context.Context, date time.Time, shopIDs []int64) ([]repository.CategoryTotal, error) {
	query := `
	SELECT sr.category_id,
	       SUM(sr.amount_sales)::NUMERIC  AS sales,
	       SUM(sr.amount_profit)::NUMERIC AS profit
	FROM sales_records sr
	WHERE ` + notReserved + `
	  AND sr.date = $3
	  AND ($4::BIGINT[] IS NULL OR sr.shop_id = ANY($4))
	GROUP BY sr.category_id`

	args := append(reservedArgs(), date, nullableIDs(shopIDs))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.CategoryTotals: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryTotal
	for rows.Next() {
		var t repository.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.Sales, &t.Profit); err != nil {
			return nil, fmt.Errorf("report.CategoryTotals scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CategoryTotalsByDate suma ventas y margen por (fecha, categoría).
func (r *ReportRepo) CategoryTotalsByDate(ctx context.Context, shopIDs []int64) ([]repository.DatedCategoryTotal, error) {
	query := `
	SELECT sr.date,
	       sr.category_id,
	       SUM(sr.amount_sales)::NUMERIC  AS sales,
	       SUM(sr.amount_profit)::NUMERIC AS profit
	FROM sales_records sr
	WHERE ` + notReserved + `
	  AND ($3::BIGINT[] IS NULL OR sr.shop_id = ANY($3))
	GROUP BY sr.date, sr.category_id
	ORDER BY sr.date`

	args := append(reservedArgs(), nullableIDs(shopIDs))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.CategoryTotalsByDate: %w", err)
	}
	defer rows.Close()

	var out []repository.DatedCategoryTotal
	for rows.Next() {
		var t repository.DatedCategoryTotal
		if err := rows.Scan(&t.Date, &t.CategoryID, &t.Sales, &t.Profit); err != nil {
			return nil, fmt.Errorf("report.CategoryTotalsByDate scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ShopTotals suma ventas por tienda en la fecha.
func (r *ReportRepo) ShopTotals(ctx context.Context, date time.Time, categoryIDs []int64) ([]repository.ShopTotal, error) {
	query := `
	SELECT sr.shop_id, SUM(sr.amount_sales)::NUMERIC AS sales
	FROM sales_records sr
	WHERE ` + notReserved + `
	  AND sr.date = $3
	  AND ($4::BIGINT[] IS NULL OR sr.category_id = ANY($4))
	GROUP BY sr.shop_id`

	args := append(reservedArgs(), date, nullableIDs(categoryIDs))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.ShopTotals: %w", err)
	}
	defer rows.Close()

	var out []repository.ShopTotal
	for rows.Next() {
		var t repository.ShopTotal
		if err := rows.Scan(&t.ShopID, &t.Sales); err != nil {
			return nil, fmt.Errorf("report.ShopTotals scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ShopCategoryTotals suma ventas por (tienda, categoría) para las tiendas dadas.
func (r *ReportRepo) ShopCategoryTotals(ctx context.Context, date time.Time, shopIDs []int64) ([]repository.ShopCategoryTotal, error) {
	query := `
	SELECT sr.shop_id, sr.category_id, SUM(sr.amount_sales)::NUMERIC AS sales
	FROM sales_records sr
	WHERE ` + notReserved + `
	  AND sr.date = $3
	  AND sr.shop_id = ANY($4)
	GROUP BY sr.shop_id, sr.category_id`

	args := append(reservedArgs(), date, shopIDs)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.ShopCategoryTotals: %w", err)
	}
	defer rows.Close()

	var out []repository.ShopCategoryTotal
	for rows.Next() {
		var t repository.ShopCategoryTotal
		if err := rows.Scan(&t.ShopID, &t.CategoryID, &t.Sales); err != nil {
			return nil, fmt.Errorf("report.ShopCategoryTotals scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
