package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo escrituras de la tabla de hechos.
type SalesRepo struct {
	db Querier
}

// NewSalesRepository construye el adaptador de escritura de ventas.
func NewSalesRepository(db Querier) *SalesRepo {
	return &SalesRepo{db: db}
}

// Upsert inserta la fila o reemplaza sus cinco medidas.
func (r *SalesRepo) Upsert(ctx context.Context, rec *entity.SalesRecord) error {
	const query = `
		INSERT INTO sales_records
		    (date, shop_id, category_id, amount_sales, amount_purchase, amount_supply, amount_net, amount_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (shop_id, category_id, date) DO UPDATE SET
		    amount_sales    = EXCLUDED.amount_sales,
		    amount_purchase = EXCLUDED.amount_purchase,
		    amount_supply   = EXCLUDED.amount_supply,
		    amount_net      = EXCLUDED.amount_net,
		    amount_profit   = EXCLUDED.amount_profit
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		rec.Date, rec.ShopID, rec.CategoryID,
		rec.Sales, rec.Purchase, rec.Supply, rec.Net, rec.Profit,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("upsert sales record: %w", err)
	}
	return nil
}

// PruneMonth borra las filas de la tienda del mismo mes calendario anteriores a date.
func (r *SalesRepo) PruneMonth(ctx context.Context, shopID int64, date time.Time) (int64, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM sales_records WHERE shop_id = $1 AND date >= $2 AND date < $3`,
		shopID, monthStart, date,
	)
	if err != nil {
		return 0, fmt.Errorf("prune sales records: %w", err)
	}
	return cmd.RowsAffected(), nil
}
