package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/changerank-api/internal/domain"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
type ShopRepo struct {
	db Querier
}

// NewShopRepository construye el adaptador de persistencia para tiendas.
func NewShopRepository(db Querier) *ShopRepo {
	return &ShopRepo{db: db}
}

// GetOrCreate inserta la tienda si no existe y devuelve su fila.
func (r *ShopRepo) GetOrCreate(ctx context.Context, name string) (*entity.Shop, error) {
	const query = `
		INSERT INTO shops (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`
	var s entity.Shop
	if err := r.db.QueryRow(ctx, query, name).Scan(&s.ID, &s.Name); err != nil {
		return nil, fmt.Errorf("get or create shop: %w", err)
	}
	return &s, nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(ctx context.Context, id int64) (*entity.Shop, error) {
	var s entity.Shop
	err := r.db.QueryRow(ctx, `SELECT id, name FROM shops WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// List devuelve todas las tiendas ordenadas por nombre.
func (r *ShopRepo) List(ctx context.Context) ([]entity.Shop, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM shops ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var out []entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("list shops scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Rename cambia el nombre de la tienda.
func (r *ShopRepo) Rename(ctx context.Context, id int64, name string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE shops SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename shop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
