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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, code, name, level, parent_id`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create persiste una nueva categoría y completa su ID.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const query = `
		INSERT INTO categories (code, name, level, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRow(ctx, query, c.Code, c.Name, c.Level, c.ParentID).Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("categoría %d/%d: %w", c.Level, c.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update actualiza nombre y padre.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.db.Exec(ctx, `UPDATE categories SET name = $2, parent_id = $3 WHERE id = $1`, c.ID, c.Name, c.ParentID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByCodeLevel obtiene una categoría por su clave natural.
func (r *CategoryRepo) GetByCodeLevel(ctx context.Context, code, level int) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE code = $1 AND level = $2`, code, level)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ListByLevel lista las categorías de un nivel ordenadas por código.
func (r *CategoryRepo) ListByLevel(ctx context.Context, level int) ([]entity.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE level = $1 ORDER BY code, id`, level)
}

// ListAll lista todo el maestro.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]entity.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY level, code, id`)
}

func (r *CategoryRepo) list(ctx context.Context, query string, args ...any) ([]entity.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories scan: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Level, &c.ParentID); err != nil {
		return nil, err
	}
	return &c, nil
}
