package repository

import (
	"context"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	// GetByID y GetByCodeLevel devuelven nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByCodeLevel(ctx context.Context, code, level int) (*entity.Category, error)
	ListByLevel(ctx context.Context, level int) ([]entity.Category, error)
	ListAll(ctx context.Context) ([]entity.Category, error)
}
