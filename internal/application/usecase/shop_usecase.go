package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

// Invalidator invalida las estructuras derivadas tras una escritura.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// ShopUseCase consulta y renombra tiendas.
type ShopUseCase struct {
	repo  repository.ShopRepository
	cache Invalidator
	log   *logger.Logger
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(repo repository.ShopRepository, cache Invalidator, log *logger.Logger) *ShopUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ShopUseCase{repo: repo, cache: cache, log: log.Component("shops")}
}

// List lista todas las tiendas por nombre.
func (uc *ShopUseCase) List(ctx context.Context) ([]dto.ShopResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShopResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toShopResponse(s))
	}
	return items, nil
}

// GetByID obtiene una tienda; nil, nil si no existe.
func (uc *ShopUseCase) GetByID(ctx context.Context, id int64) (*dto.ShopResponse, error) {
	shop, err := uc.repo.GetByID(ctx, id)
	if err != nil || shop == nil {
		return nil, err
	}
	out := toShopResponse(*shop)
	return &out, nil
}

// Rename cambia el nombre de la tienda e invalida la caché de reportes.
func (uc *ShopUseCase) Rename(ctx context.Context, id int64, in dto.RenameShopRequest) (*dto.ShopResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	if err := uc.repo.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Int64("shop_id", id).Msg("no se pudo invalidar la caché")
	}
	uc.log.Info().Int64("shop_id", id).Str("name", name).Msg("tienda renombrada")
	out := dto.ShopResponse{ID: id, Name: name}
	return &out, nil
}

func toShopResponse(s entity.Shop) dto.ShopResponse {
	return dto.ShopResponse{ID: s.ID, Name: s.Name}
}
