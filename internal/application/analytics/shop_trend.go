package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
	"github.com/jhoicas/changerank-api/internal/domain/shopgroup"
)

// ShopTrend devuelve la composición por departamento de un grupo de tiendas en cada fecha.
// Sin token usa el primer grupo cuyo nombre contiene la tienda por defecto.
func (uc *ReportUseCase) ShopTrend(ctx context.Context, req dto.ShopTrendRequest) (*dto.ShopTrendResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("shop trend: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.ShopTrendResponse{Error: dto.NoDataMessage}, nil
	}
	index, err := uc.groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("shop trend: %w", err)
	}

	var (
		group shopgroup.Group
		ok    bool
	)
	if req.Shop != "" {
		group, ok = index.ByToken(req.Shop)
	} else if uc.settings.FocusShop != "" {
		group, ok = index.FirstContaining(uc.settings.FocusShop)
	}
	if !ok {
		return nil, fmt.Errorf("shop trend: tienda %q: %w", req.Shop, domain.ErrNotFound)
	}

	labels, datasets, err := uc.shareSeries(ctx, group.IDs, "2006")
	if err != nil {
		return nil, fmt.Errorf("shop trend: %w", err)
	}
	return &dto.ShopTrendResponse{
		ShopName: group.Name,
		Token:    group.Token,
		Labels:   labels,
		Datasets: datasets,
	}, nil
}
