package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
)

// Meta devuelve las opciones de los selectores. No falla por falta de datos.
func (uc *ReportUseCase) Meta(ctx context.Context) (*dto.MetaResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("meta: fechas: %w", err)
	}
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("meta: árbol: %w", err)
	}
	index, err := uc.groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("meta: %w", err)
	}

	resp := &dto.MetaResponse{
		Years:       ranking.Years(dates),
		Months:      ranking.MonthsByYear(dates),
		Shops:       groupDTOs(index.Groups()),
		Departments: departmentOptions(tree.ByLevel(entity.LevelDepartment)),
		Generation:  uc.derived.Generation(ctx),
	}
	if resp.Years == nil {
		resp.Years = []int{}
	}
	if len(dates) > 0 {
		resp.LatestDate = dates[len(dates)-1].Format(dateLayout)
	}
	return resp, nil
}
