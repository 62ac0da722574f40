package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

// Trends devuelve la participación de cada departamento en cada fecha cargada.
func (uc *ReportUseCase) Trends(ctx context.Context) (*dto.TrendResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("trends: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.TrendResponse{Error: dto.NoDataMessage}, nil
	}
	labels, datasets, err := uc.shareSeries(ctx, nil, "2006/01/02")
	if err != nil {
		return nil, fmt.Errorf("trends: %w", err)
	}
	noFill := false
	for i := range datasets {
		datasets[i].BorderColor = datasets[i].BackgroundColor
		datasets[i].Fill = &noFill
		datasets[i].Tension = 0.1
	}
	return &dto.TrendResponse{Labels: labels, Datasets: datasets}, nil
}

// shareSeries arma una serie por departamento con su participación en cada fecha,
// limitada a shopIDs cuando no está vacío. Una fecha sin ventas queda en 0.
func (uc *ReportUseCase) shareSeries(ctx context.Context, shopIDs []int64, labelLayout string) ([]string, []dto.ChartDataset, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, nil, err
	}
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, nil, err
	}
	anc, err := uc.derived.AncestorTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, err := uc.reports.CategoryTotalsByDate(ctx, shopIDs)
	if err != nil {
		return nil, nil, err
	}

	depts := tree.ByLevel(entity.LevelDepartment)
	toDept := departmentOf(anc, entity.LevelDepartment)
	idx := dateIndex(dates)

	perDate := make([]map[int64]decimal.Decimal, len(dates))
	for i := range perDate {
		perDate[i] = make(map[int64]decimal.Decimal)
	}
	for _, r := range rows {
		i, ok := idx[r.Date.Format(dateLayout)]
		if !ok {
			continue
		}
		addTo(perDate[i], toDept, r.CategoryTotal)
	}

	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = d.Format(labelLayout)
	}
	datasets := make([]dto.ChartDataset, len(depts))
	for j, d := range depts {
		datasets[j] = dto.ChartDataset{
			Label:           d.Name,
			Data:            make([]float64, len(dates)),
			BackgroundColor: color(chartColors, j),
		}
	}
	for i := range dates {
		for j, share := range sharesByDepartment(depts, perDate[i]) {
			datasets[j].Data[i] = share
		}
	}
	return labels, datasets, nil
}

func addTo(sums map[int64]decimal.Decimal, toDept map[int64]int64, t repository.CategoryTotal) {
	if dept, ok := toDept[t.CategoryID]; ok {
		sums[dept] = sums[dept].Add(t.Sales)
	}
}
