package analytics

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
	"github.com/jhoicas/changerank-api/internal/domain/shopgroup"
)

// Comparison compara la composición por departamento de una tienda objetivo con otras,
// en la última fecha del año elegido. Los grupos sin ventas ese día no generan serie.
func (uc *ReportUseCase) Comparison(ctx context.Context, req dto.ComparisonRequest) (*dto.ComparisonResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("comparison: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.ComparisonResponse{Error: dto.NoDataMessage}, nil
	}
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("comparison: árbol: %w", err)
	}
	anc, err := uc.derived.AncestorTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("comparison: ancestros: %w", err)
	}
	index, err := uc.groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("comparison: %w", err)
	}

	years := ranking.Years(dates)
	slices.Reverse(years)
	depts := tree.ByLevel(entity.LevelDepartment)

	resp := &dto.ComparisonResponse{
		Years:           years,
		SelectedYear:    years[0],
		Shops:           groupDTOs(index.Groups()),
		ComparisonShops: []string{},
		Labels:          make([]string, len(depts)),
		Datasets:        []dto.ChartDataset{},
	}
	if req.Year > 0 {
		resp.SelectedYear = req.Year
	}
	for i, d := range depts {
		resp.Labels[i] = d.Name
	}

	target, hasTarget := index.ByToken(req.TargetShop)
	if hasTarget {
		resp.TargetShop = target.Token
	}
	var others []shopgroup.Group
	for _, tok := range req.ComparisonShops {
		g, ok := index.ByToken(tok)
		if !ok || (hasTarget && g.Token == target.Token) || slices.ContainsFunc(others, func(o shopgroup.Group) bool { return o.Token == g.Token }) {
			continue
		}
		others = append(others, g)
		resp.ComparisonShops = append(resp.ComparisonShops, g.Token)
	}
	if !hasTarget && len(others) == 0 {
		return resp, nil
	}

	buckets := ranking.LatestPerYear(dates, 0)
	i := slices.IndexFunc(buckets, func(b ranking.Bucket) bool { return b.Year == resp.SelectedYear })
	if i < 0 {
		return resp, nil
	}
	bucket := buckets[i]
	resp.Date = bucket.Date.Format(dateLayout)

	var ids []int64
	if hasTarget {
		ids = append(ids, target.IDs...)
	}
	for _, g := range others {
		ids = append(ids, g.IDs...)
	}
	totals, err := uc.reports.ShopCategoryTotals(ctx, bucket.Date, ids)
	if err != nil {
		return nil, fmt.Errorf("comparison: totales %s: %w", resp.Date, err)
	}

	toDept := departmentOf(anc, entity.LevelDepartment)
	perGroup := make(map[string]map[int64]decimal.Decimal)
	for _, t := range totals {
		g, ok := index.ByShop(t.ShopID)
		if !ok {
			continue
		}
		sums := perGroup[g.Token]
		if sums == nil {
			sums = make(map[int64]decimal.Decimal)
			perGroup[g.Token] = sums
		}
		if dept, ok := toDept[t.CategoryID]; ok {
			sums[dept] = sums[dept].Add(t.Sales)
		}
	}

	if sums, ok := perGroup[target.Token]; hasTarget && ok {
		resp.Datasets = append(resp.Datasets, dto.ChartDataset{
			Label:           target.Name,
			Data:            sharesByDepartment(depts, sums),
			BackgroundColor: highlightBackground,
			BorderColor:     highlightBorder,
			BorderWidth:     1,
		})
	}
	n := 0
	for _, g := range others {
		sums, ok := perGroup[g.Token]
		if !ok {
			continue
		}
		c := color(comparisonColors, n)
		resp.Datasets = append(resp.Datasets, dto.ChartDataset{
			Label:           g.Name,
			Data:            sharesByDepartment(depts, sums),
			BackgroundColor: c,
			BorderColor:     c,
			BorderWidth:     1,
		})
		n++
	}
	return resp, nil
}
