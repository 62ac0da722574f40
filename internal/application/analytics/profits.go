package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
)

// Profits arma el ranking de margen por departamento y año, con la brecha
// respecto de la posición por ventas.
func (uc *ReportUseCase) Profits(ctx context.Context) (*dto.ProfitRankingResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("profits: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.ProfitRankingResponse{Error: dto.NoDataMessage}, nil
	}
	depts, sums, err := uc.departmentAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("profits: %w", err)
	}

	years := ranking.Years(dates)
	resp := &dto.ProfitRankingResponse{Years: years}

	cells := make(map[int]map[int64]dto.ProfitCell, len(years))
	for _, b := range ranking.LatestPerYear(dates, 0) {
		perDept, err := sums(ctx, b.Date)
		if err != nil {
			return nil, fmt.Errorf("profits: totales %s: %w", b.Date.Format(dateLayout), err)
		}
		var bySales, byMargin []ranking.Entry
		for _, d := range depts {
			a, ok := perDept[d.ID]
			if !ok {
				continue
			}
			k := codeKey(d.Code)
			bySales = append(bySales, ranking.Entry{Key: k, Amount: a.sales})
			byMargin = append(byMargin, ranking.Entry{Key: k, Amount: ranking.Margin(a.profit, a.sales)})
		}
		salesRanks := ranking.Rank(bySales)
		marginRanks := ranking.Rank(byMargin)

		info := make(map[int64]dto.ProfitCell)
		for _, d := range depts {
			a, ok := perDept[d.ID]
			if !ok {
				continue
			}
			k := codeKey(d.Code)
			sr, pr := salesRanks[k], marginRanks[k]
			gap, class, icon := ranking.Gap(sr, pr)
			info[d.ID] = dto.ProfitCell{
				Year:      b.Year,
				Rank:      intPtr(pr),
				SalesRank: intPtr(sr),
				Gap:       gap,
				GapAbs:    abs(gap),
				GapClass:  class,
				GapIcon:   icon,
				Margin:    floatPtr(ranking.Margin(a.profit, a.sales).Round(1).InexactFloat64()),
			}
		}
		cells[b.Year] = info
	}

	latest := years[len(years)-1]
	for _, d := range depts {
		row := dto.ProfitRow{Code: d.Code, Name: d.Name, Cells: make([]dto.ProfitCell, 0, len(years))}
		for _, y := range years {
			c, ok := cells[y][d.ID]
			if !ok {
				c = dto.ProfitCell{Year: y}
			}
			row.Cells = append(row.Cells, c)
		}
		resp.Rows = append(resp.Rows, row)
	}
	latestRank := make(map[int]int, len(depts))
	for _, d := range depts {
		if c, ok := cells[latest][d.ID]; ok {
			latestRank[d.Code] = *c.Rank
		}
	}
	rankOf := func(code int) int {
		if r, ok := latestRank[code]; ok {
			return r
		}
		return ranking.NoRank
	}
	sort.SliceStable(resp.Rows, func(i, j int) bool {
		return rankOf(resp.Rows[i].Code) < rankOf(resp.Rows[j].Code)
	})
	return resp, nil
}

// ProfitMap devuelve un punto (ventas, margen) por departamento para una fecha.
// Una fecha vacía o ilegible usa la más reciente.
func (uc *ReportUseCase) ProfitMap(ctx context.Context, req dto.ProfitMapRequest) (*dto.ProfitMapResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("profit map: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.ProfitMapResponse{Error: dto.NoDataMessage}, nil
	}

	resp := &dto.ProfitMapResponse{Points: []dto.ScatterPoint{}}
	for i := len(dates) - 1; i >= 0; i-- {
		resp.AvailableDates = append(resp.AvailableDates, dates[i].Format(dateLayout))
	}
	target := dates[len(dates)-1]
	if t, err := time.Parse(dateLayout, req.Date); err == nil {
		target = t
	}
	resp.Date = target.Format(dateLayout)

	depts, sums, err := uc.departmentAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("profit map: %w", err)
	}
	perDept, err := sums(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("profit map: totales %s: %w", resp.Date, err)
	}
	for _, d := range depts {
		a, ok := perDept[d.ID]
		if !ok {
			continue
		}
		resp.Points = append(resp.Points, dto.ScatterPoint{
			X:      a.sales.IntPart(),
			Y:      ranking.Margin(a.profit, a.sales).Round(2).InexactFloat64(),
			Label:  d.Name,
			Profit: a.profit.IntPart(),
			Color:  color(chartColors, len(resp.Points)),
		})
	}
	return resp, nil
}

// departmentAmounts devuelve los departamentos visibles y una función que suma
// ventas y margen por departamento en una fecha.
func (uc *ReportUseCase) departmentAmounts(ctx context.Context) ([]entity.Category, func(context.Context, time.Time) (map[int64]*amounts, error), error) {
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, nil, err
	}
	anc, err := uc.derived.AncestorTable(ctx)
	if err != nil {
		return nil, nil, err
	}
	toDept := departmentOf(anc, entity.LevelDepartment)
	sums := func(ctx context.Context, date time.Time) (map[int64]*amounts, error) {
		totals, err := uc.reports.CategoryTotals(ctx, date, nil)
		if err != nil {
			return nil, err
		}
		return rollUp(totals, toDept), nil
	}
	return tree.ByLevel(entity.LevelDepartment), sums, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
