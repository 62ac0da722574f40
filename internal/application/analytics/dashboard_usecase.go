package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
)

const defaultDashboardTitle = "全社（10部門）"

// Departments arma el ranking de departamentos con drill-down.
//
// Sin parent_id (o con un id desconocido) muestra el nivel 10. Con parent_id lista sus hijos;
// una categoría sin hijos (nivel 180) se muestra sola.
func (uc *ReportUseCase) Departments(ctx context.Context, req dto.DepartmentRankingRequest) (*dto.DepartmentRankingResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.DepartmentRankingResponse{Error: dto.NoDataMessage}, nil
	}
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: árbol: %w", err)
	}
	anc, err := uc.derived.AncestorTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: ancestros: %w", err)
	}

	resp := &dto.DepartmentRankingResponse{
		Years:       ranking.Years(dates),
		Title:       defaultDashboardTitle,
		Breadcrumbs: []dto.Breadcrumb{},
	}

	var targets []entity.Category
	level := entity.LevelDepartment
	if parent, ok := tree.Get(req.ParentID); ok && !parent.IsReserved() {
		for _, p := range tree.Path(parent.ID) {
			resp.Breadcrumbs = append(resp.Breadcrumbs, dto.Breadcrumb{ID: p.ID, Name: p.Name, Level: p.Level})
		}
		resp.Title = parent.Name
		for _, c := range tree.Children(parent.ID) {
			if !c.IsReserved() {
				targets = append(targets, c)
			}
		}
		level = parent.Level
		if len(targets) == 0 {
			targets = []entity.Category{parent}
		} else {
			level = targets[0].Level
		}
	}
	if len(targets) == 0 {
		targets = tree.ByLevel(entity.LevelDepartment)
	}

	target := departmentOf(anc, level)
	wanted := make(map[int64]bool, len(targets))
	for _, t := range targets {
		wanted[t.ID] = true
	}

	// posición y participación por año, por id de categoría
	type cell struct {
		rank  int
		share float64
	}
	perYear := make(map[int]map[int64]cell)
	for _, b := range ranking.LatestPerYear(dates, 0) {
		totals, err := uc.reports.CategoryTotals(ctx, b.Date, nil)
		if err != nil {
			return nil, fmt.Errorf("dashboard: totales %s: %w", b.Date.Format(dateLayout), err)
		}
		sums := rollUp(totals, target)

		var entries []ranking.Entry
		byKey := make(map[string]int64)
		for id, a := range sums {
			if !wanted[id] {
				continue
			}
			c, _ := tree.Get(id)
			k := codeKey(c.Code)
			byKey[k] = id
			entries = append(entries, ranking.Entry{Key: k, Amount: a.sales})
		}
		total := ranking.Total(entries)
		info := make(map[int64]cell, len(entries))
		for k, r := range ranking.Rank(entries) {
			id := byKey[k]
			info[id] = cell{rank: r, share: ranking.Share(sums[id].sales, total).InexactFloat64()}
		}
		perYear[b.Year] = info
	}

	latest := resp.Years[len(resp.Years)-1]
	for _, t := range targets {
		row := dto.DepartmentRow{
			ID:          t.ID,
			Code:        t.Code,
			Name:        t.Name,
			Level:       t.Level,
			IsClickable: t.Level < entity.LevelSubclass,
			Cells:       make([]dto.RankShareCell, 0, len(resp.Years)),
		}
		for _, y := range resp.Years {
			c := dto.RankShareCell{Year: y}
			if info, ok := perYear[y][t.ID]; ok {
				c.Rank = intPtr(info.rank)
				c.Share = floatPtr(info.share)
			}
			row.Cells = append(row.Cells, c)
		}
		resp.Rows = append(resp.Rows, row)
	}

	rankOf := func(id int64) int {
		if info, ok := perYear[latest][id]; ok {
			return info.rank
		}
		return ranking.NoRank
	}
	sort.SliceStable(resp.Rows, func(i, j int) bool {
		return rankOf(resp.Rows[i].ID) < rankOf(resp.Rows[j].ID)
	})
	return resp, nil
}
