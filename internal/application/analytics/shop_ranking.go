package analytics

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
	"github.com/jhoicas/changerank-api/internal/domain/shopgroup"
)

const allShopsLabel = "全店合計"

// ShopRanking arma el ranking de tiendas por año (o por año+mes si req.Month > 0),
// opcionalmente limitado a un departamento y a los grupos seleccionados.
func (uc *ReportUseCase) ShopRanking(ctx context.Context, req dto.ShopRankingRequest) (*dto.ShopRankingResponse, error) {
	dates, err := uc.derived.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("shop ranking: fechas: %w", err)
	}
	if len(dates) == 0 {
		return &dto.ShopRankingResponse{Error: dto.NoDataMessage}, nil
	}
	tree, err := uc.derived.Tree(ctx)
	if err != nil {
		return nil, fmt.Errorf("shop ranking: árbol: %w", err)
	}
	index, err := uc.groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("shop ranking: %w", err)
	}

	depts := tree.ByLevel(entity.LevelDepartment)
	resp := &dto.ShopRankingResponse{
		Month:            req.Month,
		CheckboxShops:    groupDTOs(index.Groups()),
		Departments:      departmentOptions(depts),
		SelectedDeptCode: req.DeptCode,
		SelectedDeptName: allShopsLabel,
		SelectedShops:    []string{},
		Rows:             []dto.ShopRankingRow{},
	}

	var categoryIDs []int64
	if code, err := strconv.Atoi(req.DeptCode); err == nil && req.DeptCode != "" {
		if dept, ok := tree.Find(entity.LevelDepartment, code); ok {
			resp.SelectedDeptName = dept.Name
			if categoryIDs, err = uc.derived.DescendantsOfDepartment(ctx, code); err != nil {
				return nil, fmt.Errorf("shop ranking: descendientes: %w", err)
			}
		}
	}

	buckets := ranking.LatestPerYear(dates, req.Month)
	if len(buckets) == 0 {
		resp.Years = []int{}
		resp.Error = dto.NoDataMessage
		return resp, nil
	}
	years := make([]int, len(buckets))
	for i, b := range buckets {
		years[i] = b.Year
	}
	resp.Years = years

	// ranks[año][nombre de grupo]
	ranks := make(map[int]map[string]int, len(buckets))
	rankedPerYear := make(map[int]int, len(buckets))
	for _, b := range buckets {
		totals, err := uc.reports.ShopTotals(ctx, b.Date, categoryIDs)
		if err != nil {
			return nil, fmt.Errorf("shop ranking: totales %s: %w", b.Date.Format(dateLayout), err)
		}
		sums := make(map[string]decimal.Decimal)
		for _, t := range totals {
			g, ok := index.ByShop(t.ShopID)
			if !ok {
				continue
			}
			sums[g.Name] = sums[g.Name].Add(t.Sales)
		}
		entries := make([]ranking.Entry, 0, len(sums))
		for name, amount := range sums {
			entries = append(entries, ranking.Entry{Key: name, Amount: amount})
		}
		ranks[b.Year] = ranking.Rank(entries)
		rankedPerYear[b.Year] = len(entries)
	}

	resp.SelectedYear = years[len(years)-1]
	if slices.Contains(years, req.Year) {
		resp.SelectedYear = req.Year
	}
	resp.SortYear = ranking.SortYear(resp.SelectedYear, years, rankedPerYear, index.Len())

	groups := index.Groups()
	if sel := index.Select(shopgroup.ParseTokens(req.Shops)); len(sel) > 0 {
		groups = sel
		for _, g := range sel {
			resp.SelectedShops = append(resp.SelectedShops, g.Token)
		}
	}

	type sortable struct {
		row       dto.ShopRankingRow
		effective int
	}
	var rows []sortable
	for _, g := range groups {
		row := dto.ShopRankingRow{Name: g.Name, Token: g.Token, Cells: make([]dto.ShopRankCell, 0, len(buckets))}
		byYear := make(map[int]int, len(buckets))
		hasData := false
		for i, b := range buckets {
			cur := ranks[b.Year][g.Name]
			cell := dto.ShopRankCell{Year: b.Year, Date: b.Date.Format(dateLayout)}
			if cur > 0 {
				hasData = true
				byYear[b.Year] = cur
				cell.Rank = intPtr(cur)
			}
			if i > 0 {
				prev := ranks[buckets[i-1].Year][g.Name]
				m, closedNow := ranking.Compare(prev, cur, i == len(buckets)-1)
				cell.DiffIcon, cell.DiffClass, cell.StatusText = m.Icon, m.Class, m.Label
				row.ClosedNow = row.ClosedNow || closedNow
			}
			row.Cells = append(row.Cells, cell)
		}
		if !hasData {
			continue
		}
		rows = append(rows, sortable{row: row, effective: ranking.EffectiveRank(byYear, resp.SortYear, years)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.row.ClosedNow != b.row.ClosedNow {
			return !a.row.ClosedNow
		}
		if a.effective != b.effective {
			return a.effective < b.effective
		}
		return a.row.Name < b.row.Name
	})
	for _, r := range rows {
		resp.Rows = append(resp.Rows, r.row)
	}
	return resp, nil
}
