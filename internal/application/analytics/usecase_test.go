package analytics

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
)

func ranks[T any](cells []T, get func(T) *int) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		if r := get(c); r != nil {
			out[i] = *r
		}
	}
	return out
}

func TestReports_SinDatos(t *testing.T) {
	uc := newEmptyUseCase()
	ctx := context.Background()

	d, err := uc.Departments(ctx, dto.DepartmentRankingRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, d.Error)

	tr, err := uc.Trends(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, tr.Error)

	sr, err := uc.ShopRanking(ctx, dto.ShopRankingRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, sr.Error)

	pr, err := uc.Profits(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, pr.Error)

	pm, err := uc.ProfitMap(ctx, dto.ProfitMapRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, pm.Error)

	st, err := uc.ShopTrend(ctx, dto.ShopTrendRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, st.Error)

	cmp, err := uc.Comparison(ctx, dto.ComparisonRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, cmp.Error)

	meta, err := uc.Meta(ctx)
	require.NoError(t, err)
	assert.Empty(t, meta.Years)
	assert.Empty(t, meta.LatestDate)
	assert.Len(t, meta.Departments, 2)
}

func TestDepartments_VistaGeneral(t *testing.T) {
	resp, err := newFixtureUseCase().Departments(context.Background(), dto.DepartmentRankingRequest{})
	require.NoError(t, err)

	assert.Equal(t, []int{2023, 2024}, resp.Years)
	assert.Equal(t, "全社（10部門）", resp.Title)
	assert.Empty(t, resp.Breadcrumbs)
	require.Len(t, resp.Rows, 2)

	first := resp.Rows[0]
	assert.Equal(t, "文具", first.Name)
	assert.True(t, first.IsClickable)
	assert.Equal(t, []int{1, 1}, ranks(first.Cells, func(c dto.RankShareCell) *int { return c.Rank }))
	assert.Equal(t, 63.2, *first.Cells[0].Share)
	assert.Equal(t, 66.7, *first.Cells[1].Share)
	assert.Equal(t, 33.3, *resp.Rows[1].Cells[1].Share)
}

func TestDepartments_DrillDown(t *testing.T) {
	uc := newFixtureUseCase()

	t.Run("hijos del departamento", func(t *testing.T) {
		resp, err := uc.Departments(context.Background(), dto.DepartmentRankingRequest{ParentID: 1})
		require.NoError(t, err)
		assert.Equal(t, "文具", resp.Title)
		assert.Equal(t, []dto.Breadcrumb{{ID: 1, Name: "文具", Level: 10}}, resp.Breadcrumbs)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, 101, resp.Rows[0].Code)
		assert.Equal(t, 100.0, *resp.Rows[0].Cells[1].Share)
	})

	t.Run("subclase se muestra sola", func(t *testing.T) {
		resp, err := uc.Departments(context.Background(), dto.DepartmentRankingRequest{ParentID: 1111})
		require.NoError(t, err)
		assert.Len(t, resp.Breadcrumbs, 4)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, int64(1111), resp.Rows[0].ID)
		assert.False(t, resp.Rows[0].IsClickable)
	})

	t.Run("id desconocido vuelve al nivel 10", func(t *testing.T) {
		resp, err := uc.Departments(context.Background(), dto.DepartmentRankingRequest{ParentID: 12345})
		require.NoError(t, err)
		assert.Equal(t, "全社（10部門）", resp.Title)
		assert.Len(t, resp.Rows, 2)
	})
}

func TestTrends_ParticipacionPorFecha(t *testing.T) {
	resp, err := newFixtureUseCase().Trends(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2023/03/31", "2024/02/29", "2024/03/31"}, resp.Labels)
	require.Len(t, resp.Datasets, 2)
	assert.Equal(t, "文具", resp.Datasets[0].Label)
	assert.Equal(t, []float64{63.2, 100, 66.7}, resp.Datasets[0].Data)
	assert.Equal(t, []float64{36.8, 0, 33.3}, resp.Datasets[1].Data)
	assert.Equal(t, "#FF6384", resp.Datasets[0].BorderColor)
	require.NotNil(t, resp.Datasets[0].Fill)
	assert.False(t, *resp.Datasets[0].Fill)
	assert.Equal(t, 0.1, resp.Datasets[0].Tension)
}

func TestShopRanking_PorAño(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.SelectedYear)
	assert.Equal(t, 2024, resp.SortYear)
	assert.Equal(t, "全店合計", resp.SelectedDeptName)
	assert.Len(t, resp.CheckboxShops, 3, "IMPORT_TEST_STORE queda fuera y 加治 se une a 加治木")

	require.Len(t, resp.Rows, 3)
	names := []string{resp.Rows[0].Name, resp.Rows[1].Name, resp.Rows[2].Name}
	assert.Equal(t, []string{"日向", "加治木", "宮崎"}, names)

	hyuga := resp.Rows[0]
	assert.Equal(t, []int{2, 1}, ranks(hyuga.Cells, func(c dto.ShopRankCell) *int { return c.Rank }))
	assert.Equal(t, "↑1", hyuga.Cells[1].DiffIcon)
	assert.Equal(t, "rank-up", hyuga.Cells[1].DiffClass)

	assert.Equal(t, "↓1", resp.Rows[1].Cells[1].DiffIcon)

	closed := resp.Rows[2]
	assert.True(t, closed.ClosedNow)
	assert.Nil(t, closed.Cells[1].Rank)
	assert.Empty(t, closed.Cells[1].StatusText)
}

func TestShopRanking_AñoSeleccionado(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{Year: 2023})
	require.NoError(t, err)

	assert.Equal(t, 2023, resp.SortYear)
	assert.Equal(t, "加治木", resp.Rows[0].Name)
	assert.Equal(t, "日向", resp.Rows[1].Name)
	assert.Equal(t, "宮崎", resp.Rows[2].Name, "cerrada en el último año va al final")
}

func TestShopRanking_PorMes(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{Month: 2})
	require.NoError(t, err)

	assert.Equal(t, []int{2024}, resp.Years)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "日向", resp.Rows[0].Name)
	assert.Equal(t, "2024-02-29", resp.Rows[0].Cells[0].Date)
}

func TestShopRanking_MesSinDatos(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{Month: 7})
	require.NoError(t, err)
	assert.Equal(t, dto.NoDataMessage, resp.Error)
	assert.Empty(t, resp.Rows)
}

func TestShopRanking_FiltroDeDepartamento(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{DeptCode: "2"})
	require.NoError(t, err)

	assert.Equal(t, "食品", resp.SelectedDeptName)
	// 2024: 加治木 y 日向 empatan en 100; desempata el nombre.
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "加治木", resp.Rows[0].Name)
	assert.Equal(t, "新店", resp.Rows[0].Cells[1].StatusText)
	assert.Equal(t, "store-new", resp.Rows[0].Cells[1].DiffClass)
	assert.Equal(t, "日向", resp.Rows[1].Name)
}

func TestShopRanking_SeleccionDeTiendas(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{Shops: []string{"2|3", "x"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"2|3"}, resp.SelectedShops)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "加治木", resp.Rows[0].Name)
	assert.Equal(t, 2, *resp.Rows[0].Cells[1].Rank, "la posición sigue siendo entre todas las tiendas")
}

func TestProfits_BrechaConVentas(t *testing.T) {
	resp, err := newFixtureUseCase().Profits(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	food := resp.Rows[0]
	assert.Equal(t, "食品", food.Name)
	c := food.Cells[1]
	assert.Equal(t, 1, *c.Rank)
	assert.Equal(t, 2, *c.SalesRank)
	assert.Equal(t, 1, c.Gap)
	assert.Equal(t, "gap-up", c.GapClass)
	assert.Equal(t, "売2位 ↗", c.GapIcon)
	assert.Equal(t, 30.0, *c.Margin)

	stationery := resp.Rows[1].Cells[1]
	assert.Equal(t, -1, stationery.Gap)
	assert.Equal(t, 1, stationery.GapAbs)
	assert.Equal(t, "売1位 ↘", stationery.GapIcon)
	assert.Equal(t, 22.5, *stationery.Margin)
}

func TestProfitMap(t *testing.T) {
	uc := newFixtureUseCase()

	resp, err := uc.ProfitMap(context.Background(), dto.ProfitMapRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", resp.Date)
	assert.Equal(t, []string{"2024-03-31", "2024-02-29", "2023-03-31"}, resp.AvailableDates)
	assert.Equal(t, []dto.ScatterPoint{
		{X: 400, Y: 22.5, Label: "文具", Profit: 90, Color: "#FF6384"},
		{X: 200, Y: 30, Label: "食品", Profit: 60, Color: "#36A2EB"},
	}, resp.Points)

	resp, err = uc.ProfitMap(context.Background(), dto.ProfitMapRequest{Date: "2023-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 21.67, resp.Points[0].Y)

	resp, err = uc.ProfitMap(context.Background(), dto.ProfitMapRequest{Date: "ayer"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", resp.Date)
}

func TestShopTrend(t *testing.T) {
	uc := newFixtureUseCase()

	resp, err := uc.ShopTrend(context.Background(), dto.ShopTrendRequest{})
	require.NoError(t, err)
	assert.Equal(t, "日向", resp.ShopName)
	assert.Equal(t, []string{"2023", "2024", "2024"}, resp.Labels)
	assert.Equal(t, []float64{25, 100, 66.7}, resp.Datasets[0].Data)
	assert.Equal(t, []float64{75, 0, 33.3}, resp.Datasets[1].Data)

	resp, err = uc.ShopTrend(context.Background(), dto.ShopTrendRequest{Shop: "3"})
	require.NoError(t, err)
	assert.Equal(t, "加治木", resp.ShopName)
	assert.Equal(t, "2|3", resp.Token)

	_, err = uc.ShopTrend(context.Background(), dto.ShopTrendRequest{Shop: "777"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComparison(t *testing.T) {
	uc := newFixtureUseCase()

	resp, err := uc.Comparison(context.Background(), dto.ComparisonRequest{
		Year:            2023,
		TargetShop:      "1",
		ComparisonShops: []string{"2|3", "5", "1"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2024, 2023}, resp.Years)
	assert.Equal(t, "2023-03-31", resp.Date)
	assert.Equal(t, []string{"文具", "食品"}, resp.Labels)
	assert.Equal(t, []string{"2|3", "5"}, resp.ComparisonShops)
	require.Len(t, resp.Datasets, 3)

	assert.Equal(t, "日向", resp.Datasets[0].Label)
	assert.Equal(t, []float64{25, 75}, resp.Datasets[0].Data)
	assert.Equal(t, "rgba(255, 99, 132, 0.7)", resp.Datasets[0].BackgroundColor)
	assert.Equal(t, "rgba(255, 99, 132, 1)", resp.Datasets[0].BorderColor)

	assert.Equal(t, []float64{100, 0}, resp.Datasets[1].Data)
	assert.Equal(t, "#36A2EB", resp.Datasets[1].BackgroundColor)
	assert.Equal(t, "#FFCE56", resp.Datasets[2].BackgroundColor)

	latest, err := uc.Comparison(context.Background(), dto.ComparisonRequest{TargetShop: "1", ComparisonShops: []string{"5"}})
	require.NoError(t, err)
	assert.Equal(t, 2024, latest.SelectedYear)
	assert.Len(t, latest.Datasets, 1, "宮崎 no vende en 2024")
}

func TestMeta(t *testing.T) {
	resp, err := newFixtureUseCase().Meta(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2023, 2024}, resp.Years)
	assert.Equal(t, map[int][]int{2023: {3}, 2024: {2, 3}}, resp.Months)
	assert.Equal(t, "2024-03-31", resp.LatestDate)
	assert.Len(t, resp.Shops, 3)
	assert.Len(t, resp.Departments, 2)
	assert.Equal(t, int64(7), resp.Generation)
}

func TestWriteShopRankingCSV(t *testing.T) {
	resp, err := newFixtureUseCase().ShopRanking(context.Background(), dto.ShopRankingRequest{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteShopRankingCSV(&buf, resp))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "店舗,2023年 順位,2023年 増減,2024年 順位,2024年 増減", lines[0])
	assert.Equal(t, "日向,2,,1,↑1", lines[1])
	assert.Equal(t, "宮崎,3,,-,", lines[3])
}
