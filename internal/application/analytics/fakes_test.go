package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/changerank-api/internal/domain/catalog"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func pid(id int64) *int64 { return &id }

// fixtureCategories: 文具(1) y 食品(2), cada uno con una rama completa, más la categoría reservada.
func fixtureCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Code: 1, Name: "文具", Level: 10},
		{ID: 2, Code: 2, Name: "食品", Level: 10},
		{ID: 99, Code: entity.CustomerCountCode, Name: entity.CustomerCountName, Level: entity.CustomerCountLevel},
		{ID: 11, Code: 101, Name: "筆記具", Level: 35, ParentID: pid(1)},
		{ID: 21, Code: 201, Name: "菓子", Level: 35, ParentID: pid(2)},
		{ID: 111, Code: 1011, Name: "鉛筆", Level: 90, ParentID: pid(11)},
		{ID: 211, Code: 2011, Name: "飴", Level: 90, ParentID: pid(21)},
		{ID: 1111, Code: 10111, Name: "鉛筆HB", Level: 180, ParentID: pid(111)},
		{ID: 1112, Code: 10112, Name: "鉛筆2B", Level: 180, ParentID: pid(111)},
		{ID: 2111, Code: 20111, Name: "のど飴", Level: 180, ParentID: pid(211)},
	}
}

func fixtureShops() []entity.Shop {
	return []entity.Shop{
		{ID: 1, Name: "日向"},
		{ID: 2, Name: "加治木"},
		{ID: 3, Name: "加治"},
		{ID: 4, Name: "IMPORT_TEST_STORE"},
		{ID: 5, Name: "宮崎"},
	}
}

type fact struct {
	date     time.Time
	shop     int64
	category int64
	sales    int64
	profit   int64
}

// fixtureFacts: 宮崎 deja de vender en 2024; 加治 y 加治木 son la misma tienda.
func fixtureFacts() []fact {
	return []fact{
		{day(2023, 3, 31), 1, 1111, 100, 30},
		{day(2023, 3, 31), 1, 2111, 300, 30},
		{day(2023, 3, 31), 2, 1111, 500, 100},
		{day(2023, 3, 31), 5, 2111, 50, 5},
		{day(2024, 2, 29), 1, 1111, 10, 1},
		{day(2024, 3, 31), 1, 1111, 200, 60},
		{day(2024, 3, 31), 1, 2111, 100, 10},
		{day(2024, 3, 31), 3, 1111, 150, 30},
		{day(2024, 3, 31), 2, 2111, 100, 50},
		{day(2024, 3, 31), 4, 1111, 50, 0},
	}
}

type fakeDerived struct {
	dates []time.Time
	tree  *catalog.Tree
	gen   int64
}

func (f *fakeDerived) Dates(context.Context) ([]time.Time, error)  { return f.dates, nil }
func (f *fakeDerived) Tree(context.Context) (*catalog.Tree, error) { return f.tree, nil }
func (f *fakeDerived) Generation(context.Context) int64            { return f.gen }

func (f *fakeDerived) AncestorTable(context.Context) (map[int64]catalog.Ancestors, error) {
	return f.tree.AncestorTable(), nil
}

func (f *fakeDerived) DescendantsOfDepartment(_ context.Context, code int) ([]int64, error) {
	return f.tree.DescendantsOf(entity.LevelDepartment, code), nil
}

type fakeReports struct{ facts []fact }

func in(ids []int64, id int64) bool {
	if len(ids) == 0 {
		return true
	}
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (f *fakeReports) DistinctDates(context.Context) ([]time.Time, error) {
	var out []time.Time
	seen := map[time.Time]bool{}
	for _, r := range f.facts {
		if !seen[r.date] {
			seen[r.date] = true
			out = append(out, r.date)
		}
	}
	return out, nil
}

func (f *fakeReports) CategoryTotals(_ context.Context, date time.Time, shopIDs []int64) ([]repository.CategoryTotal, error) {
	sums := map[int64]*repository.CategoryTotal{}
	var order []int64
	for _, r := range f.facts {
		if !r.date.Equal(date) || !in(shopIDs, r.shop) {
			continue
		}
		t := sums[r.category]
		if t == nil {
			t = &repository.CategoryTotal{CategoryID: r.category}
			sums[r.category] = t
			order = append(order, r.category)
		}
		t.Sales = t.Sales.Add(decimal.NewFromInt(r.sales))
		t.Profit = t.Profit.Add(decimal.NewFromInt(r.profit))
	}
	out := make([]repository.CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *sums[id])
	}
	return out, nil
}

func (f *fakeReports) CategoryTotalsByDate(ctx context.Context, shopIDs []int64) ([]repository.DatedCategoryTotal, error) {
	dates, _ := f.DistinctDates(ctx)
	var out []repository.DatedCategoryTotal
	for _, d := range dates {
		totals, _ := f.CategoryTotals(ctx, d, shopIDs)
		for _, t := range totals {
			out = append(out, repository.DatedCategoryTotal{Date: d, CategoryTotal: t})
		}
	}
	return out, nil
}

func (f *fakeReports) ShopTotals(_ context.Context, date time.Time, categoryIDs []int64) ([]repository.ShopTotal, error) {
	sums := map[int64]decimal.Decimal{}
	for _, r := range f.facts {
		if r.date.Equal(date) && in(categoryIDs, r.category) {
			sums[r.shop] = sums[r.shop].Add(decimal.NewFromInt(r.sales))
		}
	}
	var out []repository.ShopTotal
	for id, s := range sums {
		out = append(out, repository.ShopTotal{ShopID: id, Sales: s})
	}
	return out, nil
}

func (f *fakeReports) ShopCategoryTotals(_ context.Context, date time.Time, shopIDs []int64) ([]repository.ShopCategoryTotal, error) {
	var out []repository.ShopCategoryTotal
	for _, r := range f.facts {
		if r.date.Equal(date) && in(shopIDs, r.shop) {
			out = append(out, repository.ShopCategoryTotal{ShopID: r.shop, CategoryID: r.category, Sales: decimal.NewFromInt(r.sales)})
		}
	}
	return out, nil
}

type fakeShops []entity.Shop

func (f fakeShops) List(context.Context) ([]entity.Shop, error) { return f, nil }

func newFixtureUseCase() *ReportUseCase {
	reports := &fakeReports{facts: fixtureFacts()}
	dates, _ := reports.DistinctDates(context.Background())
	derived := &fakeDerived{dates: dates, tree: catalog.NewTree(fixtureCategories()), gen: 7}
	settings := Settings{
		Aliases:   map[string]string{"加治": "加治木"},
		Excluded:  []string{"IMPORT_TEST_STORE"},
		FocusShop: "日向",
	}
	return NewReportUseCase(reports, fakeShops(fixtureShops()), derived, settings, nil)
}

func newEmptyUseCase() *ReportUseCase {
	derived := &fakeDerived{tree: catalog.NewTree(fixtureCategories())}
	return NewReportUseCase(&fakeReports{}, fakeShops(fixtureShops()), derived, Settings{FocusShop: "日向"}, nil)
}
