package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

// memDB es una base en memoria con semántica transaccional mínima:
// Run trabaja sobre una copia y solo la publica si fn no falla.
type memDB struct {
	nextID     int64
	shops      map[int64]entity.Shop
	categories map[int64]entity.Category
	sales      map[[3]int64]entity.SalesRecord // (shop, category, date unix)
	failUpsert bool
}

func newMemDB() *memDB {
	return &memDB{
		shops:      make(map[int64]entity.Shop),
		categories: make(map[int64]entity.Category),
		sales:      make(map[[3]int64]entity.SalesRecord),
	}
}

func (db *memDB) clone() *memDB {
	c := &memDB{
		nextID:     db.nextID,
		failUpsert: db.failUpsert,
		shops:      make(map[int64]entity.Shop, len(db.shops)),
		categories: make(map[int64]entity.Category, len(db.categories)),
		sales:      make(map[[3]int64]entity.SalesRecord, len(db.sales)),
	}
	for k, v := range db.shops {
		c.shops[k] = v
	}
	for k, v := range db.categories {
		c.categories[k] = v
	}
	for k, v := range db.sales {
		c.sales[k] = v
	}
	return c
}

func (db *memDB) Run(_ context.Context, fn func(repository.ShopRepository, repository.CategoryRepository, repository.SalesRepository) error) error {
	tx := db.clone()
	if err := fn(memShops{tx}, memCategories{tx}, memSales{tx}); err != nil {
		return err
	}
	*db = *tx
	return nil
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) category(level, code int) (entity.Category, bool) {
	for _, c := range db.categories {
		if c.Level == level && c.Code == code {
			return c, true
		}
	}
	return entity.Category{}, false
}

func (db *memDB) shopByName(name string) (entity.Shop, bool) {
	for _, s := range db.shops {
		if s.Name == name {
			return s, true
		}
	}
	return entity.Shop{}, false
}

func (db *memDB) record(shopID, categoryID int64, date time.Time) (entity.SalesRecord, bool) {
	r, ok := db.sales[[3]int64{shopID, categoryID, date.Unix()}]
	return r, ok
}

type memShops struct{ db *memDB }

func (m memShops) GetOrCreate(_ context.Context, name string) (*entity.Shop, error) {
	if s, ok := m.db.shopByName(name); ok {
		return &s, nil
	}
	s := entity.Shop{ID: m.db.id(), Name: name}
	m.db.shops[s.ID] = s
	return &s, nil
}

func (m memShops) GetByID(_ context.Context, id int64) (*entity.Shop, error) {
	s, ok := m.db.shops[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m memShops) List(context.Context) ([]entity.Shop, error) {
	var out []entity.Shop
	for _, s := range m.db.shops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memShops) Rename(_ context.Context, id int64, name string) error {
	s, ok := m.db.shops[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Name = name
	m.db.shops[id] = s
	return nil
}

type memCategories struct{ db *memDB }

func (m memCategories) Create(_ context.Context, c *entity.Category) error {
	if _, ok := m.db.category(c.Level, c.Code); ok {
		return domain.ErrDuplicate
	}
	c.ID = m.db.id()
	m.db.categories[c.ID] = *c
	return nil
}

func (m memCategories) Update(_ context.Context, c *entity.Category) error {
	if _, ok := m.db.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.db.categories[c.ID] = *c
	return nil
}

func (m memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := m.db.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCategories) GetByCodeLevel(_ context.Context, code, level int) (*entity.Category, error) {
	c, ok := m.db.category(level, code)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCategories) ListByLevel(_ context.Context, level int) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range m.db.categories {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memCategories) ListAll(context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range m.db.categories {
		out = append(out, c)
	}
	return out, nil
}

type memSales struct{ db *memDB }

var errUpsert = errors.New("upsert falló")

func (m memSales) Upsert(_ context.Context, r *entity.SalesRecord) error {
	if m.db.failUpsert {
		return errUpsert
	}
	key := [3]int64{r.ShopID, r.CategoryID, r.Date.Unix()}
	if prev, ok := m.db.sales[key]; ok {
		r.ID = prev.ID
	} else {
		r.ID = m.db.id()
	}
	m.db.sales[key] = *r
	return nil
}

func (m memSales) PruneMonth(_ context.Context, shopID int64, date time.Time) (int64, error) {
	var n int64
	for k, r := range m.db.sales {
		if r.ShopID == shopID && r.Date.Year() == date.Year() && r.Date.Month() == date.Month() && r.Date.Before(date) {
			delete(m.db.sales, k)
			n++
		}
	}
	return n, nil
}

// spyCache cuenta invalidaciones.
type spyCache struct {
	calls int
	err   error
}

func (s *spyCache) Invalidate(context.Context) error {
	s.calls++
	return s.err
}

// memWorkbook implementa sheet.Workbook.
type memWorkbook struct {
	sheets []*sheet.Sheet
	broken map[string]bool
}

func (w *memWorkbook) SheetNames() []string {
	out := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		out[i] = s.Name
	}
	return out
}

func (w *memWorkbook) Sheet(name string) (*sheet.Sheet, error) {
	if w.broken[name] {
		return nil, fmt.Errorf("hoja %q corrupta", name)
	}
	for _, s := range w.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("hoja %q no existe", name)
}

func cells(vals ...any) []sheet.Cell {
	out := make([]sheet.Cell, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case string:
			out[i] = sheet.TextCell(x)
		case int:
			out[i] = sheet.NumberCell(float64(x))
		case time.Time:
			out[i] = sheet.DateCell(x)
		}
	}
	return out
}

func (db *memDB) categoriesAt(level int) []entity.Category {
	var out []entity.Category
	for _, c := range db.categories {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}
