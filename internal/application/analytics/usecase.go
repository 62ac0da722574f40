// Package analytics arma los reportes de ventas: rankings de departamentos y tiendas,
// márgenes, tendencias de participación y comparaciones entre tiendas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/catalog"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ranking"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
	"github.com/jhoicas/changerank-api/internal/domain/shopgroup"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// Paleta de los gráficos.
var (
	chartColors = []string{
		"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
		"#FF9F40", "#E7E9ED", "#71B37C", "#EC932F", "#5D6D7E",
	}
	comparisonColors = []string{"#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}
)

const (
	highlightBackground = "rgba(255, 99, 132, 0.7)"
	highlightBorder     = "rgba(255, 99, 132, 1)"
)

// Settings parámetros de presentación de tiendas.
type Settings struct {
	Aliases   shopgroup.Aliases
	Excluded  []string
	FocusShop string // tienda por defecto del reporte de composición
}

// ReportUseCase construye todos los reportes. Es read-only.
type ReportUseCase struct {
	reports  repository.ReportRepository
	shops    ShopLister
	derived  Derived
	settings Settings
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reports repository.ReportRepository, shops ShopLister, derived Derived, settings Settings, log *logger.Logger) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{
		reports:  reports,
		shops:    shops,
		derived:  derived,
		settings: settings,
		log:      log.Component("analytics"),
	}
}

func (uc *ReportUseCase) groups(ctx context.Context) (*shopgroup.Index, error) {
	shops, err := uc.shops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar tiendas: %w", err)
	}
	return shopgroup.Build(shops, uc.settings.Aliases, uc.settings.Excluded), nil
}

// ── Helpers compartidos ─────────────────────────────────────────────────────

// codeKey convierte un código en clave de desempate que ordena como número.
func codeKey(code int) string {
	return fmt.Sprintf("%010d", code)
}

// departmentOf mapea cada subclase a su ancestro del nivel dado.
func departmentOf(anc map[int64]catalog.Ancestors, level int) map[int64]int64 {
	out := make(map[int64]int64, len(anc))
	for sub, a := range anc {
		if id, ok := a[level]; ok {
			out[sub] = id
		}
	}
	return out
}

// amounts acumula ventas y margen por clave.
type amounts struct {
	sales  decimal.Decimal
	profit decimal.Decimal
}

// rollUp suma los totales de subclase en su categoría destino. Solo aparecen destinos con registros.
func rollUp(totals []repository.CategoryTotal, target map[int64]int64) map[int64]*amounts {
	out := make(map[int64]*amounts)
	for _, t := range totals {
		id, ok := target[t.CategoryID]
		if !ok {
			continue
		}
		a := out[id]
		if a == nil {
			a = &amounts{sales: decimal.Zero, profit: decimal.Zero}
			out[id] = a
		}
		a.sales = a.sales.Add(t.Sales)
		a.profit = a.profit.Add(t.Profit)
	}
	return out
}

func departmentOptions(depts []entity.Category) []dto.DepartmentOption {
	out := make([]dto.DepartmentOption, len(depts))
	for i, d := range depts {
		out[i] = dto.DepartmentOption{ID: d.ID, Code: d.Code, Name: d.Name}
	}
	return out
}

func groupDTOs(groups []shopgroup.Group) []dto.ShopGroupDTO {
	out := make([]dto.ShopGroupDTO, len(groups))
	for i, g := range groups {
		out[i] = dto.ShopGroupDTO{Name: g.Name, Token: g.Token, IDs: g.IDs}
	}
	return out
}

// sharesByDepartment devuelve la participación de cada departamento (en el orden dado).
func sharesByDepartment(depts []entity.Category, sales map[int64]decimal.Decimal) []float64 {
	total := decimal.Zero
	for _, d := range depts {
		total = total.Add(sales[d.ID])
	}
	out := make([]float64, len(depts))
	for i, d := range depts {
		out[i] = ranking.Share(sales[d.ID], total).InexactFloat64()
	}
	return out
}

func color(palette []string, i int) string {
	return palette[i%len(palette)]
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func dateIndex(dates []time.Time) map[string]int {
	idx := make(map[string]int, len(dates))
	for i, d := range dates {
		idx[d.Format(dateLayout)] = i
	}
	return idx
}
