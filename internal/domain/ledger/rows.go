package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

const customerCountMarker = "客数"

// Offsets de cada medida respecto de la columna de ventas de la tienda.
const (
	offsetSales = iota
	offsetPurchase
	offsetSupply
	offsetNet
	offsetProfit
)

// RowKind clasifica una fila de datos.
type RowKind int

const (
	RowSkip RowKind = iota
	RowCategory
	RowCustomerCount
)

// Row es el resultado de ClassifyRow. Code solo aplica a RowCategory.
type Row struct {
	Kind RowKind
	Code int
}

// ClassifyRow mira la primera celda: 客数 marca la fila de clientes; un entero no negativo
// es un código de subclase; cualquier otra cosa se ignora.
func ClassifyRow(s *sheet.Sheet, r int) Row {
	first := s.Cell(r, 0)
	if first.Kind == sheet.Text && strings.Contains(first.Text, customerCountMarker) {
		return Row{Kind: RowCustomerCount}
	}
	code, ok := first.Int()
	if !ok || code < 0 || code > math.MaxInt32 {
		return Row{Kind: RowSkip}
	}
	return Row{Kind: RowCategory, Code: int(code)}
}

// ReadMeasures lee las cinco medidas de la tienda que empieza en col.
func ReadMeasures(s *sheet.Sheet, r, col int) entity.Measures {
	return entity.Measures{
		Sales:    ParseAmount(s.Cell(r, col+offsetSales)),
		Purchase: ParseAmount(s.Cell(r, col+offsetPurchase)),
		Supply:   ParseAmount(s.Cell(r, col+offsetSupply)),
		Net:      ParseAmount(s.Cell(r, col+offsetNet)),
		Profit:   ParseAmount(s.Cell(r, col+offsetProfit)),
	}
}

// ReadCustomerCount lee solo la columna de ventas; las otras medidas quedan en cero.
func ReadCustomerCount(s *sheet.Sheet, r, col int) entity.Measures {
	return entity.Measures{Sales: ParseAmount(s.Cell(r, col+offsetSales))}
}

// ParseAmount convierte una celda en importe entero. Nunca falla: vacío, guiones
// y texto no numérico valen 0; los decimales se truncan.
func ParseAmount(c sheet.Cell) int64 {
	switch c.Kind {
	case sheet.Number:
		return truncate(c.Number)
	case sheet.Text:
		s := strings.TrimSpace(strings.ReplaceAll(sheet.Fold(c.Text), ",", ""))
		switch s {
		case "", "-", "—", "−":
			return 0
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncate(f)
		}
	}
	return 0
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64/2 {
		return 0
	}
	return int64(f)
}
