// Package ledger detecta la estructura de un libro de ventas por tienda
// (hoja, fecha, fila de encabezado, columnas de tienda) y lee sus filas.
package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

const (
	// scanRows es la ventana superior donde se buscan la fecha y el encabezado.
	scanRows = 20
	// labelLookback es cuántas filas sobre el encabezado se revisan buscando el nombre de tienda.
	labelLookback = 6

	headerMarker = "販売"
)

var (
	datePattern = regexp.MustCompile(`(\d+)年(\d+)月(\d+)日`)

	labelExclusions = []string{"原価率", "累計", "合計", "構成比", "予算", "前年", "売上", "仕入", "販売"}
)

// ShopColumn es la columna de "ventas" de una tienda; las demás medidas siguen a la derecha.
type ShopColumn struct {
	Name string
	Col  int
}

// Layout describe dónde están los datos dentro de la hoja.
type Layout struct {
	Sheet     string
	Date      time.Time
	HeaderRow int
	Shops     []ShopColumn
}

// SelectSheet elige la hoja de detalle de 180 clases: primero la que contiene 180, 明細 y 類,
// luego 180 y 明細, y si no la primera.
func SelectSheet(names []string) string {
	if len(names) == 0 {
		return ""
	}
	for _, n := range names {
		f := sheet.Fold(n)
		if strings.Contains(f, "180") && strings.Contains(f, "明細") && strings.Contains(f, "類") {
			return n
		}
	}
	for _, n := range names {
		f := sheet.Fold(n)
		if strings.Contains(f, "180") && strings.Contains(f, "明細") {
			return n
		}
	}
	return names[0]
}

// Detect aplica la detección completa sobre una hoja. departmentNames son los nombres
// de nivel 10 que nunca pueden ser nombre de tienda.
func Detect(s *sheet.Sheet, departmentNames []string) (Layout, error) {
	date, err := FindReportDate(s)
	if err != nil {
		return Layout{}, err
	}
	header, err := FindHeaderRow(s)
	if err != nil {
		return Layout{}, err
	}
	shops := FindShopColumns(s, header, departmentNames)
	if len(shops) == 0 {
		return Layout{}, &NoShopColumnsError{HeaderRow: header}
	}
	return Layout{Sheet: s.Name, Date: date, HeaderRow: header, Shops: shops}, nil
}

// FindReportDate recorre la ventana superior fila por fila; gana la primera celda de fecha
// o el primer texto con forma 2024年3月31日.
func FindReportDate(s *sheet.Sheet) (time.Time, error) {
	rows := min(scanRows, len(s.Rows))
	for r := 0; r < rows; r++ {
		for _, c := range s.Rows[r] {
			switch c.Kind {
			case sheet.Date:
				return c.Time, nil
			case sheet.Text:
				if t, ok := parseJapaneseDate(c.Text); ok {
					return t, nil
				}
			}
		}
	}
	return time.Time{}, ErrMissingDate
}

func parseJapaneseDate(s string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(sheet.Fold(s))
	if m == nil {
		return time.Time{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// FindHeaderRow devuelve la primera fila de la ventana con una celda que contiene 販売.
func FindHeaderRow(s *sheet.Sheet) (int, error) {
	rows := min(scanRows, len(s.Rows))
	for r := 0; r < rows; r++ {
		for _, c := range s.Rows[r] {
			if c.Kind == sheet.Text && strings.Contains(c.Text, headerMarker) {
				return r, nil
			}
		}
	}
	return 0, ErrMissingHeader
}

// FindShopColumns busca, para cada celda 販売 del encabezado, el nombre de tienda
// subiendo hasta labelLookback filas. Un nombre repetido mantiene su posición en la lista
// pero toma la última columna en que aparece.
func FindShopColumns(s *sheet.Sheet, header int, departmentNames []string) []ShopColumn {
	departments := make(map[string]struct{}, len(departmentNames))
	for _, n := range departmentNames {
		departments[strings.TrimSpace(n)] = struct{}{}
	}

	if header < 0 || header >= len(s.Rows) {
		return nil
	}
	var out []ShopColumn
	seen := make(map[string]int)
	for col, c := range s.Rows[header] {
		if c.Kind != sheet.Text || !strings.Contains(c.Text, headerMarker) {
			continue
		}
		for k := 1; k <= labelLookback && header-k >= 0; k++ {
			name, ok := shopLabel(s.Cell(header-k, col), departments)
			if !ok {
				continue
			}
			if i, dup := seen[name]; dup {
				out[i].Col = col
			} else {
				seen[name] = len(out)
				out = append(out, ShopColumn{Name: name, Col: col})
			}
			break
		}
	}
	return out
}

func shopLabel(c sheet.Cell, departments map[string]struct{}) (string, bool) {
	if c.Kind != sheet.Text || c.IsBlank() {
		return "", false
	}
	name := strings.TrimSpace(c.Text)
	if strings.Contains(name, "%") || strings.Contains(name, "％") {
		return "", false
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(sheet.Fold(name), ",", ""), 64); err == nil {
		return "", false
	}
	for _, kw := range labelExclusions {
		if strings.Contains(name, kw) {
			return "", false
		}
	}
	if _, ok := departments[name]; ok {
		return "", false
	}
	return name, true
}
