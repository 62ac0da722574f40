// Package sheet modela una hoja de cálculo ya leída como una grilla de celdas tipadas,
// sin dependencia del formato de archivo.
package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Kind es el tipo de valor de una celda.
type Kind int

const (
	Empty Kind = iota
	Text
	Number
	Date
)

// Cell es una celda tipada.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
}

// TextCell construye una celda de texto; una cadena vacía produce una celda vacía.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: Text, Text: s}
}

// NumberCell construye una celda numérica.
func NumberCell(f float64) Cell { return Cell{Kind: Number, Number: f} }

// DateCell construye una celda de fecha (se descarta la hora).
func DateCell(t time.Time) Cell {
	return Cell{Kind: Date, Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsBlank indica si la celda está vacía o solo contiene espacios.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case Empty:
		return true
	case Text:
		return strings.TrimSpace(c.Text) == ""
	}
	return false
}

// String devuelve la representación textual de la celda.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case Date:
		return c.Time.Format("2006-01-02")
	}
	return ""
}

// Int interpreta la celda como entero: números sin parte decimal o texto con dígitos
// (se aceptan dígitos de ancho completo y la forma "12.0").
func (c Cell) Int() (int64, bool) {
	switch c.Kind {
	case Number:
		return floatToInt(c.Number)
	case Text:
		s := strings.TrimSpace(Fold(c.Text))
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Fold convierte caracteres de ancho completo a su forma estrecha ("１８０" → "180").
func Fold(s string) string {
	return width.Fold.String(s)
}

// Sheet es una hoja cargada en memoria. Las filas pueden tener largos distintos.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Cell devuelve la celda (r, c) o una celda vacía si está fuera de rango.
func (s *Sheet) Cell(r, c int) Cell {
	if r < 0 || r >= len(s.Rows) || c < 0 || c >= len(s.Rows[r]) {
		return Cell{}
	}
	return s.Rows[r][c]
}

// Width devuelve el número máximo de columnas entre todas las filas.
func (s *Sheet) Width() int {
	w := 0
	for _, row := range s.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Workbook es un libro con hojas accesibles por nombre.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (*Sheet, error)
}
