// Package master interpreta la planilla del maestro de categorías: cada fila es un
// linaje de hasta cuatro pares (código, nombre) de los niveles 10, 35, 90 y 180.
package master

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

// ErrInvalidRow se devuelve cuando un código no es un entero entre 0 y MaxInt32.
var ErrInvalidRow = errors.New("fila de maestro inválida")

// RowError ubica el código inválido (fila y columna 1-based, como en Excel).
type RowError struct {
	Row   int
	Col   int
	Value string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: fila %d columna %d, código %q no es entero", ErrInvalidRow.Error(), e.Row, e.Col, e.Value)
}

func (e *RowError) Unwrap() error { return ErrInvalidRow }

// Node es un nivel dentro de un linaje.
type Node struct {
	Code  int
	Name  string
	Level int
}

// Lineage es la ruta desde el departamento hasta el nivel más profundo presente en la fila.
type Lineage struct {
	Row   int // 1-based
	Nodes []Node
}

// Parse lee todas las filas salvo el encabezado. Las filas con la primera celda vacía se
// omiten; dentro de una fila se leen pares hasta el primer código vacío.
func Parse(s *sheet.Sheet) ([]Lineage, error) {
	var out []Lineage
	for r := 1; r < len(s.Rows); r++ {
		if s.Cell(r, 0).IsBlank() {
			continue
		}
		lin := Lineage{Row: r + 1}
		for i, level := range entity.Levels {
			codeCell := s.Cell(r, 2*i)
			if codeCell.IsBlank() {
				break
			}
			code, ok := codeCell.Int()
			if !ok || code < 0 || code > math.MaxInt32 {
				return nil, &RowError{Row: r + 1, Col: 2*i + 1, Value: codeCell.String()}
			}
			lin.Nodes = append(lin.Nodes, Node{
				Code:  int(code),
				Name:  strings.TrimSpace(s.Cell(r, 2*i+1).String()),
				Level: level,
			})
		}
		out = append(out, lin)
	}
	return out, nil
}
