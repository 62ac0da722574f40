package master

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

func cells(vals ...any) []sheet.Cell {
	out := make([]sheet.Cell, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case string:
			out[i] = sheet.TextCell(x)
		case int:
			out[i] = sheet.NumberCell(float64(x))
		case float64:
			out[i] = sheet.NumberCell(x)
		}
	}
	return out
}

func TestParse_LinajeCompletoYParcial(t *testing.T) {
	s := &sheet.Sheet{Rows: [][]sheet.Cell{
		cells("部門", "部門名", "ライン", "ライン名", "クラス", "クラス名", "サブ", "サブ名"),
		cells(1, "文具", 10, "筆記具", 100, "鉛筆", 1001, "HB鉛筆"),
		cells(1, "Books", 10.0, "Comics"),
		cells(nil, "sin código"),
		cells(2, "食品", nil, "ignorado", 200, "no se lee"),
	}}

	lins, err := Parse(s)
	require.NoError(t, err)
	require.Len(t, lins, 3)

	assert.Len(t, lins[0].Nodes, 4)
	assert.Equal(t, Node{Code: 1001, Name: "HB鉛筆", Level: 180}, lins[0].Nodes[3])

	assert.Equal(t, []Node{{Code: 1, Name: "Books", Level: 10}, {Code: 10, Name: "Comics", Level: 35}}, lins[1].Nodes)
	assert.Equal(t, 3, lins[1].Row)

	assert.Equal(t, []Node{{Code: 2, Name: "食品", Level: 10}}, lins[2].Nodes)
}

func TestParse_CodigoNoEntero(t *testing.T) {
	s := &sheet.Sheet{Rows: [][]sheet.Cell{
		cells("h"),
		cells(1, "文具", "abc", "x"),
	}}
	_, err := Parse(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRow)

	var re *RowError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.Row)
	assert.Equal(t, 3, re.Col)
}

func TestParse_RangoDeCodigo(t *testing.T) {
	lins, err := Parse(&sheet.Sheet{Rows: [][]sheet.Cell{
		cells("h"),
		cells(2147483647.0, "最大", 1.0, "小数表記"),
	}})
	require.NoError(t, err)
	require.Len(t, lins, 1)
	assert.Equal(t, []Node{
		{Code: 2147483647, Name: "最大", Level: 10},
		{Code: 1, Name: "小数表記", Level: 35},
	}, lins[0].Nodes)

	for _, tc := range []struct {
		name string
		row  []sheet.Cell
		col  int
	}{
		{"numero fuera de int32", cells(2147483648.0, "x"), 1},
		{"texto fuera de int32", cells(1, "a", "3000000000", "x"), 3},
		{"negativo", cells(-1, "x"), 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(&sheet.Sheet{Rows: [][]sheet.Cell{cells("h"), tc.row}})
			assert.ErrorIs(t, err, ErrInvalidRow)

			var re *RowError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, 2, re.Row)
			assert.Equal(t, tc.col, re.Col)
		})
	}
}

func TestParse_SoloEncabezado(t *testing.T) {
	lins, err := Parse(&sheet.Sheet{Rows: [][]sheet.Cell{cells("h")}})
	require.NoError(t, err)
	assert.Empty(t, lins)
}
