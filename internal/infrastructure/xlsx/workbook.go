// Package xlsx adapta libros .xlsx (excelize) al modelo de hojas del dominio.
package xlsx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/changerank-api/internal/domain/ledger"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

var (
	zipMagic = []byte("PK\x03\x04")
	// cabecera OLE2 de los .xls binarios
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// Workbook implementa sheet.Workbook sobre un archivo excelize.
type Workbook struct {
	f          *excelize.File
	date1904   bool
	dateStyles map[int]bool
}

var _ sheet.Workbook = (*Workbook)(nil)

// Open lee un .xlsx completo desde r. Un .xls binario devuelve ledger.ErrUnsupportedFormat.
func Open(r io.Reader) (*Workbook, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)
	switch {
	case bytes.Equal(head, oleMagic):
		return nil, fmt.Errorf("%w: libro .xls binario, guardar como .xlsx", ledger.ErrUnsupportedFormat)
	case !bytes.Equal(head, zipMagic):
		return nil, fmt.Errorf("%w: no es un libro .xlsx", ledger.ErrUnsupportedFormat)
	}

	f, err := excelize.OpenReader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrUnsupportedFormat, err)
	}
	wb := &Workbook{f: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// OpenFile abre un libro desde disco (CLI).
func OpenFile(path string) (*Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Open(file)
}

// Close libera los archivos temporales de excelize.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames devuelve las hojas en el orden del libro.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Sheet materializa la hoja con los valores en bruto; los números con formato de fecha
// se convierten en celdas de fecha.
func (w *Workbook) Sheet(name string) (*sheet.Sheet, error) {
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja %q: %w", name, err)
	}
	out := &sheet.Sheet{Name: name, Rows: make([][]sheet.Cell, len(rows))}
	for r, row := range rows {
		cells := make([]sheet.Cell, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := w.cell(name, r, c, raw)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		out.Rows[r] = cells
	}
	return out, nil
}

func (w *Workbook) cell(sheetName string, r, c int, raw string) (sheet.Cell, error) {
	ref, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return sheet.Cell{}, err
	}
	typ, err := w.f.GetCellType(sheetName, ref)
	if err != nil {
		return sheet.Cell{}, fmt.Errorf("xlsx: tipo de %s: %w", ref, err)
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError, excelize.CellTypeBool:
		return sheet.TextCell(raw), nil
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return sheet.DateCell(t), nil
		}
		return sheet.TextCell(raw), nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return sheet.TextCell(raw), nil
	}
	isDate, err := w.isDateStyled(sheetName, ref)
	if err != nil {
		return sheet.Cell{}, err
	}
	if isDate {
		if t, err := excelize.ExcelDateToTime(n, w.date1904); err == nil {
			return sheet.DateCell(t), nil
		}
	}
	return sheet.NumberCell(n), nil
}

func (w *Workbook) isDateStyled(sheetName, ref string) (bool, error) {
	idx, err := w.f.GetCellStyle(sheetName, ref)
	if err != nil {
		return false, fmt.Errorf("xlsx: estilo de %s: %w", ref, err)
	}
	if v, ok := w.dateStyles[idx]; ok {
		return v, nil
	}
	style, err := w.f.GetStyle(idx)
	isDate := err == nil && style != nil && isDateFormat(style.NumFmt, style.CustomNumFmt)
	w.dateStyles[idx] = isDate
	return isDate, nil
}

// isDateFormat reconoce los formatos de fecha integrados (incluidos los CJK) y los
// formatos personalizados con y, m o d fuera de literales.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return customHasDate(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 17, numFmt == 22:
		return true
	case numFmt >= 27 && numFmt <= 36, numFmt >= 50 && numFmt <= 58:
		return true
	}
	return false
}

func customHasDate(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range format {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymd")
}
