package ledger

import (
	"errors"
	"fmt"
)

// Errores de planilla mal formada. El importador los devuelve tal cual al operador.
var (
	ErrMissingDate       = errors.New("no se encontró la fecha del reporte (YYYY年M月D日) en las primeras filas")
	ErrMissingHeader     = errors.New("no se encontró la fila de encabezado con 販売")
	ErrNoShopColumns     = errors.New("no se detectaron columnas de tienda")
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado (use .xlsx)")
	ErrEmptyWorkbook     = errors.New("el libro no contiene hojas")
)

// NoShopColumnsError indica la fila de encabezado donde se buscaron las tiendas.
type NoShopColumnsError struct {
	HeaderRow int // 0-based
}

func (e *NoShopColumnsError) Error() string {
	return fmt.Sprintf("%s (encabezado en fila %d)", ErrNoShopColumns.Error(), e.HeaderRow+1)
}

func (e *NoShopColumnsError) Unwrap() error { return ErrNoShopColumns }
