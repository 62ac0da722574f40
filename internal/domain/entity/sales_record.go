package entity

import "time"

// Measures agrupa los cinco importes de una fila del libro de ventas.
type Measures struct {
	Sales    int64
	Purchase int64
	Supply   int64
	Net      int64
	Profit   int64
}

// SalesRecord es el hecho (tienda, categoría, fecha). La tripleta es única.
type SalesRecord struct {
	ID         int64
	Date       time.Time
	ShopID     int64
	CategoryID int64
	Measures
}
