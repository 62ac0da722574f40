// Package ranking calcula posiciones, participaciones y movimientos interanuales
// a partir de importes agregados.
package ranking

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// NoRank es la posición usada al ordenar filas sin dato.
const NoRank = 999

var hundred = decimal.NewFromInt(100)

// Entry es un importe identificado por Key. Key también desempata.
type Entry struct {
	Key    string
	Amount decimal.Decimal
}

// Sorted ordena por importe descendente y, a igualdad, por Key ascendente.
func Sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Rank asigna posiciones 1..n según Sorted.
func Rank(entries []Entry) map[string]int {
	ranks := make(map[string]int, len(entries))
	for i, e := range Sorted(entries) {
		ranks[e.Key] = i + 1
	}
	return ranks
}

// Total suma los importes.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Share devuelve amount/total*100 redondeado a un decimal; 0 si el total no es positivo.
func Share(amount, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred).Round(1)
}

// Margin devuelve profit/sales*100 sin redondear; 0 si las ventas no son positivas.
func Margin(profit, sales decimal.Decimal) decimal.Decimal {
	if !sales.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(sales).Mul(hundred)
}

// Status es el movimiento de una fila respecto del año anterior.
type Status string

const (
	StatusNone   Status = ""
	StatusNew    Status = "new"
	StatusClosed Status = "closed"
	StatusUp     Status = "up"
	StatusDown   Status = "down"
	StatusSame   Status = "same"
)

// Movement describe el cambio de posición con sus textos de presentación.
type Movement struct {
	Status Status
	Icon   string // ↑n / ↓n / →
	Label  string // 新店 / 閉店
	Class  string
}

// Compare compara la posición del año anterior (prev) con la actual (cur); 0 significa sin dato.
// En el año más reciente una tienda desaparecida no se marca como cerrada: se devuelve
// closedNow para que la fila se ordene al final.
func Compare(prev, cur int, latest bool) (m Movement, closedNow bool) {
	switch {
	case cur > 0 && prev == 0:
		return Movement{Status: StatusNew, Label: "新店", Class: "store-new"}, false
	case cur == 0 && prev > 0:
		if latest {
			return Movement{}, true
		}
		return Movement{Status: StatusClosed, Label: "閉店", Class: "store-closed"}, false
	case cur > 0 && prev > 0:
		switch d := prev - cur; {
		case d > 0:
			return Movement{Status: StatusUp, Icon: fmt.Sprintf("↑%d", d), Class: "rank-up"}, false
		case d < 0:
			return Movement{Status: StatusDown, Icon: fmt.Sprintf("↓%d", -d), Class: "rank-down"}, false
		default:
			return Movement{Status: StatusSame, Icon: "→", Class: "rank-same"}, false
		}
	}
	return Movement{}, false
}

// Gap compara la posición por ventas con la posición por margen.
// gap = salesRank - profitRank; positivo significa que el margen rinde mejor que las ventas.
func Gap(salesRank, profitRank int) (gap int, class, icon string) {
	gap = salesRank - profitRank
	switch {
	case gap > 0:
		return gap, "gap-up", fmt.Sprintf("売%d位 ↗", salesRank)
	case gap < 0:
		return gap, "gap-down", fmt.Sprintf("売%d位 ↘", salesRank)
	}
	return 0, "gap-same", "-"
}
