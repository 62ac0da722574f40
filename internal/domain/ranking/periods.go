package ranking

import (
	"sort"
	"time"
)

// Bucket es el último día disponible de un año (o de un año+mes).
type Bucket struct {
	Year  int
	Month int // 0 si el bucket es anual
	Date  time.Time
}

// LatestPerYear elige, para cada año, la fecha más reciente; si month > 0 solo considera ese mes.
// El resultado queda ordenado por año ascendente.
func LatestPerYear(dates []time.Time, month int) []Bucket {
	latest := make(map[int]time.Time)
	for _, d := range dates {
		if month > 0 && int(d.Month()) != month {
			continue
		}
		if cur, ok := latest[d.Year()]; !ok || d.After(cur) {
			latest[d.Year()] = d
		}
	}
	out := make([]Bucket, 0, len(latest))
	for y, d := range latest {
		out = append(out, Bucket{Year: y, Month: month, Date: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Years devuelve los años distintos en orden ascendente.
func Years(dates []time.Time) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, d := range dates {
		if _, ok := seen[d.Year()]; !ok {
			seen[d.Year()] = struct{}{}
			out = append(out, d.Year())
		}
	}
	sort.Ints(out)
	return out
}

// MonthsByYear agrupa los meses con datos por año.
func MonthsByYear(dates []time.Time) map[int][]int {
	seen := make(map[[2]int]struct{})
	out := make(map[int][]int)
	for _, d := range dates {
		k := [2]int{d.Year(), int(d.Month())}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out[d.Year()] = append(out[d.Year()], int(d.Month()))
	}
	for y := range out {
		sort.Ints(out[y])
	}
	return out
}

// SortYear decide qué año ordena la tabla: el seleccionado, salvo que tenga posiciones
// para menos de la mitad de los grupos; entonces el año con más grupos (el más reciente si empatan).
func SortYear(selected int, years []int, rankedPerYear map[int]int, groups int) int {
	threshold := max(1, groups/2)
	if rankedPerYear[selected] >= threshold {
		return selected
	}
	best, bestCount := selected, -1
	for _, y := range years {
		if c := rankedPerYear[y]; c >= bestCount {
			best, bestCount = y, c
		}
	}
	if bestCount <= 0 {
		return selected
	}
	return best
}

// EffectiveRank es la posición en sortYear o, si falta, la del año más reciente con dato.
func EffectiveRank(ranks map[int]int, sortYear int, years []int) int {
	if r := ranks[sortYear]; r > 0 {
		return r
	}
	for i := len(years) - 1; i >= 0; i-- {
		if r := ranks[years[i]]; r > 0 {
			return r
		}
	}
	return NoRank
}
