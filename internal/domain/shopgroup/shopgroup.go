// Package shopgroup agrupa tiendas por nombre de presentación según una tabla de alias
// explícita (por ejemplo, dos registros de la misma tienda con nombres distintos).
package shopgroup

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

// Group es un conjunto de tiendas que se muestran como una sola.
type Group struct {
	Name  string  `json:"name"`
	IDs   []int64 `json:"ids"`
	Token string  `json:"token"` // "id|id", valor de los filtros de selección
}

// Aliases traduce nombres crudos a nombres de presentación.
type Aliases map[string]string

// Display devuelve el nombre de presentación de name.
func (a Aliases) Display(name string) string {
	if to, ok := a[name]; ok {
		return to
	}
	return name
}

// Index resuelve grupos por id de tienda y por nombre.
type Index struct {
	groups []Group
	byShop map[int64]int
}

// Build agrupa las tiendas visibles. Las tiendas cuyo nombre crudo o de presentación está
// en excluded no aparecen. Los grupos quedan ordenados por nombre.
func Build(shops []entity.Shop, aliases Aliases, excluded []string) *Index {
	skip := make(map[string]bool, len(excluded))
	for _, n := range excluded {
		skip[n] = true
	}

	byName := make(map[string][]int64)
	for _, s := range shops {
		name := aliases.Display(s.Name)
		if skip[s.Name] || skip[name] {
			continue
		}
		byName[name] = append(byName[name], s.ID)
	}

	idx := &Index{byShop: make(map[int64]int)}
	for name, ids := range byName {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		idx.groups = append(idx.groups, Group{Name: name, IDs: ids, Token: Token(ids)})
	}
	sort.Slice(idx.groups, func(i, j int) bool { return idx.groups[i].Name < idx.groups[j].Name })
	for i, g := range idx.groups {
		for _, id := range g.IDs {
			idx.byShop[id] = i
		}
	}
	return idx
}

// Groups devuelve todos los grupos ordenados por nombre.
func (x *Index) Groups() []Group { return x.groups }

// Len devuelve la cantidad de grupos.
func (x *Index) Len() int { return len(x.groups) }

// ByShop devuelve el grupo al que pertenece la tienda.
func (x *Index) ByShop(id int64) (Group, bool) {
	i, ok := x.byShop[id]
	if !ok {
		return Group{}, false
	}
	return x.groups[i], true
}

// ByToken resuelve un token ("3|7") al grupo de su primera tienda conocida.
func (x *Index) ByToken(token string) (Group, bool) {
	for _, id := range ParseTokens([]string{token}) {
		if g, ok := x.ByShop(id); ok {
			return g, true
		}
	}
	return Group{}, false
}

// FirstContaining devuelve el primer grupo cuyo nombre contiene sub.
func (x *Index) FirstContaining(sub string) (Group, bool) {
	for _, g := range x.groups {
		if strings.Contains(g.Name, sub) {
			return g, true
		}
	}
	return Group{}, false
}

// Select devuelve los grupos que contienen alguna de las tiendas dadas, en orden por nombre.
func (x *Index) Select(shopIDs []int64) []Group {
	want := make(map[int]bool)
	for _, id := range shopIDs {
		if i, ok := x.byShop[id]; ok {
			want[i] = true
		}
	}
	var out []Group
	for i, g := range x.groups {
		if want[i] {
			out = append(out, g)
		}
	}
	return out
}

// Token codifica ids como "id|id".
func Token(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "|")
}

// ParseTokens extrae ids de tokens "id|id". Los fragmentos que no son dígitos se ignoran.
func ParseTokens(tokens []string) []int64 {
	var out []int64
	seen := make(map[int64]bool)
	for _, tok := range tokens {
		for _, part := range strings.Split(tok, "|") {
			part = strings.TrimSpace(part)
			if part == "" || strings.TrimLeft(part, "0123456789") != "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
