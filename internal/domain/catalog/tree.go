// Package catalog indexa el maestro de categorías en memoria para resolver
// descendientes, ancestros y rutas sin consultar la base.
package catalog

import (
	"sort"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
)

type key struct {
	level int
	code  int
}

// Tree es un índice inmutable del maestro.
type Tree struct {
	byID     map[int64]entity.Category
	byKey    map[key]int64
	children map[int64][]int64
}

// Ancestors mapea nivel → id del ancestro en ese nivel (incluye el propio nodo).
type Ancestors map[int]int64

// NewTree indexa las categorías dadas. Los hijos quedan ordenados por código.
func NewTree(categories []entity.Category) *Tree {
	t := &Tree{
		byID:     make(map[int64]entity.Category, len(categories)),
		byKey:    make(map[key]int64, len(categories)),
		children: make(map[int64][]int64),
	}
	for _, c := range categories {
		t.byID[c.ID] = c
		t.byKey[key{c.Level, c.Code}] = c.ID
	}
	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		if _, ok := t.byID[*c.ParentID]; ok {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
		}
	}
	for parent, ids := range t.children {
		sort.Slice(ids, func(i, j int) bool { return t.less(ids[i], ids[j]) })
		t.children[parent] = ids
	}
	return t
}

func (t *Tree) less(a, b int64) bool {
	ca, cb := t.byID[a], t.byID[b]
	if ca.Code != cb.Code {
		return ca.Code < cb.Code
	}
	return ca.ID < cb.ID
}

// Get devuelve la categoría por id.
func (t *Tree) Get(id int64) (entity.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Find devuelve la categoría por (nivel, código).
func (t *Tree) Find(level, code int) (entity.Category, bool) {
	id, ok := t.byKey[key{level, code}]
	if !ok {
		return entity.Category{}, false
	}
	return t.byID[id], true
}

// ByLevel lista las categorías del nivel ordenadas por código, sin la categoría reservada.
func (t *Tree) ByLevel(level int) []entity.Category {
	var out []entity.Category
	for _, c := range t.byID {
		if c.Level == level && !c.IsReserved() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return t.less(out[i].ID, out[j].ID) })
	return out
}

// Children lista los hijos directos ordenados por código.
func (t *Tree) Children(id int64) []entity.Category {
	ids := t.children[id]
	out := make([]entity.Category, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.byID[cid])
	}
	return out
}

// Descendants devuelve id y todos sus descendientes. Un id desconocido da nil.
func (t *Tree) Descendants(id int64) []int64 {
	if _, ok := t.byID[id]; !ok {
		return nil
	}
	out := []int64{id}
	seen := map[int64]bool{id: true}
	for i := 0; i < len(out); i++ {
		for _, child := range t.children[out[i]] {
			if !seen[child] {
				seen[child] = true
				out = append(out, child)
			}
		}
	}
	return out
}

// DescendantsOf resuelve (nivel, código) y devuelve sus descendientes; vacío si no existe.
func (t *Tree) DescendantsOf(level, code int) []int64 {
	c, ok := t.Find(level, code)
	if !ok {
		return nil
	}
	return t.Descendants(c.ID)
}

// Path devuelve la ruta desde el departamento hasta id (inclusive).
func (t *Tree) Path(id int64) []entity.Category {
	var rev []entity.Category
	seen := make(map[int64]bool)
	for cur, ok := t.byID[id]; ok && !seen[cur.ID]; {
		seen[cur.ID] = true
		rev = append(rev, cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = t.byID[*cur.ParentID]
	}
	out := make([]entity.Category, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}

// AncestorTable devuelve, para cada subclase (nivel 180), sus ancestros por nivel.
func (t *Tree) AncestorTable() map[int64]Ancestors {
	out := make(map[int64]Ancestors)
	for id, c := range t.byID {
		if c.Level != entity.LevelSubclass {
			continue
		}
		anc := make(Ancestors, len(entity.Levels))
		for _, p := range t.Path(id) {
			anc[p.Level] = p.ID
		}
		out[id] = anc
	}
	return out
}
