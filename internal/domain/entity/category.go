package entity

// Niveles de la jerarquía de categorías (departamento → línea → clase → subclase).
const (
	LevelDepartment = 10
	LevelLine       = 35
	LevelClass      = 90
	LevelSubclass   = 180
)

// Levels lista los niveles en orden de profundidad.
var Levels = []int{LevelDepartment, LevelLine, LevelClass, LevelSubclass}

// Categoría reservada para el número de clientes (客数). No participa en rankings.
const (
	CustomerCountCode  = 9999
	CustomerCountLevel = LevelDepartment
	CustomerCountName  = "客数"
)

// Category es un nodo del maestro de categorías. (Code, Level) es único.
type Category struct {
	ID       int64
	Code     int
	Name     string
	Level    int
	ParentID *int64 // nil en nivel 10
}

// IsReserved indica si es la categoría sintética de número de clientes.
func (c *Category) IsReserved() bool {
	return c.Code == CustomerCountCode && c.Level == CustomerCountLevel
}

// ValidLevel indica si level es uno de los cuatro niveles conocidos.
func ValidLevel(level int) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// ParentLevel devuelve el nivel inmediatamente superior, o 0 para el nivel 10.
func ParentLevel(level int) int {
	for i, l := range Levels {
		if l == level && i > 0 {
			return Levels[i-1]
		}
	}
	return 0
}

// ChildLevel devuelve el nivel inmediatamente inferior, o 0 para el nivel 180.
func ChildLevel(level int) int {
	for i, l := range Levels {
		if l == level && i < len(Levels)-1 {
			return Levels[i+1]
		}
	}
	return 0
}
