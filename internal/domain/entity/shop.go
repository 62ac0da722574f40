package entity

// Shop representa una tienda. Se crea al importar y solo su nombre es editable.
type Shop struct {
	ID   int64
	Name string
}
