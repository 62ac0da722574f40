package dto

// ShopResponse salida de una tienda.
type ShopResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RenameShopRequest entrada para renombrar una tienda.
type RenameShopRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Code     int    `json:"code"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ParentID *int64 `json:"parent_id"`
}

// CategoryListRequest filtros del listado de categorías.
type CategoryListRequest struct {
	Level    int   `query:"level" validate:"omitempty,oneof=10 35 90 180"`
	ParentID int64 `query:"parent_id" validate:"min=0"`
}
