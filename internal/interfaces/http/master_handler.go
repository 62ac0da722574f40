package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
)

// ShopService administra las tiendas.
type ShopService interface {
	List(ctx context.Context) ([]dto.ShopResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ShopResponse, error)
	Rename(ctx context.Context, id int64, in dto.RenameShopRequest) (*dto.ShopResponse, error)
}

// CategoryService consulta el árbol de categorías.
type CategoryService interface {
	List(ctx context.Context, in dto.CategoryListRequest) ([]dto.CategoryResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error)
}

// MasterDataHandler maneja tiendas y categorías (protegido).
type MasterDataHandler struct {
	shops      ShopService
	categories CategoryService
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(shops ShopService, categories CategoryService) *MasterDataHandler {
	return &MasterDataHandler{shops: shops, categories: categories}
}

// ── Tiendas ─────────────────────────────────────────────────────────────────

// ListShops godoc
// @Summary      Listar tiendas
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShopResponse
// @Router       /api/shops [get]
func (h *MasterDataHandler) ListShops(c *fiber.Ctx) error {
	out, err := h.shops.List(c.Context())
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// GetShop godoc
// @Summary      Obtener tienda por ID
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *MasterDataHandler) GetShop(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.shops.GetByID(c.Context(), id)
	if err != nil {
		return failInternal(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "tienda no encontrada")
	}
	return c.JSON(out)
}

// RenameShop godoc
// @Summary      Renombrar tienda
// @Description  Cambia el nombre visible e invalida la caché de reportes.
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la tienda"
// @Param        body  body  dto.RenameShopRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [put]
func (h *MasterDataHandler) RenameShop(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id debe ser un entero positivo")
	}
	var in dto.RenameShopRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	out, err := h.shops.Rename(c.Context(), id, in)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "tienda no encontrada")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", "ya existe una tienda con ese nombre")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case err != nil:
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// ── Categorías ──────────────────────────────────────────────────────────────

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        level      query  int  false  "Nivel (10, 35, 90, 180)"
// @Param        parent_id  query  int  false  "ID del padre"
// @Success      200  {array}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *MasterDataHandler) ListCategories(c *fiber.Ctx) error {
	var in dto.CategoryListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.categories.List(c.Context(), in)
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *MasterDataHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id debe ser un entero positivo")
	}
	out, err := h.categories.GetByID(c.Context(), id)
	if err != nil {
		return failInternal(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "categoría no encontrada")
	}
	return c.JSON(out)
}
