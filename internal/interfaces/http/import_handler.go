package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
	"github.com/jhoicas/changerank-api/internal/infrastructure/xlsx"
)

// MasterImporter importa el maestro de categorías.
type MasterImporter interface {
	Import(ctx context.Context, wb sheet.Workbook) (*dto.MasterImportResult, error)
}

// SalesImporter importa el libro de ventas por departamento.
type SalesImporter interface {
	Import(ctx context.Context, wb sheet.Workbook) (*dto.SalesImportResult, error)
}

// ImportHandler recibe las planillas subidas por el operador (protegido).
type ImportHandler struct {
	master MasterImporter
	sales  SalesImporter
}

// NewImportHandler construye el handler.
func NewImportHandler(master MasterImporter, sales SalesImporter) *ImportHandler {
	return &ImportHandler{master: master, sales: sales}
}

// Master godoc
// @Summary      Importar maestro de categorías
// @Description  Crea o actualiza el árbol de categorías (niveles 10/35/90/180) desde un .xlsx.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro .xlsx"
// @Success      200   {object}  dto.MasterImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/imports/master [post]
func (h *ImportHandler) Master(c *fiber.Ctx) error {
	wb, err := openUpload(c)
	if err != nil || wb == nil {
		return err
	}
	defer wb.Close()

	out, err := h.master.Import(c.Context(), wb)
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Importar libro de ventas
// @Description  Reemplaza las ventas del mes para cada tienda del libro y registra el nuevo día.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Libro .xlsx"
// @Success      200   {object}  dto.SalesImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/imports/sales [post]
func (h *ImportHandler) Sales(c *fiber.Ctx) error {
	wb, err := openUpload(c)
	if err != nil || wb == nil {
		return err
	}
	defer wb.Close()

	out, err := h.sales.Import(c.Context(), wb)
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(out)
}

// openUpload abre el campo multipart "file". Si devuelve wb nil la respuesta ya fue escrita.
func openUpload(c *fiber.Ctx) (*xlsx.Workbook, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fail(c, fiber.StatusBadRequest, "MISSING_FILE", "campo multipart 'file' requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, failInternal(c, err)
	}
	defer f.Close()

	wb, err := xlsx.Open(f)
	if err != nil {
		return nil, importFailure(c, err)
	}
	return wb, nil
}

func importFailure(c *fiber.Ctx, err error) error {
	status, code := importErrorCode(err)
	return fail(c, status, code, err.Error())
}
