package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
	"github.com/jhoicas/changerank-api/internal/domain/ledger"
	"github.com/jhoicas/changerank-api/internal/domain/master"
)

var validate = validator.New()

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func failInternal(c *fiber.Ctx, err error) error {
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

// parseQuery lee la query en out y la valida con las etiquetas `validate`.
// Si falla ya escribió la respuesta 400 y devuelve false.
func parseQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if err := validate.Struct(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	}
	return true, nil
}

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// importErrorCode traduce los errores de planilla a 422 con su código; el resto es 500.
func importErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrMissingDate):
		return fiber.StatusUnprocessableEntity, "MISSING_DATE"
	case errors.Is(err, ledger.ErrMissingHeader):
		return fiber.StatusUnprocessableEntity, "MISSING_HEADER"
	case errors.Is(err, ledger.ErrNoShopColumns):
		return fiber.StatusUnprocessableEntity, "NO_SHOP_COLUMNS"
	case errors.Is(err, master.ErrInvalidRow):
		return fiber.StatusUnprocessableEntity, "INVALID_MASTER_ROW"
	case errors.Is(err, ledger.ErrUnsupportedFormat):
		return fiber.StatusUnprocessableEntity, "UNSUPPORTED_FORMAT"
	case errors.Is(err, ledger.ErrEmptyWorkbook):
		return fiber.StatusUnprocessableEntity, "EMPTY_WORKBOOK"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
