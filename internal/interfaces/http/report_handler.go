package http

import (
	"bytes"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/changerank-api/internal/application/analytics"
	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain"
)

// Reports construye los reportes de solo lectura.
type Reports interface {
	Departments(ctx context.Context, req dto.DepartmentRankingRequest) (*dto.DepartmentRankingResponse, error)
	Trends(ctx context.Context) (*dto.TrendResponse, error)
	ShopRanking(ctx context.Context, req dto.ShopRankingRequest) (*dto.ShopRankingResponse, error)
	Profits(ctx context.Context) (*dto.ProfitRankingResponse, error)
	ProfitMap(ctx context.Context, req dto.ProfitMapRequest) (*dto.ProfitMapResponse, error)
	ShopTrend(ctx context.Context, req dto.ShopTrendRequest) (*dto.ShopTrendResponse, error)
	Comparison(ctx context.Context, req dto.ComparisonRequest) (*dto.ComparisonResponse, error)
	Meta(ctx context.Context) (*dto.MetaResponse, error)
}

// PDFGenerator renderiza el ranking de tiendas como PDF.
type PDFGenerator interface {
	GenerateShopRankingPDF(ctx context.Context, resp *dto.ShopRankingResponse) ([]byte, error)
}

// ReportHandler expone los reportes (públicos).
type ReportHandler struct {
	uc  Reports
	pdf PDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc Reports, pdf PDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// Departments godoc
// @Summary      Ranking de departamentos por año
// @Description  Sin parent_id lista el nivel 10; con parent_id baja a sus hijos.
// @Tags         reports
// @Produce      json
// @Param        parent_id  query  int  false  "ID de la categoría padre"
// @Success      200  {object}  dto.DepartmentRankingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/departments [get]
func (h *ReportHandler) Departments(c *fiber.Ctx) error {
	var req dto.DepartmentRankingRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	out, err := h.uc.Departments(c.Context(), req)
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// Trends godoc
// @Summary      Participación de cada departamento por fecha
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.TrendResponse
// @Router       /api/reports/trends [get]
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	out, err := h.uc.Trends(c.Context())
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// Shops godoc
// @Summary      Ranking de tiendas por año
// @Tags         reports
// @Produce      json
// @Param        year       query  int     false  "Año seleccionado"
// @Param        month      query  int     false  "Mes (1-12); compara año+mes"
// @Param        dept_code  query  string  false  "Código de departamento (nivel 10)"
// @Param        shops      query  []string  false  "Tokens de grupos de tiendas"
// @Success      200  {object}  dto.ShopRankingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/shops [get]
func (h *ReportHandler) Shops(c *fiber.Ctx) error {
	out, ok, err := h.shopRanking(c)
	if !ok {
		return err
	}
	return c.JSON(out)
}

// ShopsCSV godoc
// @Summary      Ranking de tiendas en CSV
// @Tags         reports
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/shops/export.csv [get]
func (h *ReportHandler) ShopsCSV(c *fiber.Ctx) error {
	out, ok, err := h.shopRanking(c)
	if !ok {
		return err
	}
	var buf bytes.Buffer
	if err := analytics.WriteShopRankingCSV(&buf, out); err != nil {
		return failInternal(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+analytics.ShopRankingCSVName)
	return c.Send(buf.Bytes())
}

// ShopsPDF godoc
// @Summary      Ranking de tiendas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/shops/export.pdf [get]
func (h *ReportHandler) ShopsPDF(c *fiber.Ctx) error {
	out, ok, err := h.shopRanking(c)
	if !ok {
		return err
	}
	doc, err := h.pdf.GenerateShopRankingPDF(c.Context(), out)
	if err != nil {
		return failInternal(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=shop_ranking.pdf")
	return c.Send(doc)
}

func (h *ReportHandler) shopRanking(c *fiber.Ctx) (*dto.ShopRankingResponse, bool, error) {
	var req dto.ShopRankingRequest
	if ok, err := parseQuery(c, &req); !ok {
		return nil, false, err
	}
	out, err := h.uc.ShopRanking(c.Context(), req)
	if err != nil {
		return nil, false, failInternal(c, err)
	}
	return out, true, nil
}

// Profits godoc
// @Summary      Ranking de margen por departamento
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ProfitRankingResponse
// @Router       /api/reports/profits [get]
func (h *ReportHandler) Profits(c *fiber.Ctx) error {
	out, err := h.uc.Profits(c.Context())
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// ProfitMap godoc
// @Summary      Mapa ventas / margen por departamento
// @Tags         reports
// @Produce      json
// @Param        date  query  string  false  "Fecha YYYY-MM-DD (por defecto la última)"
// @Success      200  {object}  dto.ProfitMapResponse
// @Router       /api/reports/profit-map [get]
func (h *ReportHandler) ProfitMap(c *fiber.Ctx) error {
	var req dto.ProfitMapRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	out, err := h.uc.ProfitMap(c.Context(), req)
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// ShopTrend godoc
// @Summary      Composición por departamento de una tienda
// @Tags         reports
// @Produce      json
// @Param        shop  query  string  false  "Token del grupo de tiendas"
// @Success      200  {object}  dto.ShopTrendResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/shop-trend [get]
func (h *ReportHandler) ShopTrend(c *fiber.Ctx) error {
	var req dto.ShopTrendRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	out, err := h.uc.ShopTrend(c.Context(), req)
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	}
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// Comparison godoc
// @Summary      Comparación de participación entre tiendas
// @Tags         reports
// @Produce      json
// @Param        year              query  int       false  "Año"
// @Param        target_shop       query  string    false  "Token de la tienda objetivo"
// @Param        comparison_shops  query  []string  false  "Tokens de tiendas de comparación"
// @Success      200  {object}  dto.ComparisonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/comparison [get]
func (h *ReportHandler) Comparison(c *fiber.Ctx) error {
	var req dto.ComparisonRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}
	out, err := h.uc.Comparison(c.Context(), req)
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}

// Meta godoc
// @Summary      Opciones para los selectores (años, meses, tiendas, departamentos)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.MetaResponse
// @Router       /api/reports/meta [get]
func (h *ReportHandler) Meta(c *fiber.Ctx) error {
	out, err := h.uc.Meta(c.Context())
	if err != nil {
		return failInternal(c, err)
	}
	return c.JSON(out)
}
