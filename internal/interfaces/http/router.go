package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/changerank-api/pkg/jwt"
)

// RouterDeps agrupa los casos de uso inyectados en el router.
type RouterDeps struct {
	MasterImport MasterImporter
	SalesImport  SalesImporter
	Reports      Reports
	PDF          PDFGenerator
	Shops        ShopService
	Categories   CategoryService
	Generation   GenerationSource
	PageTTL      time.Duration
	JWTSecret    string
}

// Router registra las rutas de la API.
// Reportes: públicos y cacheados por página. Importaciones y maestros: JWT con rol operator.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Reportes
	reportH := NewReportHandler(deps.Reports, deps.PDF)
	reports := api.Group("/reports")
	if deps.Generation != nil && deps.PageTTL > 0 {
		reports.Use(PageCache(deps.PageTTL, deps.Generation))
	}
	reports.Get("/departments", reportH.Departments)
	reports.Get("/trends", reportH.Trends)
	reports.Get("/shops", reportH.Shops)
	reports.Get("/shops/export.csv", reportH.ShopsCSV)
	reports.Get("/shops/export.pdf", reportH.ShopsPDF)
	reports.Get("/profits", reportH.Profits)
	reports.Get("/profit-map", reportH.ProfitMap)
	reports.Get("/shop-trend", reportH.ShopTrend)
	reports.Get("/comparison", reportH.Comparison)
	reports.Get("/meta", reportH.Meta)

	// Rutas protegidas (JWT + rol operator)
	operator := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleOperator)}

	importH := NewImportHandler(deps.MasterImport, deps.SalesImport)
	imports := api.Group("/imports", operator...)
	imports.Post("/master", importH.Master)
	imports.Post("/sales", importH.Sales)

	masterH := NewMasterDataHandler(deps.Shops, deps.Categories)
	shops := api.Group("/shops", operator...)
	shops.Get("/", masterH.ListShops)
	shops.Get("/:id", masterH.GetShop)
	shops.Put("/:id", masterH.RenameShop)

	categories := api.Group("/categories", operator...)
	categories.Get("/", masterH.ListCategories)
	categories.Get("/:id", masterH.GetCategory)
}
