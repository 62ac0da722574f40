package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ledger"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

// SalesUseCase importa un libro de ventas por tienda.
type SalesUseCase struct {
	tx    TxRunner
	cache Invalidator
	opts  options
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(tx TxRunner, cache Invalidator, opts ...Option) *SalesUseCase {
	return &SalesUseCase{tx: tx, cache: cache, opts: buildOptions(opts)}
}

// Import detecta la estructura del libro, poda el mes de cada tienda y hace upsert de
// cada fila (tienda, subclase, fecha). Todo ocurre en una transacción.
func (uc *SalesUseCase) Import(ctx context.Context, wb sheet.Workbook) (*dto.SalesImportResult, error) {
	start := time.Now()
	res := &dto.SalesImportResult{BatchID: uuid.NewString()}
	log := uc.opts.log.Component("importer.sales")

	err := uc.run(ctx, wb, res)
	uc.opts.obs.ObserveImport(KindSales, res.RowsProcessed, err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("batch_id", res.BatchID).Str("sheet", res.Sheet).Msg("importación de ventas fallida")
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("batch_id", res.BatchID).Msg("no se pudo invalidar la caché")
	}
	log.Info().
		Str("batch_id", res.BatchID).
		Str("date", res.ReportDate).
		Strs("shops", res.Shops).
		Int("rows", res.RowsProcessed).
		Int("written", res.RecordsWritten).
		Int64("pruned", res.RecordsPruned).
		Int("skipped", res.SkippedRows).
		Msg("ventas importadas")
	return res, nil
}

func (uc *SalesUseCase) pickSheet(wb sheet.Workbook) (*sheet.Sheet, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, ledger.ErrEmptyWorkbook
	}
	target := ledger.SelectSheet(names)
	s, err := wb.Sheet(target)
	if err == nil {
		return s, nil
	}
	uc.opts.log.Warn().Err(err).Str("sheet", target).Msg("hoja elegida ilegible, se usa la primera")
	s, err = wb.Sheet(names[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", names[0], err)
	}
	return s, nil
}

func (uc *SalesUseCase) run(ctx context.Context, wb sheet.Workbook, res *dto.SalesImportResult) error {
	s, err := uc.pickSheet(wb)
	if err != nil {
		return err
	}
	res.Sheet = s.Name

	return uc.tx.Run(ctx, func(shops repository.ShopRepository, categories repository.CategoryRepository, sales repository.SalesRepository) error {
		departments, err := categories.ListByLevel(ctx, entity.LevelDepartment)
		if err != nil {
			return err
		}
		deptNames := make([]string, len(departments))
		for i, d := range departments {
			deptNames[i] = d.Name
		}

		layout, err := ledger.Detect(s, deptNames)
		if err != nil {
			return err
		}
		res.ReportDate = layout.Date.Format("2006-01-02")

		subclasses, err := categories.ListByLevel(ctx, entity.LevelSubclass)
		if err != nil {
			return err
		}
		subclassByCode := make(map[int]int64, len(subclasses))
		for _, c := range subclasses {
			subclassByCode[c.Code] = c.ID
		}

		shopIDs := make([]int64, len(layout.Shops))
		for i, col := range layout.Shops {
			shop, err := shops.GetOrCreate(ctx, col.Name)
			if err != nil {
				return err
			}
			shopIDs[i] = shop.ID
			res.Shops = append(res.Shops, shop.Name)
		}

		for _, id := range shopIDs {
			n, err := sales.PruneMonth(ctx, id, layout.Date)
			if err != nil {
				return err
			}
			res.RecordsPruned += n
		}

		var customerCount *entity.Category
		write := func(categoryID int64, shopIdx int, m entity.Measures) error {
			rec := &entity.SalesRecord{Date: layout.Date, ShopID: shopIDs[shopIdx], CategoryID: categoryID, Measures: m}
			if err := sales.Upsert(ctx, rec); err != nil {
				return err
			}
			res.RecordsWritten++
			return nil
		}

		for r := layout.HeaderRow + 1; r < len(s.Rows); r++ {
			row := ledger.ClassifyRow(s, r)
			switch row.Kind {
			case ledger.RowCategory:
				catID, ok := subclassByCode[row.Code]
				if !ok {
					res.SkippedRows++
					continue
				}
				res.RowsProcessed++
				for i, col := range layout.Shops {
					if err := write(catID, i, ledger.ReadMeasures(s, r, col.Col)); err != nil {
						return err
					}
				}

			case ledger.RowCustomerCount:
				if customerCount == nil {
					if customerCount, err = ensureCustomerCountCategory(ctx, categories); err != nil {
						return err
					}
				}
				res.RowsProcessed++
				for i, col := range layout.Shops {
					m := ledger.ReadCustomerCount(s, r, col.Col)
					if m.Sales <= 0 {
						continue
					}
					if err := write(customerCount.ID, i, m); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func ensureCustomerCountCategory(ctx context.Context, categories repository.CategoryRepository) (*entity.Category, error) {
	c, err := categories.GetByCodeLevel(ctx, entity.CustomerCountCode, entity.CustomerCountLevel)
	if err != nil || c != nil {
		return c, err
	}
	c = &entity.Category{Code: entity.CustomerCountCode, Name: entity.CustomerCountName, Level: entity.CustomerCountLevel}
	if err := categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
