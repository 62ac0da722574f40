package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ledger"
	"github.com/jhoicas/changerank-api/internal/domain/master"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

// MasterUseCase importa el maestro de categorías (10 → 35 → 90 → 180).
type MasterUseCase struct {
	tx    TxRunner
	cache Invalidator
	opts  options
}

// NewMasterUseCase construye el caso de uso.
func NewMasterUseCase(tx TxRunner, cache Invalidator, opts ...Option) *MasterUseCase {
	return &MasterUseCase{tx: tx, cache: cache, opts: buildOptions(opts)}
}

// Import lee la primera hoja del libro y sincroniza el árbol en una sola transacción.
// Reimportar el mismo archivo no crea ni modifica nada.
func (uc *MasterUseCase) Import(ctx context.Context, wb sheet.Workbook) (*dto.MasterImportResult, error) {
	start := time.Now()
	res := &dto.MasterImportResult{BatchID: uuid.NewString()}
	log := uc.opts.log.Component("importer.master")

	err := uc.run(ctx, wb, res)
	uc.opts.obs.ObserveImport(KindMaster, res.RowsProcessed, err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Str("batch_id", res.BatchID).Msg("importación de maestro fallida")
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("batch_id", res.BatchID).Msg("no se pudo invalidar la caché")
	}
	log.Info().
		Str("batch_id", res.BatchID).
		Int("rows", res.RowsProcessed).
		Int("created", res.CategoriesCreated).
		Int("updated", res.CategoriesUpdated).
		Msg("maestro importado")
	return res, nil
}

func (uc *MasterUseCase) run(ctx context.Context, wb sheet.Workbook, res *dto.MasterImportResult) error {
	names := wb.SheetNames()
	if len(names) == 0 {
		return ledger.ErrEmptyWorkbook
	}
	s, err := wb.Sheet(names[0])
	if err != nil {
		return fmt.Errorf("leer hoja %q: %w", names[0], err)
	}
	res.Sheet = s.Name

	lineages, err := master.Parse(s)
	if err != nil {
		return err
	}

	return uc.tx.Run(ctx, func(_ repository.ShopRepository, categories repository.CategoryRepository, _ repository.SalesRepository) error {
		sync := &treeSync{repo: categories, seen: make(map[[2]int]*entity.Category)}
		for _, lin := range lineages {
			var parentID *int64
			for _, node := range lin.Nodes {
				cat, err := sync.resolve(ctx, node, parentID)
				if err != nil {
					return fmt.Errorf("fila %d: %w", lin.Row, err)
				}
				parentID = &cat.ID
			}
		}
		res.RowsProcessed = len(lineages)
		res.CategoriesCreated = sync.created
		res.CategoriesUpdated = sync.updated
		return nil
	})
}

// treeSync resuelve cada (nivel, código) una vez por lote.
type treeSync struct {
	repo    repository.CategoryRepository
	seen    map[[2]int]*entity.Category
	created int
	updated int
}

func (s *treeSync) resolve(ctx context.Context, node master.Node, parentID *int64) (*entity.Category, error) {
	key := [2]int{node.Level, node.Code}
	cat, ok := s.seen[key]
	if !ok {
		found, err := s.repo.GetByCodeLevel(ctx, node.Code, node.Level)
		if err != nil {
			return nil, err
		}
		if found == nil {
			cat = &entity.Category{Code: node.Code, Name: node.Name, Level: node.Level, ParentID: parentID}
			if err := s.repo.Create(ctx, cat); err != nil {
				return nil, err
			}
			s.created++
			s.seen[key] = cat
			return cat, nil
		}
		cat = found
		s.seen[key] = cat
	}

	changed := cat.Name != node.Name
	if node.Level != entity.LevelDepartment && !sameID(cat.ParentID, parentID) {
		changed = true
	}
	if !changed {
		return cat, nil
	}
	cat.Name = node.Name
	if node.Level != entity.LevelDepartment {
		cat.ParentID = parentID
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	s.updated++
	return cat, nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
