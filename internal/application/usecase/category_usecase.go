package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/changerank-api/internal/application/dto"
	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/repository"
)

// CategoryUseCase consultas sobre el maestro de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List lista categorías por nivel y/o padre, ordenadas por nivel y código.
func (uc *CategoryUseCase) List(ctx context.Context, in dto.CategoryListRequest) ([]dto.CategoryResponse, error) {
	var (
		list []entity.Category
		err  error
	)
	if in.Level > 0 {
		list, err = uc.repo.ListByLevel(ctx, in.Level)
	} else {
		list, err = uc.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if in.ParentID > 0 && (c.ParentID == nil || *c.ParentID != in.ParentID) {
			continue
		}
		items = append(items, toCategoryResponse(c))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Level != items[j].Level {
			return items[i].Level < items[j].Level
		}
		return items[i].Code < items[j].Code
	})
	return items, nil
}

// GetByID obtiene una categoría; nil, nil si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := toCategoryResponse(*c)
	return &out, nil
}

func toCategoryResponse(c entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Code: c.Code, Name: c.Name, Level: c.Level, ParentID: c.ParentID}
}
