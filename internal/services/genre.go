package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dataagg "github.com/lcamargo/catalog-backend/internal/data/aggregates"
	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type CreateGenreInput struct {
	Name        string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

type UpdateGenreInput struct {
	Name        *string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

// GenreService validates genre writes and delegates the transactional work to
// the genre aggregate.
type GenreService struct {
	agg        domainagg.GenreAggregate
	genres     catalogrepos.GenreRepo
	categories catalogrepos.CategoryRepo
	log        *logger.Logger
}

func NewGenreService(
	agg domainagg.GenreAggregate,
	genres catalogrepos.GenreRepo,
	categories catalogrepos.CategoryRepo,
	baseLog *logger.Logger,
) *GenreService {
	return &GenreService{
		agg:        agg,
		genres:     genres,
		categories: categories,
		log:        baseLog.With("service", "GenreService"),
	}
}

func (s *GenreService) Create(ctx context.Context, in CreateGenreInput) (*catalog.Genre, error) {
	const op = "Catalog.Genre.Create"
	if err := s.checkCategoryIDs(ctx, op, in.CategoryIDs); err != nil {
		return nil, err
	}
	res, err := s.agg.Create(ctx, domainagg.CreateGenreInput{
		Name:        in.Name,
		IsActive:    in.IsActive,
		CategoryIDs: in.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, res.Genre.ID, false)
}

func (s *GenreService) Get(ctx context.Context, id uuid.UUID, includeDeleted bool) (*catalog.Genre, error) {
	const op = "Catalog.Genre.Get"
	if includeDeleted {
		row, err := s.genres.GetByID(dbctx.Context{Ctx: ctx}, id, true)
		if err != nil {
			return nil, dataagg.MapError(op, err)
		}
		if row == nil {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("genre not found: %s", id.String()), nil)
		}
		return row, nil
	}
	row, err := s.genres.GetWithCategories(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("genre not found: %s", id.String()), nil)
	}
	return row, nil
}

func (s *GenreService) List(ctx context.Context, includeDeleted bool) ([]*catalog.Genre, error) {
	const op = "Catalog.Genre.List"
	rows, err := s.genres.List(dbctx.Context{Ctx: ctx}, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

func (s *GenreService) Update(ctx context.Context, id uuid.UUID, in UpdateGenreInput) (*catalog.Genre, error) {
	if in.CategoryIDs != nil {
		const op = "Catalog.Genre.Update"
		if err := s.checkCategoryIDs(ctx, op, in.CategoryIDs); err != nil {
			return nil, err
		}
	}
	res, err := s.agg.Update(ctx, domainagg.UpdateGenreInput{
		GenreID:     id,
		Name:        in.Name,
		IsActive:    in.IsActive,
		CategoryIDs: in.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}
	return res.Genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Catalog.Genre.Delete"
	if _, err := s.Get(ctx, id, false); err != nil {
		return err
	}
	if err := s.genres.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return dataagg.MapError(op, err)
	}
	return nil
}

// checkCategoryIDs rejects references to categories that are missing or soft
// deleted before the aggregate runs, turning what would surface as a
// referential failure into a validation error.
func (s *GenreService) checkCategoryIDs(ctx context.Context, op string, ids []uuid.UUID) error {
	distinct := dedupeIDs(ids)
	if len(distinct) == 0 {
		return nil
	}
	n, err := s.categories.CountExistingByIDs(dbctx.Context{Ctx: ctx}, distinct)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if n != int64(len(distinct)) {
		return domainagg.NewError(domainagg.CodeValidation, op, "one or more categories do not exist", nil)
	}
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
