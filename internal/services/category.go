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

type CreateCategoryInput struct {
	Name        string
	Description string
	IsActive    *bool
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type CategoryService struct {
	repo catalogrepos.CategoryRepo
	log  *logger.Logger
}

func NewCategoryService(repo catalogrepos.CategoryRepo, baseLog *logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: baseLog.With("service", "CategoryService")}
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*catalog.Category, error) {
	const op = "Catalog.Category.Create"
	if in.Name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	row := &catalog.Category{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    active,
	}
	if _, err := s.repo.Create(dbctx.Context{Ctx: ctx}, []*catalog.Category{row}); err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID, includeDeleted bool) (*catalog.Category, error) {
	const op = "Catalog.Category.Get"
	row, err := s.repo.GetByID(dbctx.Context{Ctx: ctx}, id, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("category not found: %s", id.String()), nil)
	}
	return row, nil
}

func (s *CategoryService) List(ctx context.Context, includeDeleted bool) ([]*catalog.Category, error) {
	const op = "Catalog.Category.List"
	rows, err := s.repo.List(dbctx.Context{Ctx: ctx}, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*catalog.Category, error) {
	const op = "Catalog.Category.Update"
	if in.Name != nil && *in.Name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "name cannot be empty", nil)
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		n, err := s.repo.UpdateFields(dbctx.Context{Ctx: ctx}, id, updates)
		if err != nil {
			return nil, dataagg.MapError(op, err)
		}
		if n == 0 {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("category not found: %s", id.String()), nil)
		}
	}
	return s.Get(ctx, id, false)
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Catalog.Category.Delete"
	if _, err := s.Get(ctx, id, false); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return dataagg.MapError(op, err)
	}
	return nil
}
