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

type CreateCastMemberInput struct {
	Name string
	Type int
}

type UpdateCastMemberInput struct {
	Name *string
	Type *int
}

type CastMemberService struct {
	repo catalogrepos.CastMemberRepo
	log  *logger.Logger
}

func NewCastMemberService(repo catalogrepos.CastMemberRepo, baseLog *logger.Logger) *CastMemberService {
	return &CastMemberService{repo: repo, log: baseLog.With("service", "CastMemberService")}
}

func (s *CastMemberService) Create(ctx context.Context, in CreateCastMemberInput) (*catalog.CastMember, error) {
	const op = "Catalog.CastMember.Create"
	if in.Name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}
	if !catalog.IsValidCastMemberType(in.Type) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("invalid cast member type %d", in.Type), nil)
	}
	row := &catalog.CastMember{ID: uuid.New(), Name: in.Name, Type: in.Type}
	if _, err := s.repo.Create(dbctx.Context{Ctx: ctx}, []*catalog.CastMember{row}); err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

func (s *CastMemberService) Get(ctx context.Context, id uuid.UUID, includeDeleted bool) (*catalog.CastMember, error) {
	const op = "Catalog.CastMember.Get"
	row, err := s.repo.GetByID(dbctx.Context{Ctx: ctx}, id, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("cast member not found: %s", id.String()), nil)
	}
	return row, nil
}

func (s *CastMemberService) List(ctx context.Context, includeDeleted bool) ([]*catalog.CastMember, error) {
	const op = "Catalog.CastMember.List"
	rows, err := s.repo.List(dbctx.Context{Ctx: ctx}, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

func (s *CastMemberService) Update(ctx context.Context, id uuid.UUID, in UpdateCastMemberInput) (*catalog.CastMember, error) {
	const op = "Catalog.CastMember.Update"
	if in.Name != nil && *in.Name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "name cannot be empty", nil)
	}
	if in.Type != nil && !catalog.IsValidCastMemberType(*in.Type) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("invalid cast member type %d", *in.Type), nil)
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if len(updates) > 0 {
		n, err := s.repo.UpdateFields(dbctx.Context{Ctx: ctx}, id, updates)
		if err != nil {
			return nil, dataagg.MapError(op, err)
		}
		if n == 0 {
			return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("cast member not found: %s", id.String()), nil)
		}
	}
	return s.Get(ctx, id, false)
}

func (s *CastMemberService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Catalog.CastMember.Delete"
	if _, err := s.Get(ctx, id, false); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return dataagg.MapError(op, err)
	}
	return nil
}
