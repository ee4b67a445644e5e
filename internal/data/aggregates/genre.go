package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
)

type GenreAggregateDeps struct {
	Base BaseDeps

	Genres    catalogrepos.GenreRepo
	Relations *RelationSyncer
}

type genreAggregate struct {
	deps GenreAggregateDeps
}

func NewGenreAggregate(deps GenreAggregateDeps) domainagg.GenreAggregate {
	deps.Base = deps.Base.withDefaults()
	return &genreAggregate{deps: deps}
}

func (a *genreAggregate) Contract() domainagg.Contract {
	return domainagg.GenreAggregateContract
}

func (a *genreAggregate) Create(ctx context.Context, in domainagg.CreateGenreInput) (domainagg.CreateGenreResult, error) {
	const op = "Catalog.Genre.Create"
	var out domainagg.CreateGenreResult

	if a.deps.Genres == nil || a.deps.Relations == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "genre aggregate deps not configured", nil)
	}
	if in.Name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing name", nil)
	}

	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	row := &catalog.Genre{ID: id, Name: in.Name, IsActive: active}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Genres.Create(dbc, []*catalog.Genre{row}); err != nil {
			return err
		}
		if in.CategoryIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, GenreCategories, id, in.CategoryIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	out.Genre = row
	return out, nil
}

func (a *genreAggregate) Update(ctx context.Context, in domainagg.UpdateGenreInput) (domainagg.UpdateGenreResult, error) {
	const op = "Catalog.Genre.Update"
	var out domainagg.UpdateGenreResult

	if a.deps.Genres == nil || a.deps.Relations == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "genre aggregate deps not configured", nil)
	}
	if in.GenreID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing genre id", nil)
	}
	if in.Name != nil && *in.Name == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "name cannot be empty", nil)
	}

	saved := false
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		g, err := a.deps.Genres.GetByID(dbc, in.GenreID, false)
		if err != nil {
			return err
		}
		if g == nil || g.ID == uuid.Nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("genre not found: %s", in.GenreID.String()), nil)
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) > 0 {
			n, err := a.deps.Genres.UpdateFields(dbc, in.GenreID, updates)
			if err != nil {
				return err
			}
			saved = n > 0
		} else {
			saved = true
		}

		if in.CategoryIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, GenreCategories, in.GenreID, in.CategoryIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	g, err := a.deps.Genres.GetWithCategories(dbctx.Context{Ctx: ctx}, in.GenreID)
	if err != nil {
		return out, MapError(op, err)
	}
	out.Saved = saved
	out.Genre = g
	return out, nil
}
