package aggregates

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
)

// GenreAggregate writes a genre and its categories association in one
// transaction.
type GenreAggregate interface {
	Aggregate
	Create(ctx context.Context, in CreateGenreInput) (CreateGenreResult, error)
	Update(ctx context.Context, in UpdateGenreInput) (UpdateGenreResult, error)
}

var GenreAggregateContract = Contract{
	Name:             "Catalog.Genre",
	WriteTxOwnership: WriteTxOwnedByAggregate,
}

type CreateGenreInput struct {
	ID          uuid.UUID
	Name        string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

type CreateGenreResult struct {
	Genre *catalog.Genre
}

type UpdateGenreInput struct {
	GenreID uuid.UUID

	Name        *string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

type UpdateGenreResult struct {
	Saved bool
	Genre *catalog.Genre
}
