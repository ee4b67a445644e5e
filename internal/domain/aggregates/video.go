package aggregates

import (
	"context"

	"github.com/google/uuid"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
)

// VideoAggregate coordinates video writes across the relational store, the
// association join tables and the blob store as one logical operation.
type VideoAggregate interface {
	Aggregate
	Create(ctx context.Context, in CreateVideoInput) (CreateVideoResult, error)
	Update(ctx context.Context, in UpdateVideoInput) (UpdateVideoResult, error)
}

var VideoAggregateContract = Contract{
	Name:             "Catalog.Video",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	BlobOrdering:     BlobsUploadedBeforeCommit,
	Notes:            "old blob keys pruned only after commit; pre-commit failures delete this call's uploads",
}

type CreateVideoInput struct {
	// ID is optional; a nil UUID is replaced by a fresh one (sequential ids
	// are disabled for catalog entities).
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Rating       string
	Duration     int

	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID

	Uploads map[catalog.VideoSlot]*catalog.Upload
}

type CreateVideoResult struct {
	Video *catalog.Video
}

// UpdateVideoInput applies partial scalar changes: nil pointer fields are left
// untouched. A nil association slice leaves the association alone; an empty
// non-nil slice clears it.
type UpdateVideoInput struct {
	VideoID uuid.UUID

	Title        *string
	Description  *string
	YearLaunched *int
	Opened       *bool
	Rating       *string
	Duration     *int

	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID

	Uploads map[catalog.VideoSlot]*catalog.Upload
}

type UpdateVideoResult struct {
	Saved bool
	Video *catalog.Video
}
