package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	dataagg "github.com/lcamargo/catalog-backend/internal/data/aggregates"
	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/data/rules"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

// Accepted upload extensions per slot.
var slotExtensions = map[catalog.VideoSlot][]string{
	catalog.SlotVideoFile:   {".mp4"},
	catalog.SlotTrailerFile: {".mp4"},
	catalog.SlotThumbFile:   {".jpg", ".jpeg", ".png", ".gif"},
	catalog.SlotBannerFile:  {".jpg", ".jpeg", ".png", ".gif"},
}

type CreateVideoInput struct {
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

type UpdateVideoInput struct {
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

// VideoService validates video writes and delegates the transactional work to
// the video aggregate.
type VideoService struct {
	agg         domainagg.VideoAggregate
	videos      catalogrepos.VideoRepo
	categories  catalogrepos.CategoryRepo
	genres      catalogrepos.GenreRepo
	castMembers catalogrepos.CastMemberRepo
	linkFetch   rules.CategoryGenreFetch
	log         *logger.Logger
}

func NewVideoService(
	agg domainagg.VideoAggregate,
	videos catalogrepos.VideoRepo,
	categories catalogrepos.CategoryRepo,
	genres catalogrepos.GenreRepo,
	castMembers catalogrepos.CastMemberRepo,
	linkFetch rules.CategoryGenreFetch,
	baseLog *logger.Logger,
) *VideoService {
	return &VideoService{
		agg:         agg,
		videos:      videos,
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		linkFetch:   linkFetch,
		log:         baseLog.With("service", "VideoService"),
	}
}

func (s *VideoService) Create(ctx context.Context, in CreateVideoInput) (*catalog.Video, error) {
	const op = "Catalog.Video.Create"
	if err := validateUploads(op, in.Uploads); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, op, in.CategoryIDs, in.GenreIDs, in.CastMemberIDs); err != nil {
		return nil, err
	}
	if err := s.checkGenreCategories(ctx, op, in.CategoryIDs, in.GenreIDs); err != nil {
		return nil, err
	}
	res, err := s.agg.Create(ctx, domainagg.CreateVideoInput{
		Title:         in.Title,
		Description:   in.Description,
		YearLaunched:  in.YearLaunched,
		Opened:        in.Opened,
		Rating:        in.Rating,
		Duration:      in.Duration,
		CategoryIDs:   in.CategoryIDs,
		GenreIDs:      in.GenreIDs,
		CastMemberIDs: in.CastMemberIDs,
		Uploads:       in.Uploads,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, res.Video.ID, false)
}

func (s *VideoService) Get(ctx context.Context, id uuid.UUID, includeDeleted bool) (*catalog.Video, error) {
	const op = "Catalog.Video.Get"
	row, err := s.videos.GetWithRelations(dbctx.Context{Ctx: ctx}, id, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("video not found: %s", id.String()), nil)
	}
	return row, nil
}

func (s *VideoService) List(ctx context.Context, includeDeleted bool) ([]*catalog.Video, error) {
	const op = "Catalog.Video.List"
	rows, err := s.videos.List(dbctx.Context{Ctx: ctx}, includeDeleted)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return rows, nil
}

func (s *VideoService) Update(ctx context.Context, id uuid.UUID, in UpdateVideoInput) (*catalog.Video, error) {
	const op = "Catalog.Video.Update"
	if err := validateUploads(op, in.Uploads); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, op, in.CategoryIDs, in.GenreIDs, in.CastMemberIDs); err != nil {
		return nil, err
	}
	if in.GenreIDs != nil {
		if err := s.checkGenreCategories(ctx, op, in.CategoryIDs, in.GenreIDs); err != nil {
			return nil, err
		}
	}
	res, err := s.agg.Update(ctx, domainagg.UpdateVideoInput{
		VideoID:       id,
		Title:         in.Title,
		Description:   in.Description,
		YearLaunched:  in.YearLaunched,
		Opened:        in.Opened,
		Rating:        in.Rating,
		Duration:      in.Duration,
		CategoryIDs:   in.CategoryIDs,
		GenreIDs:      in.GenreIDs,
		CastMemberIDs: in.CastMemberIDs,
		Uploads:       in.Uploads,
	})
	if err != nil {
		return nil, err
	}
	return res.Video, nil
}

func (s *VideoService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Catalog.Video.Delete"
	if _, err := s.Get(ctx, id, false); err != nil {
		return err
	}
	if err := s.videos.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return dataagg.MapError(op, err)
	}
	return nil
}

// checkReferences verifies that every referenced category, genre and cast
// member exists and is not soft deleted. Nil slices are skipped: on update
// they mean "leave the association alone".
func (s *VideoService) checkReferences(ctx context.Context, op string, categoryIDs, genreIDs, castMemberIDs []uuid.UUID) error {
	dbc := dbctx.Context{Ctx: ctx}
	if ids := dedupeIDs(categoryIDs); len(ids) > 0 {
		n, err := s.categories.CountExistingByIDs(dbc, ids)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if n != int64(len(ids)) {
			return domainagg.NewError(domainagg.CodeValidation, op, "one or more categories do not exist", nil)
		}
	}
	if ids := dedupeIDs(genreIDs); len(ids) > 0 {
		n, err := s.genres.CountExistingByIDs(dbc, ids)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if n != int64(len(ids)) {
			return domainagg.NewError(domainagg.CodeValidation, op, "one or more genres do not exist", nil)
		}
	}
	if ids := dedupeIDs(castMemberIDs); len(ids) > 0 {
		n, err := s.castMembers.CountExistingByIDs(dbc, ids)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if n != int64(len(ids)) {
			return domainagg.NewError(domainagg.CodeValidation, op, "one or more cast members do not exist", nil)
		}
	}
	return nil
}

// checkGenreCategories runs the cross-entity consistency rule: every genre in
// the payload must be linked to at least one category in the same payload.
func (s *VideoService) checkGenreCategories(ctx context.Context, op string, categoryIDs, genreIDs []uuid.UUID) error {
	genres := dedupeIDs(genreIDs)
	if len(genres) == 0 {
		return nil
	}
	ok, err := rules.GenresHaveCategories(ctx, dedupeIDs(categoryIDs), genres, s.linkFetch)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if !ok {
		return domainagg.NewError(domainagg.CodeValidation, op, "every genre must belong to at least one of the given categories", nil)
	}
	return nil
}

func validateUploads(op string, uploads map[catalog.VideoSlot]*catalog.Upload) error {
	for slot, up := range uploads {
		if catalog.SlotMaxSizeKB(slot) == 0 {
			return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown attachment slot %q", string(slot)), nil)
		}
		if up == nil || len(up.Content) == 0 {
			return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("empty upload for slot %q", string(slot)), nil)
		}
		ext := strings.ToLower(filepath.Ext(up.Name))
		if !extAllowed(slot, ext) {
			return domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("file type %q not accepted for slot %q", ext, string(slot)), nil)
		}
		maxBytes := int64(catalog.SlotMaxSizeKB(slot)) * 1024
		if int64(len(up.Content)) > maxBytes {
			return domainagg.NewError(domainagg.CodeValidation, op,
				fmt.Sprintf("upload for slot %q exceeds %d KB", string(slot), catalog.SlotMaxSizeKB(slot)), nil)
		}
	}
	return nil
}

func extAllowed(slot catalog.VideoSlot, ext string) bool {
	for _, allowed := range slotExtensions[slot] {
		if allowed == ext {
			return true
		}
	}
	return false
}
