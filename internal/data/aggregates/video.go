package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
)

type VideoAggregateDeps struct {
	Base BaseDeps

	Videos      catalogrepos.VideoRepo
	Relations   *RelationSyncer
	Attachments *AttachmentManager
}

type videoAggregate struct {
	deps VideoAggregateDeps
}

func NewVideoAggregate(deps VideoAggregateDeps) domainagg.VideoAggregate {
	deps.Base = deps.Base.withDefaults()
	return &videoAggregate{deps: deps}
}

func (a *videoAggregate) Contract() domainagg.Contract {
	return domainagg.VideoAggregateContract
}

// Create writes the video row, its associations and its attachments as one
// logical operation. Relational writes happen inside the transaction; blob
// uploads run last, still inside the call, so that a failure anywhere before
// commit rolls the row back and deletes whatever this call uploaded.
func (a *videoAggregate) Create(ctx context.Context, in domainagg.CreateVideoInput) (domainagg.CreateVideoResult, error) {
	const op = "Catalog.Video.Create"
	var out domainagg.CreateVideoResult

	if err := a.requireDeps(op); err != nil {
		return out, err
	}
	if err := validateVideoScalars(op, in.Title, in.Description, in.YearLaunched, in.Rating, in.Duration); err != nil {
		return out, err
	}

	id := in.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, files := a.deps.Attachments.ExtractUploads(in.Uploads)

	row := &catalog.Video{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		YearLaunched: in.YearLaunched,
		Opened:       in.Opened,
		Rating:       in.Rating,
		Duration:     in.Duration,
	}
	for slot, up := range files {
		setSlotValue(row, slot, up.StorageName())
	}

	var uploaded []string
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.deps.Videos.Create(dbc, []*catalog.Video{row}); err != nil {
			return err
		}
		if in.CategoryIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoCategories, id, in.CategoryIDs); err != nil {
				return err
			}
		}
		if in.GenreIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoGenres, id, in.GenreIDs); err != nil {
				return err
			}
		}
		if in.CastMemberIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoCastMembers, id, in.CastMemberIDs); err != nil {
				return err
			}
		}
		keys, err := a.deps.Attachments.Upload(dbc.Ctx, id.String(), files)
		if err != nil {
			return err
		}
		uploaded = keys
		return nil
	})
	if err != nil {
		// The transaction is already rolled back; remove blobs this call
		// wrote (covers a commit failure after a successful upload).
		a.cleanupUploads(ctx, op, uploaded)
		return out, err
	}

	out.Video = row
	return out, nil
}

// Update applies partial scalar changes, re-syncs the requested associations
// and replaces attachment slots. Superseded blobs are pruned only after the
// transaction commits; a pre-commit failure deletes this call's uploads and
// leaves the previous blobs untouched.
func (a *videoAggregate) Update(ctx context.Context, in domainagg.UpdateVideoInput) (domainagg.UpdateVideoResult, error) {
	const op = "Catalog.Video.Update"
	var out domainagg.UpdateVideoResult

	if err := a.requireDeps(op); err != nil {
		return out, err
	}
	if in.VideoID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing video id", nil)
	}
	if in.Rating != nil && !catalog.IsValidRating(*in.Rating) {
		return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("invalid rating %q", *in.Rating), nil)
	}

	_, files := a.deps.Attachments.ExtractUploads(in.Uploads)

	var uploaded []string
	var oldKeys []string
	saved := false

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		v, err := a.deps.Videos.LockByID(dbc, in.VideoID)
		if err != nil {
			return err
		}
		if v == nil || v.ID == uuid.Nil {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("video not found: %s", in.VideoID.String()), nil)
		}

		// Remember the keys being replaced. They stay alive until after
		// commit: deleting earlier would destroy live data if this write
		// later fails.
		for slot, up := range files {
			old := v.SlotValue(slot)
			if old != "" && old != up.StorageName() {
				oldKeys = append(oldKeys, catalog.BlobKey(v.ID.String(), old))
			}
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.YearLaunched != nil {
			updates["year_launched"] = *in.YearLaunched
		}
		if in.Opened != nil {
			updates["opened"] = *in.Opened
		}
		if in.Rating != nil {
			updates["rating"] = *in.Rating
		}
		if in.Duration != nil {
			updates["duration"] = *in.Duration
		}
		for slot, up := range files {
			updates[string(slot)] = up.StorageName()
		}

		if len(updates) > 0 {
			n, err := a.deps.Videos.UpdateFields(dbc, in.VideoID, updates)
			if err != nil {
				return err
			}
			saved = n > 0
		} else {
			saved = true
		}

		if in.CategoryIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoCategories, in.VideoID, in.CategoryIDs); err != nil {
				return err
			}
		}
		if in.GenreIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoGenres, in.VideoID, in.GenreIDs); err != nil {
				return err
			}
		}
		if in.CastMemberIDs != nil {
			if _, err := a.deps.Relations.Sync(dbc, VideoCastMembers, in.VideoID, in.CastMemberIDs); err != nil {
				return err
			}
		}

		if saved {
			keys, err := a.deps.Attachments.Upload(dbc.Ctx, in.VideoID.String(), files)
			if err != nil {
				return err
			}
			uploaded = keys
		}
		return nil
	})
	if err != nil {
		a.cleanupUploads(ctx, op, uploaded)
		return out, err
	}

	// Commit succeeded: the superseded blobs are garbage now. Failing to
	// prune them does not invalidate the write.
	if saved && len(oldKeys) > 0 {
		if delErr := a.deps.Attachments.Delete(ctx, oldKeys); delErr != nil && a.deps.Base.Log != nil {
			a.deps.Base.Log.Error("failed to prune superseded attachment blobs",
				"op", op, "video_id", in.VideoID, "keys", oldKeys, "error", delErr)
		}
	}

	v, err := a.deps.Videos.GetWithRelations(dbctx.Context{Ctx: ctx}, in.VideoID, false)
	if err != nil {
		return out, MapError(op, err)
	}
	out.Saved = saved
	out.Video = v
	return out, nil
}

func (a *videoAggregate) requireDeps(op string) error {
	if a.deps.Videos == nil || a.deps.Relations == nil || a.deps.Attachments == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "video aggregate deps not configured", nil)
	}
	return nil
}

// cleanupUploads compensates a failed write by removing the blobs it
// uploaded. Best-effort: a secondary failure is logged and never replaces the
// original error.
func (a *videoAggregate) cleanupUploads(ctx context.Context, op string, keys []string) {
	if len(keys) == 0 {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := a.deps.Attachments.Delete(cctx, keys); err != nil && a.deps.Base.Log != nil {
		a.deps.Base.Log.Error("compensation failed to delete uploaded blobs",
			"op", op, "keys", keys, "error", err)
	}
}

func validateVideoScalars(op, title, description string, year int, rating string, duration int) error {
	if title == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing title", nil)
	}
	if description == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing description", nil)
	}
	if year <= 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing year_launched", nil)
	}
	if !catalog.IsValidRating(rating) {
		return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("invalid rating %q", rating), nil)
	}
	if duration <= 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing duration", nil)
	}
	return nil
}

func setSlotValue(v *catalog.Video, slot catalog.VideoSlot, name string) {
	switch slot {
	case catalog.SlotVideoFile:
		v.VideoFile = name
	case catalog.SlotTrailerFile:
		v.TrailerFile = name
	case catalog.SlotThumbFile:
		v.ThumbFile = name
	case catalog.SlotBannerFile:
		v.BannerFile = name
	}
}
