package aggregates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/data/repos/testutil"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
)

func newVideoAggForTest(t *testing.T, gdb *gorm.DB, store *fakeBlobStore) domainagg.VideoAggregate {
	t.Helper()
	log := testutil.Logger(t)
	return NewVideoAggregate(VideoAggregateDeps{
		Base:        BaseDeps{DB: gdb, Log: log},
		Videos:      catalogrepos.NewVideoRepo(gdb, log),
		Relations:   NewRelationSyncer(gdb, log),
		Attachments: NewAttachmentManager(store, log),
	})
}

func validCreateInput() domainagg.CreateVideoInput {
	return domainagg.CreateVideoInput{
		Title:        "movie",
		Description:  "movie description",
		YearLaunched: 2021,
		Rating:       "L",
		Duration:     100,
	}
}

func TestVideoCreateWritesRowRelationsAndBlobs(t *testing.T) {
	gdb := testutil.DB(t)
	store := newFakeBlobStore()
	agg := newVideoAggForTest(t, gdb, store)

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	g1 := testutil.SeedGenre(t, gdb, "genre-1", c1)
	m1 := testutil.SeedCastMember(t, gdb, "director", catalog.CastMemberTypeDirector)

	thumb := &catalog.Upload{Name: "thumb.png", Content: []byte("img")}
	in := validCreateInput()
	in.CategoryIDs = []uuid.UUID{c1.ID}
	in.GenreIDs = []uuid.UUID{g1.ID}
	in.CastMemberIDs = []uuid.UUID{m1.ID}
	in.Uploads = map[catalog.VideoSlot]*catalog.Upload{catalog.SlotThumbFile: thumb}

	res, err := agg.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Video == nil || res.Video.ID == uuid.Nil {
		t.Fatal("created video missing id")
	}
	if res.Video.ThumbFile != thumb.StorageName() {
		t.Fatalf("thumb column: want=%q got=%q", thumb.StorageName(), res.Video.ThumbFile)
	}

	if n := joinRowCount(t, gdb, VideoCategories, res.Video.ID); n != 1 {
		t.Fatalf("category rows: want=1 got=%d", n)
	}
	if n := joinRowCount(t, gdb, VideoGenres, res.Video.ID); n != 1 {
		t.Fatalf("genre rows: want=1 got=%d", n)
	}
	if n := joinRowCount(t, gdb, VideoCastMembers, res.Video.ID); n != 1 {
		t.Fatalf("cast member rows: want=1 got=%d", n)
	}

	key := catalog.BlobKey(res.Video.ID.String(), thumb.StorageName())
	if _, ok := store.objects[key]; !ok {
		t.Fatalf("blob missing at %q: %v", key, store.objects)
	}
}

func TestVideoCreateUploadFailureRollsBackEverything(t *testing.T) {
	gdb := testutil.DB(t)
	store := newFakeBlobStore()
	agg := newVideoAggForTest(t, gdb, store)

	video := &catalog.Upload{Name: "movie.mp4", Content: []byte("bits")}
	thumb := &catalog.Upload{Name: "thumb.png", Content: []byte("img")}
	in := validCreateInput()
	in.ID = uuid.New()
	in.Uploads = map[catalog.VideoSlot]*catalog.Upload{
		catalog.SlotVideoFile: video,
		catalog.SlotThumbFile: thumb,
	}
	// The video slot uploads first; failing the thumb exercises compensation
	// of the blob already written.
	store.failPut = catalog.BlobKey(in.ID.String(), thumb.StorageName())

	if _, err := agg.Create(context.Background(), in); err == nil {
		t.Fatal("expected error")
	}

	var n int64
	if err := gdb.Model(&catalog.Video{}).Where("id = ?", in.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatal("row survived a failed create")
	}
	if len(store.objects) != 0 {
		t.Fatalf("blobs left behind: %v", store.objects)
	}
}

func TestVideoCreateValidation(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newVideoAggForTest(t, gdb, newFakeBlobStore())

	cases := []struct {
		name   string
		mutate func(*domainagg.CreateVideoInput)
	}{
		{"missing_title", func(in *domainagg.CreateVideoInput) { in.Title = "" }},
		{"missing_description", func(in *domainagg.CreateVideoInput) { in.Description = "" }},
		{"missing_year", func(in *domainagg.CreateVideoInput) { in.YearLaunched = 0 }},
		{"bad_rating", func(in *domainagg.CreateVideoInput) { in.Rating = "PG-13" }},
		{"missing_duration", func(in *domainagg.CreateVideoInput) { in.Duration = 0 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := agg.Create(context.Background(), in)
			if !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("want validation error, got=%v", err)
			}
		})
	}
}

func TestVideoUpdateScalarsOnly(t *testing.T) {
	gdb := testutil.DB(t)
	store := newFakeBlobStore()
	agg := newVideoAggForTest(t, gdb, store)

	res, err := agg.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "renamed"
	out, err := agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID: res.Video.ID,
		Title:   &title,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !out.Saved {
		t.Fatal("update must report saved")
	}
	if out.Video.Title != "renamed" {
		t.Fatalf("title: want=%q got=%q", "renamed", out.Video.Title)
	}
	if len(store.puts) != 0 || len(store.deletes) != 0 {
		t.Fatalf("scalar update must not touch storage: puts=%v deletes=%v", store.puts, store.deletes)
	}
}

func TestVideoUpdateReplacesSlotAndPrunesOldBlob(t *testing.T) {
	gdb := testutil.DB(t)
	store := newFakeBlobStore()
	agg := newVideoAggForTest(t, gdb, store)

	oldThumb := &catalog.Upload{Name: "thumb.png", Content: []byte("old img")}
	in := validCreateInput()
	in.Uploads = map[catalog.VideoSlot]*catalog.Upload{catalog.SlotThumbFile: oldThumb}
	res, err := agg.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newThumb := &catalog.Upload{Name: "thumb.png", Content: []byte("new img")}
	out, err := agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID: res.Video.ID,
		Uploads: map[catalog.VideoSlot]*catalog.Upload{catalog.SlotThumbFile: newThumb},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Video.ThumbFile != newThumb.StorageName() {
		t.Fatalf("thumb column: want=%q got=%q", newThumb.StorageName(), out.Video.ThumbFile)
	}

	oldKey := catalog.BlobKey(res.Video.ID.String(), oldThumb.StorageName())
	newKey := catalog.BlobKey(res.Video.ID.String(), newThumb.StorageName())
	if _, ok := store.objects[oldKey]; ok {
		t.Fatal("superseded blob not pruned")
	}
	if _, ok := store.objects[newKey]; !ok {
		t.Fatal("replacement blob missing")
	}
}

func TestVideoUpdateFailureKeepsOldBlob(t *testing.T) {
	gdb := testutil.DB(t)
	store := newFakeBlobStore()
	agg := newVideoAggForTest(t, gdb, store)

	oldThumb := &catalog.Upload{Name: "thumb.png", Content: []byte("old img")}
	in := validCreateInput()
	in.Uploads = map[catalog.VideoSlot]*catalog.Upload{catalog.SlotThumbFile: oldThumb}
	res, err := agg.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newThumb := &catalog.Upload{Name: "thumb.png", Content: []byte("new img")}
	store.failPut = catalog.BlobKey(res.Video.ID.String(), newThumb.StorageName())

	_, err = agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID: res.Video.ID,
		Uploads: map[catalog.VideoSlot]*catalog.Upload{catalog.SlotThumbFile: newThumb},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	// The failed write must leave the previous state fully intact.
	oldKey := catalog.BlobKey(res.Video.ID.String(), oldThumb.StorageName())
	if _, ok := store.objects[oldKey]; !ok {
		t.Fatal("previous blob destroyed by failed update")
	}
	var row catalog.Video
	if err := gdb.First(&row, "id = ?", res.Video.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.ThumbFile != oldThumb.StorageName() {
		t.Fatalf("thumb column changed by failed update: %q", row.ThumbFile)
	}
}

func TestVideoUpdateAssociationSemantics(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newVideoAggForTest(t, gdb, newFakeBlobStore())

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	in := validCreateInput()
	in.CategoryIDs = []uuid.UUID{c1.ID}
	res, err := agg.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Nil slice leaves the association alone.
	title := "renamed"
	if _, err := agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID: res.Video.ID,
		Title:   &title,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := joinRowCount(t, gdb, VideoCategories, res.Video.ID); n != 1 {
		t.Fatalf("association disturbed by nil slice: rows=%d", n)
	}

	// Empty non-nil slice clears it.
	if _, err := agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID:     res.Video.ID,
		CategoryIDs: []uuid.UUID{},
	}); err != nil {
		t.Fatalf("clearing update: %v", err)
	}
	if n := joinRowCount(t, gdb, VideoCategories, res.Video.ID); n != 0 {
		t.Fatalf("association not cleared: rows=%d", n)
	}
}

func TestVideoUpdateNotFound(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newVideoAggForTest(t, gdb, newFakeBlobStore())

	title := "renamed"
	_, err := agg.Update(context.Background(), domainagg.UpdateVideoInput{
		VideoID: uuid.New(),
		Title:   &title,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got=%v", err)
	}
}
