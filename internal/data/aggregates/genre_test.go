package aggregates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepos "github.com/lcamargo/catalog-backend/internal/data/repos/catalog"
	"github.com/lcamargo/catalog-backend/internal/data/repos/testutil"
	domainagg "github.com/lcamargo/catalog-backend/internal/domain/aggregates"
)

func newGenreAggForTest(t *testing.T, gdb *gorm.DB) domainagg.GenreAggregate {
	t.Helper()
	log := testutil.Logger(t)
	return NewGenreAggregate(GenreAggregateDeps{
		Base:      BaseDeps{DB: gdb, Log: log},
		Genres:    catalogrepos.NewGenreRepo(gdb, log),
		Relations: NewRelationSyncer(gdb, log),
	})
}

func TestGenreCreateSyncsCategories(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newGenreAggForTest(t, gdb)

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	c2 := testutil.SeedCategory(t, gdb, "cat-2")

	res, err := agg.Create(context.Background(), domainagg.CreateGenreInput{
		Name:        "drama",
		CategoryIDs: []uuid.UUID{c1.ID, c2.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !res.Genre.IsActive {
		t.Fatal("genre must default to active")
	}
	if n := joinRowCount(t, gdb, GenreCategories, res.Genre.ID); n != 2 {
		t.Fatalf("category rows: want=2 got=%d", n)
	}
}

func TestGenreCreateRequiresName(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newGenreAggForTest(t, gdb)

	_, err := agg.Create(context.Background(), domainagg.CreateGenreInput{})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("want validation error, got=%v", err)
	}
}

func TestGenreUpdateResyncsCategories(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newGenreAggForTest(t, gdb)

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	c2 := testutil.SeedCategory(t, gdb, "cat-2")

	res, err := agg.Create(context.Background(), domainagg.CreateGenreInput{
		Name:        "drama",
		CategoryIDs: []uuid.UUID{c1.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "melodrama"
	out, err := agg.Update(context.Background(), domainagg.UpdateGenreInput{
		GenreID:     res.Genre.ID,
		Name:        &name,
		CategoryIDs: []uuid.UUID{c2.ID},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !out.Saved {
		t.Fatal("update must report saved")
	}
	if out.Genre.Name != "melodrama" {
		t.Fatalf("name: want=%q got=%q", "melodrama", out.Genre.Name)
	}
	if len(out.Genre.Categories) != 1 || out.Genre.Categories[0].ID != c2.ID {
		t.Fatalf("categories not resynced: %+v", out.Genre.Categories)
	}
}

func TestGenreUpdateNilCategoriesUntouched(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newGenreAggForTest(t, gdb)

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	res, err := agg.Create(context.Background(), domainagg.CreateGenreInput{
		Name:        "drama",
		CategoryIDs: []uuid.UUID{c1.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	out, err := agg.Update(context.Background(), domainagg.UpdateGenreInput{
		GenreID:  res.Genre.ID,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Genre.IsActive {
		t.Fatal("is_active not updated")
	}
	if n := joinRowCount(t, gdb, GenreCategories, res.Genre.ID); n != 1 {
		t.Fatalf("association disturbed by nil slice: rows=%d", n)
	}
}

func TestGenreUpdateNotFound(t *testing.T) {
	gdb := testutil.DB(t)
	agg := newGenreAggForTest(t, gdb)

	name := "drama"
	_, err := agg.Update(context.Background(), domainagg.UpdateGenreInput{
		GenreID: uuid.New(),
		Name:    &name,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got=%v", err)
	}
}
