package catalog

import (
	"context"
	"testing"

	"github.com/lcamargo/catalog-backend/internal/data/repos/testutil"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
)

func TestGenreGetWithCategoriesKeepsDeletedCategories(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewGenreRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	c1 := testutil.SeedCategory(t, gdb, "cat-1")
	c2 := testutil.SeedCategory(t, gdb, "cat-2")
	g := testutil.SeedGenre(t, gdb, "drama", c1, c2)

	cats := NewCategoryRepo(gdb, testutil.Logger(t))
	if err := cats.SoftDeleteByID(dbc, c2.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	got, err := repo.GetWithCategories(dbc, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("genre missing")
	}
	// Association traversal does not cascade the soft-delete filter.
	if len(got.Categories) != 2 {
		t.Fatalf("categories: want=2 got=%d", len(got.Categories))
	}
}
