package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func staticFetch(rows []CategoryGenreRow) CategoryGenreFetch {
	return func(_ context.Context, categoryIDs, genreIDs []uuid.UUID) ([]CategoryGenreRow, error) {
		cats := make(map[uuid.UUID]bool, len(categoryIDs))
		for _, id := range categoryIDs {
			cats[id] = true
		}
		genres := make(map[uuid.UUID]bool, len(genreIDs))
		for _, id := range genreIDs {
			genres[id] = true
		}
		var out []CategoryGenreRow
		for _, row := range rows {
			if cats[row.CategoryID] && genres[row.GenreID] {
				out = append(out, row)
			}
		}
		return out, nil
	}
}

func TestGenresHaveCategoriesAllLinked(t *testing.T) {
	t.Parallel()

	c1, c2 := uuid.New(), uuid.New()
	g1, g2 := uuid.New(), uuid.New()
	fetch := staticFetch([]CategoryGenreRow{
		{CategoryID: c1, GenreID: g1},
		{CategoryID: c2, GenreID: g2},
	})

	ok, err := GenresHaveCategories(context.Background(), []uuid.UUID{c1, c2}, []uuid.UUID{g1, g2}, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("want ok")
	}
}

func TestGenresHaveCategoriesUnlinkedGenre(t *testing.T) {
	t.Parallel()

	c1 := uuid.New()
	g1, g2 := uuid.New(), uuid.New()
	fetch := staticFetch([]CategoryGenreRow{
		{CategoryID: c1, GenreID: g1},
		// g2 has no link to c1.
	})

	ok, err := GenresHaveCategories(context.Background(), []uuid.UUID{c1}, []uuid.UUID{g1, g2}, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("want failure: g2 is not linked to any given category")
	}
}

func TestGenresHaveCategoriesLinkOutsideGivenCategories(t *testing.T) {
	t.Parallel()

	c1, other := uuid.New(), uuid.New()
	g1 := uuid.New()
	// g1 is linked only to a category outside the payload.
	fetch := staticFetch([]CategoryGenreRow{
		{CategoryID: other, GenreID: g1},
	})

	ok, err := GenresHaveCategories(context.Background(), []uuid.UUID{c1}, []uuid.UUID{g1}, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("want failure: link is outside the given category set")
	}
}

func TestGenresHaveCategoriesEmptyInputs(t *testing.T) {
	t.Parallel()

	fetch := staticFetch(nil)
	id := uuid.New()

	for name, tc := range map[string]struct {
		categories []uuid.UUID
		genres     []uuid.UUID
	}{
		"no_categories": {nil, []uuid.UUID{id}},
		"no_genres":     {[]uuid.UUID{id}, nil},
		"both_empty":    {nil, nil},
	} {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ok, err := GenresHaveCategories(context.Background(), tc.categories, tc.genres, fetch)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Fatal("empty inputs must fail the check")
			}
		})
	}
}

func TestGenresHaveCategoriesFetchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	fetch := func(context.Context, []uuid.UUID, []uuid.UUID) ([]CategoryGenreRow, error) {
		return nil, boom
	}

	_, err := GenresHaveCategories(context.Background(), []uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()}, fetch)
	if !errors.Is(err, boom) {
		t.Fatalf("want fetch error, got=%v", err)
	}
}
