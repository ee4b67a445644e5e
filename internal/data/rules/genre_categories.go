// Package rules holds cross-entity consistency checks evaluated before
// composite writes are accepted.
package rules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryGenreRow is one row of the category/genre join projection.
type CategoryGenreRow struct {
	CategoryID uuid.UUID `gorm:"column:category_id"`
	GenreID    uuid.UUID `gorm:"column:genre_id"`
}

// CategoryGenreFetch returns the join rows whose category is in categoryIDs
// and whose genre is in genreIDs.
type CategoryGenreFetch func(ctx context.Context, categoryIDs, genreIDs []uuid.UUID) ([]CategoryGenreRow, error)

// GenresHaveCategories reports whether every genre in genreIDs is linked to at
// least one of the categories in categoryIDs. Empty inputs fail the check:
// a video that names genres but no categories (or the other way round) cannot
// be consistent.
func GenresHaveCategories(ctx context.Context, categoryIDs, genreIDs []uuid.UUID, fetch CategoryGenreFetch) (bool, error) {
	if len(categoryIDs) == 0 || len(genreIDs) == 0 {
		return false, nil
	}
	rows, err := fetch(ctx, categoryIDs, genreIDs)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	linked := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		linked[row.GenreID] = true
	}
	for _, id := range genreIDs {
		if !linked[id] {
			return false, nil
		}
	}
	return true, nil
}

// NewCategoryGenreFetch builds the projection over the category_genre join
// table.
func NewCategoryGenreFetch(db *gorm.DB) CategoryGenreFetch {
	return func(ctx context.Context, categoryIDs, genreIDs []uuid.UUID) ([]CategoryGenreRow, error) {
		var rows []CategoryGenreRow
		err := db.WithContext(ctx).
			Table("category_genre").
			Where("category_id IN ?", categoryIDs).
			Where("genre_id IN ?", genreIDs).
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
}
