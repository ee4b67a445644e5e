package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
)

// SeedCategory inserts a category and returns it.
func SeedCategory(t *testing.T, gdb *gorm.DB, name string) *catalog.Category {
	t.Helper()
	c := &catalog.Category{ID: uuid.New(), Name: name, IsActive: true}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return c
}

// SeedGenre inserts a genre linked to the given categories.
func SeedGenre(t *testing.T, gdb *gorm.DB, name string, categories ...*catalog.Category) *catalog.Genre {
	t.Helper()
	g := &catalog.Genre{ID: uuid.New(), Name: name, IsActive: true}
	if err := gdb.Create(g).Error; err != nil {
		t.Fatalf("seed genre %q: %v", name, err)
	}
	for _, c := range categories {
		link := &catalog.CategoryGenre{CategoryID: c.ID, GenreID: g.ID}
		if err := gdb.Create(link).Error; err != nil {
			t.Fatalf("link genre %q to category %q: %v", name, c.Name, err)
		}
	}
	return g
}

// SeedCastMember inserts a cast member of the given type.
func SeedCastMember(t *testing.T, gdb *gorm.DB, name string, memberType int) *catalog.CastMember {
	t.Helper()
	m := &catalog.CastMember{ID: uuid.New(), Name: name, Type: memberType}
	if err := gdb.Create(m).Error; err != nil {
		t.Fatalf("seed cast member %q: %v", name, err)
	}
	return m
}

// SeedVideo inserts a bare video row with valid scalars.
func SeedVideo(t *testing.T, gdb *gorm.DB, title string) *catalog.Video {
	t.Helper()
	v := &catalog.Video{
		ID:           uuid.New(),
		Title:        title,
		Description:  fmt.Sprintf("%s description", title),
		YearLaunched: 2020,
		Rating:       "L",
		Duration:     90,
	}
	if err := gdb.Create(v).Error; err != nil {
		t.Fatalf("seed video %q: %v", title, err)
	}
	return v
}
