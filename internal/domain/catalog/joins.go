package catalog

import "github.com/google/uuid"

// Join rows have no independent identity: they are created and deleted only by
// the relation syncer, never updated in place.

type CategoryVideo struct {
	VideoID    uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
}

func (CategoryVideo) TableName() string { return "category_video" }

type GenreVideo struct {
	VideoID uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	GenreID uuid.UUID `gorm:"column:genre_id;type:uuid;primaryKey"`
}

func (GenreVideo) TableName() string { return "genre_video" }

type CastMemberVideo struct {
	VideoID      uuid.UUID `gorm:"column:video_id;type:uuid;primaryKey"`
	CastMemberID uuid.UUID `gorm:"column:cast_member_id;type:uuid;primaryKey"`
}

func (CastMemberVideo) TableName() string { return "cast_member_video" }

type CategoryGenre struct {
	GenreID    uuid.UUID `gorm:"column:genre_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
}

func (CategoryGenre) TableName() string { return "category_genre" }
