package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingList is the closed set of accepted video ratings.
var RatingList = []string{"L", "10", "12", "14", "16", "18"}

// Attachment slot size caps, in kilobytes.
const (
	ThumbFileMaxSize   = 1024 * 5
	BannerFileMaxSize  = 1024 * 10
	TrailerFileMaxSize = 1024 * 1024
	VideoFileMaxSize   = 1024 * 1024 * 50
)

// VideoSlot names an attachment slot on a video. Each slot holds at most one
// stored blob reference at a time.
type VideoSlot string

const (
	SlotVideoFile   VideoSlot = "video_file"
	SlotTrailerFile VideoSlot = "trailer_file"
	SlotThumbFile   VideoSlot = "thumb_file"
	SlotBannerFile  VideoSlot = "banner_file"
)

// VideoSlots lists the declared attachment slots in stable order.
var VideoSlots = []VideoSlot{SlotVideoFile, SlotTrailerFile, SlotThumbFile, SlotBannerFile}

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	Description  string    `gorm:"column:description;type:text;not null" json:"description"`
	YearLaunched int       `gorm:"column:year_launched;not null" json:"year_launched"`
	Opened       bool      `gorm:"column:opened;not null;default:false" json:"opened"`
	Rating       string    `gorm:"column:rating;not null" json:"rating"`
	Duration     int       `gorm:"column:duration;not null" json:"duration"`

	// Attachment slots hold derived storage names; the full blob key is
	// <video id>/<storage name>.
	VideoFile   string `gorm:"column:video_file" json:"video_file,omitempty"`
	TrailerFile string `gorm:"column:trailer_file" json:"trailer_file,omitempty"`
	ThumbFile   string `gorm:"column:thumb_file" json:"thumb_file,omitempty"`
	BannerFile  string `gorm:"column:banner_file" json:"banner_file,omitempty"`

	Categories  []*Category   `gorm:"many2many:category_video" json:"categories,omitempty"`
	Genres      []*Genre      `gorm:"many2many:genre_video" json:"genres,omitempty"`
	CastMembers []*CastMember `gorm:"many2many:cast_member_video" json:"cast_members,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Video) TableName() string { return "videos" }

// SlotValue returns the stored storage name for a slot, or "".
func (v *Video) SlotValue(slot VideoSlot) string {
	switch slot {
	case SlotVideoFile:
		return v.VideoFile
	case SlotTrailerFile:
		return v.TrailerFile
	case SlotThumbFile:
		return v.ThumbFile
	case SlotBannerFile:
		return v.BannerFile
	default:
		return ""
	}
}

// SlotMaxSizeKB returns the upload size cap for a slot, in kilobytes.
func SlotMaxSizeKB(slot VideoSlot) int {
	switch slot {
	case SlotVideoFile:
		return VideoFileMaxSize
	case SlotTrailerFile:
		return TrailerFileMaxSize
	case SlotThumbFile:
		return ThumbFileMaxSize
	case SlotBannerFile:
		return BannerFileMaxSize
	default:
		return 0
	}
}

func IsValidRating(rating string) bool {
	for _, r := range RatingList {
		if r == rating {
			return true
		}
	}
	return false
}
