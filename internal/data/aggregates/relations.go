package aggregates

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

// Association names a many-to-many join relation from the owning side.
type Association struct {
	Name         string
	JoinTable    string
	OwnerColumn  string
	TargetColumn string
}

var (
	VideoCategories  = Association{Name: "categories", JoinTable: "category_video", OwnerColumn: "video_id", TargetColumn: "category_id"}
	VideoGenres      = Association{Name: "genres", JoinTable: "genre_video", OwnerColumn: "video_id", TargetColumn: "genre_id"}
	VideoCastMembers = Association{Name: "cast_members", JoinTable: "cast_member_video", OwnerColumn: "video_id", TargetColumn: "cast_member_id"}
	GenreCategories  = Association{Name: "categories", JoinTable: "category_genre", OwnerColumn: "genre_id", TargetColumn: "category_id"}
)

// SyncStats reports the writes a sync call actually issued.
type SyncStats struct {
	Inserted int
	Deleted  int
}

// RelationSyncer reconciles a join table against a requested target set with
// the minimal insert/delete diff. Join rows are created and deleted only here.
type RelationSyncer struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationSyncer(db *gorm.DB, baseLog *logger.Logger) *RelationSyncer {
	return &RelationSyncer{db: db, log: baseLog.With("component", "RelationSyncer")}
}

func (s *RelationSyncer) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return s.db.WithContext(dbc.Ctx)
}

// Sync makes the association rows for ownerID exactly equal targetIDs. Rows in
// the intersection are left untouched, so repeating a call with the same
// targets issues no writes. An empty target set clears the association. A
// target that does not exist in the related table surfaces as the join table's
// foreign-key violation.
func (s *RelationSyncer) Sync(dbc dbctx.Context, assoc Association, ownerID uuid.UUID, targetIDs []uuid.UUID) (SyncStats, error) {
	var stats SyncStats
	if ownerID == uuid.Nil {
		return stats, ValidationError(fmt.Sprintf("sync %s: missing owner id", assoc.Name))
	}
	db := s.base(dbc)

	var current []uuid.UUID
	err := db.Table(assoc.JoinTable).
		Where(assoc.OwnerColumn+" = ?", ownerID).
		Pluck(assoc.TargetColumn, &current).Error
	if err != nil {
		return stats, err
	}

	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	targetSet := make(map[uuid.UUID]struct{}, len(targetIDs))
	inserts := make([]uuid.UUID, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id == uuid.Nil {
			continue
		}
		if _, dup := targetSet[id]; dup {
			continue
		}
		targetSet[id] = struct{}{}
		if _, ok := currentSet[id]; !ok {
			inserts = append(inserts, id)
		}
	}
	deletes := make([]uuid.UUID, 0, len(current))
	for _, id := range current {
		if _, ok := targetSet[id]; !ok {
			deletes = append(deletes, id)
		}
	}

	if len(deletes) > 0 {
		res := db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s IN ?", assoc.JoinTable, assoc.OwnerColumn, assoc.TargetColumn),
			ownerID, deletes,
		)
		if res.Error != nil {
			return stats, res.Error
		}
		stats.Deleted = int(res.RowsAffected)
	}

	if len(inserts) > 0 {
		rows := make([]map[string]interface{}, 0, len(inserts))
		for _, id := range inserts {
			rows = append(rows, map[string]interface{}{
				assoc.OwnerColumn:  ownerID,
				assoc.TargetColumn: id,
			})
		}
		if err := db.Table(assoc.JoinTable).Create(rows).Error; err != nil {
			return stats, err
		}
		stats.Inserted = len(inserts)
	}

	return stats, nil
}
