package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/lcamargo/catalog-backend/internal/domain/catalog"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type VideoRepo interface {
	Create(dbc dbctx.Context, rows []*types.Video) ([]*types.Video, error)
	GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Video, error)
	// LockByID takes a row lock (FOR UPDATE) where the dialect supports it.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error)
	// GetWithRelations loads associations without filtering the far side by
	// deleted_at (traversal does not cascade visibility filtering).
	GetWithRelations(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Video, error)
	List(dbc dbctx.Context, includeDeleted bool) ([]*types.Video, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (r *videoRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *videoRepo) Create(dbc dbctx.Context, rows []*types.Video) ([]*types.Video, error) {
	if len(rows) == 0 {
		return []*types.Video{}, nil
	}
	// Associations are owned by the relation syncer; creating a video writes
	// only its own row.
	if err := r.base(dbc).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *videoRepo) GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Video, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.Video
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *videoRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Video, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.base(dbc)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out []*types.Video
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *videoRepo) GetWithRelations(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Video, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.base(dbc).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("CastMembers", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.Video
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *videoRepo) List(dbc dbctx.Context, includeDeleted bool) ([]*types.Video, error) {
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.Video
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *videoRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	res := r.base(dbc).
		Model(&types.Video{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *videoRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.base(dbc).Where("id = ?", id).Delete(&types.Video{}).Error
}
