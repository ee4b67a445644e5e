package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/lcamargo/catalog-backend/internal/domain/catalog"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type GenreRepo interface {
	Create(dbc dbctx.Context, rows []*types.Genre) ([]*types.Genre, error)
	GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Genre, error)
	// GetWithCategories loads the categories association without filtering
	// the far side by deleted_at.
	GetWithCategories(dbc dbctx.Context, id uuid.UUID) (*types.Genre, error)
	List(dbc dbctx.Context, includeDeleted bool) ([]*types.Genre, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
	CountExistingByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	return &genreRepo{db: db, log: baseLog.With("repo", "GenreRepo")}
}

func (r *genreRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *genreRepo) Create(dbc dbctx.Context, rows []*types.Genre) ([]*types.Genre, error) {
	if len(rows) == 0 {
		return []*types.Genre{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *genreRepo) GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.Genre, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.Genre
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *genreRepo) GetWithCategories(dbc dbctx.Context, id uuid.UUID) (*types.Genre, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Genre
	err := r.base(dbc).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *genreRepo) List(dbc dbctx.Context, includeDeleted bool) ([]*types.Genre, error) {
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.Genre
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *genreRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.Genre{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *genreRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.base(dbc).Where("id = ?", id).Delete(&types.Genre{}).Error
}

func (r *genreRepo) CountExistingByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.base(dbc).
		Model(&types.Genre{}).
		Where("id IN ?", ids).
		Count(&n).Error
	return n, err
}
