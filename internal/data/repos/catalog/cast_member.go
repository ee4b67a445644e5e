package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/lcamargo/catalog-backend/internal/domain/catalog"
	"github.com/lcamargo/catalog-backend/internal/platform/dbctx"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type CastMemberRepo interface {
	Create(dbc dbctx.Context, rows []*types.CastMember) ([]*types.CastMember, error)
	GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.CastMember, error)
	List(dbc dbctx.Context, includeDeleted bool) ([]*types.CastMember, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
	CountExistingByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
}

type castMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCastMemberRepo(db *gorm.DB, baseLog *logger.Logger) CastMemberRepo {
	return &castMemberRepo{db: db, log: baseLog.With("repo", "CastMemberRepo")}
}

func (r *castMemberRepo) base(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *castMemberRepo) Create(dbc dbctx.Context, rows []*types.CastMember) ([]*types.CastMember, error) {
	if len(rows) == 0 {
		return []*types.CastMember{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *castMemberRepo) GetByID(dbc dbctx.Context, id uuid.UUID, includeDeleted bool) (*types.CastMember, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.CastMember
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *castMemberRepo) List(dbc dbctx.Context, includeDeleted bool) ([]*types.CastMember, error) {
	q := r.base(dbc)
	if includeDeleted {
		q = q.Unscoped()
	}
	var out []*types.CastMember
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *castMemberRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
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
		Model(&types.CastMember{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *castMemberRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.base(dbc).Where("id = ?", id).Delete(&types.CastMember{}).Error
}

func (r *castMemberRepo) CountExistingByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.base(dbc).
		Model(&types.CastMember{}).
		Where("id IN ?", ids).
		Count(&n).Error
	return n, err
}
