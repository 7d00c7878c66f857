package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// quickLookupRepository 实现 domain.QuickLookupRepository 接口
type quickLookupRepository struct {
	dao *Dao
}

// NewQuickLookupRepository 创建 QuickLookupRepository 实例
func NewQuickLookupRepository(dao *Dao) domain.QuickLookupRepository {
	return &quickLookupRepository{dao: dao}
}

var _ domain.QuickLookupRepository = (*quickLookupRepository)(nil)

// toModel 将领域模型转换为数据库模型
func (r *quickLookupRepository) toModel(n *domain.QuickLookup) *model.QuickLookup {
	return &model.QuickLookup{
		ID:         n.ID,
		Title:      n.Title,
		Answer:     n.Answer,
		CategoryID: optionalString(n.CategoryID),
		IsStarred:  n.IsStarred,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

// fill 转换为领域模型并加载关联，expandTags 为 false 时只返回标签 ID
func (r *quickLookupRepository) fill(ctx context.Context, ms []*model.QuickLookup, expandTags bool) ([]*domain.QuickLookup, error) {
	ids := make([]string, 0, len(ms))
	catIDs := make([]*string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
		catIDs = append(catIDs, m.CategoryID)
	}
	rel, err := loadRelations(ctx, r.dao.Db, lookupTagLink, ids, catIDs, expandTags)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.QuickLookup, 0, len(ms))
	for _, m := range ms {
		list = append(list, &domain.QuickLookup{
			ID:        m.ID,
			Title:     m.Title,
			Answer:    m.Answer,
			IsStarred: m.IsStarred,
			Relations: rel.apply(m.ID, m.CategoryID, expandTags),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return list, nil
}

// GetByID 根据ID获取速查条目，展开分类和标签
func (r *quickLookupRepository) GetByID(ctx context.Context, id string) (*domain.QuickLookup, error) {
	var m model.QuickLookup
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	list, err := r.fill(ctx, []*model.QuickLookup{&m}, true)
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *quickLookupRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.dao.WithContext(ctx).Model(&model.QuickLookup{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建速查条目，记录与标签关联在同一事务中写入
func (r *quickLookupRepository) Create(ctx context.Context, lookup *domain.QuickLookup) (*domain.QuickLookup, error) {
	now := time.Now()
	m := r.toModel(lookup)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return lookupTagLink.replace(tx, m.ID, lookup.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update 整体替换可变字段和标签集合
func (r *quickLookupRepository) Update(ctx context.Context, lookup *domain.QuickLookup) (*domain.QuickLookup, error) {
	m := r.toModel(lookup)
	m.UpdatedAt = time.Now()

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.QuickLookup{}).Where("id = ?", lookup.ID).
			Select("title", "answer", "category_id", "is_starred", "updated_at").
			Updates(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return lookupTagLink.replace(tx, lookup.ID, lookup.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, lookup.ID)
}

func (r *quickLookupRepository) UpdateStarred(ctx context.Context, id string, starred bool) (*domain.QuickLookup, error) {
	res := r.dao.WithContext(ctx).Model(&model.QuickLookup{}).Where("id = ?", id).
		Updates(map[string]any{"is_starred": starred, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete 物理删除速查条目
func (r *quickLookupRepository) Delete(ctx context.Context, id string) error {
	return r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lookupTagLink.clear(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.QuickLookup{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List 速查条目列表展开分类和标签
func (r *quickLookupRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.QuickLookup, error) {
	var ms []*model.QuickLookup
	db := applyListFilter(r.dao.WithContext(ctx).Model(&model.QuickLookup{}), lookupTagLink, filter)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.fill(ctx, ms, true)
}

// Search 标题或答案大小写不敏感地包含 term 的条目，按 updated_at 倒序
func (r *quickLookupRepository) Search(ctx context.Context, term string) ([]*domain.QuickLookup, error) {
	var ms []*model.QuickLookup
	err := r.dao.WithContext(ctx).
		Order("updated_at DESC").Order("id").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	match := foldContains(term)
	hits := ms[:0]
	for _, m := range ms {
		if match(m.Title, m.Answer) {
			hits = append(hits, m)
		}
	}
	return r.fill(ctx, hits, true)
}
