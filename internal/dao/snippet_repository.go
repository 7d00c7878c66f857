package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// snippetRepository 实现 domain.SnippetRepository 接口
type snippetRepository struct {
	dao *Dao
}

// NewSnippetRepository 创建 SnippetRepository 实例
func NewSnippetRepository(dao *Dao) domain.SnippetRepository {
	return &snippetRepository{dao: dao}
}

var _ domain.SnippetRepository = (*snippetRepository)(nil)

// toModel 将领域模型转换为数据库模型
func (r *snippetRepository) toModel(n *domain.Snippet) *model.Snippet {
	return &model.Snippet{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Language:    n.Language,
		Code:        n.Code,
		CategoryID:  optionalString(n.CategoryID),
		IsStarred:   n.IsStarred,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// fill 转换为领域模型并加载关联，expandTags 为 false 时只返回标签 ID
func (r *snippetRepository) fill(ctx context.Context, ms []*model.Snippet, expandTags bool) ([]*domain.Snippet, error) {
	ids := make([]string, 0, len(ms))
	catIDs := make([]*string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
		catIDs = append(catIDs, m.CategoryID)
	}
	rel, err := loadRelations(ctx, r.dao.Db, snippetTagLink, ids, catIDs, expandTags)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Snippet, 0, len(ms))
	for _, m := range ms {
		list = append(list, &domain.Snippet{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Language:    m.Language,
			Code:        m.Code,
			IsStarred:   m.IsStarred,
			Relations:   rel.apply(m.ID, m.CategoryID, expandTags),
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return list, nil
}

// GetByID 根据ID获取代码片段，展开分类和标签
func (r *snippetRepository) GetByID(ctx context.Context, id string) (*domain.Snippet, error) {
	var m model.Snippet
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	list, err := r.fill(ctx, []*model.Snippet{&m}, true)
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *snippetRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.dao.WithContext(ctx).Model(&model.Snippet{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建代码片段，记录与标签关联在同一事务中写入
func (r *snippetRepository) Create(ctx context.Context, snippet *domain.Snippet) (*domain.Snippet, error) {
	now := time.Now()
	m := r.toModel(snippet)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return snippetTagLink.replace(tx, m.ID, snippet.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update 整体替换可变字段和标签集合
func (r *snippetRepository) Update(ctx context.Context, snippet *domain.Snippet) (*domain.Snippet, error) {
	m := r.toModel(snippet)
	m.UpdatedAt = time.Now()

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Snippet{}).Where("id = ?", snippet.ID).
			Select("title", "description", "language", "code", "category_id", "is_starred", "updated_at").
			Updates(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return snippetTagLink.replace(tx, snippet.ID, snippet.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, snippet.ID)
}

func (r *snippetRepository) UpdateStarred(ctx context.Context, id string, starred bool) (*domain.Snippet, error) {
	res := r.dao.WithContext(ctx).Model(&model.Snippet{}).Where("id = ?", id).
		Updates(map[string]any{"is_starred": starred, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete 物理删除代码片段
func (r *snippetRepository) Delete(ctx context.Context, id string) error {
	return r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := snippetTagLink.clear(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Snippet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List 代码片段列表展开分类和标签
func (r *snippetRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Snippet, error) {
	var ms []*model.Snippet
	db := applyListFilter(r.dao.WithContext(ctx).Model(&model.Snippet{}), snippetTagLink, filter)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.fill(ctx, ms, true)
}
