package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

var _ domain.NoteRepository = (*noteRepository)(nil)

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(n *domain.Note) *model.Note {
	return &model.Note{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CategoryID: optionalString(n.CategoryID),
		IsStarred:  n.IsStarred,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

// fill 转换为领域模型并加载关联，expandTags 为 false 时只返回标签 ID
func (r *noteRepository) fill(ctx context.Context, ms []*model.Note, expandTags bool) ([]*domain.Note, error) {
	ids := make([]string, 0, len(ms))
	catIDs := make([]*string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
		catIDs = append(catIDs, m.CategoryID)
	}
	rel, err := loadRelations(ctx, r.dao.Db, noteTagLink, ids, catIDs, expandTags)
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, &domain.Note{
			ID:        m.ID,
			Title:     m.Title,
			Content:   m.Content,
			IsStarred: m.IsStarred,
			Relations: rel.apply(m.ID, m.CategoryID, expandTags),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return list, nil
}

// GetByID 根据ID获取笔记，展开分类和标签
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	list, err := r.fill(ctx, []*model.Note{&m}, true)
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *noteRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.dao.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建笔记，记录与标签关联在同一事务中写入
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now()
	m := r.toModel(note)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return noteTagLink.replace(tx, m.ID, note.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update 整体替换可变字段和标签集合
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.UpdatedAt = time.Now()

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Note{}).Where("id = ?", note.ID).
			Select("title", "content", "category_id", "is_starred", "updated_at").
			Updates(m)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return noteTagLink.replace(tx, note.ID, note.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID)
}

func (r *noteRepository) UpdateStarred(ctx context.Context, id string, starred bool) (*domain.Note, error) {
	res := r.dao.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).
		Updates(map[string]any{"is_starred": starred, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	return r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := noteTagLink.clear(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List 笔记列表只返回标签 ID，不展开标签
func (r *noteRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Note, error) {
	var ms []*model.Note
	db := applyListFilter(r.dao.WithContext(ctx).Model(&model.Note{}), noteTagLink, filter)
	if err := db.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.fill(ctx, ms, false)
}
