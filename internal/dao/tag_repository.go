package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tagRepository 实现 domain.TagRepository 接口
type tagRepository struct {
	dao *Dao
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

var _ domain.TagRepository = (*tagRepository)(nil)

func tagToDomain(m *model.Tag) *domain.Tag {
	if m == nil {
		return nil
	}
	return &domain.Tag{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var m model.Tag
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return tagToDomain(&m), nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	var m model.Tag
	if err := r.dao.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, err
	}
	return tagToDomain(&m), nil
}

func (r *tagRepository) FindExisting(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	var ms []*model.Tag
	if err := r.dao.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		list = append(list, tagToDomain(m))
	}
	return list, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	var ms []*model.Tag
	if err := r.dao.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Tag, 0, len(ms))
	for _, m := range ms {
		list = append(list, tagToDomain(m))
	}
	return list, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	m := &model.Tag{
		ID:        uuid.NewString(),
		Name:      tag.Name,
		CreatedAt: time.Now(),
	}
	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return tagToDomain(m), nil
}

// Delete 删除标签及其在所有内容上的关联
func (r *tagRepository) Delete(ctx context.Context, id string) error {
	return r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{&model.NoteTag{}, &model.SnippetTag{}, &model.QuickLookupTag{}} {
			if err := tx.Where("tag_id = ?", id).Delete(table).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
