package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// categoryRepository 实现 domain.CategoryRepository 接口
type categoryRepository struct {
	dao *Dao
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(dao *Dao) domain.CategoryRepository {
	return &categoryRepository{dao: dao}
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)

// categoryToDomain 将数据库模型转换为领域模型
func categoryToDomain(m *model.Category) *domain.Category {
	if m == nil {
		return nil
	}
	return &domain.Category{
		ID:         m.ID,
		Name:       m.Name,
		UsageCount: m.UsageCount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var m model.Category
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return categoryToDomain(&m), nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var m model.Category
	if err := r.dao.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, err
	}
	return categoryToDomain(&m), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var ms []*model.Category
	if err := r.dao.WithContext(ctx).Order("name").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Category, 0, len(ms))
	for _, m := range ms {
		list = append(list, categoryToDomain(m))
	}
	return list, nil
}

// Create 创建分类，usage_count 从 0 开始
func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now()
	m := &model.Category{
		ID:         uuid.NewString(),
		Name:       category.Name,
		UsageCount: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return categoryToDomain(m), nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	res := r.dao.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{"name": category.Name, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, category.ID)
}

// Delete 删除分类，引用它的内容变为无分类（不修改 updated_at）
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		for _, table := range []any{&model.Note{}, &model.Snippet{}, &model.QuickLookup{}} {
			err := tx.Model(table).Where("category_id = ?", id).UpdateColumn("category_id", nil).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementUsage 在数据库侧原子递增，不刷新 updated_at
func (r *categoryRepository) IncrementUsage(ctx context.Context, id string) error {
	res := r.dao.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) CountReferences(ctx context.Context) ([]*domain.CategoryUsage, error) {
	totals := map[string]int64{}
	var order []string

	for _, table := range []any{&model.Note{}, &model.Snippet{}, &model.QuickLookup{}} {
		var rows []struct {
			CategoryID string
			N          int64
		}
		err := r.dao.WithContext(ctx).Model(table).
			Select("category_id, COUNT(*) AS n").
			Where("category_id IS NOT NULL").
			Group("category_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if _, ok := totals[row.CategoryID]; !ok {
				order = append(order, row.CategoryID)
			}
			totals[row.CategoryID] += row.N
		}
	}

	usage := make([]*domain.CategoryUsage, 0, len(order))
	for _, id := range order {
		usage = append(usage, &domain.CategoryUsage{CategoryID: id, References: totals[id]})
	}
	return usage, nil
}
