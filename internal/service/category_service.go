package service

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/convert"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService 分类业务服务接口
// 分类只能通过这里创建，内容保存时不会自动创建分类
type CategoryService interface {
	List(ctx context.Context) ([]*dto.CategoryDTO, error)
	Get(ctx context.Context, id string) (*dto.CategoryDTO, error)
	// Upsert 创建或重命名，不修改 usageCount
	Upsert(ctx context.Context, id domain.OptionalID, name string) (*dto.CategoryDTO, error)
	// Delete 删除分类，引用它的内容变为无分类
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo   domain.CategoryRepository
	logger *zap.Logger
}

func NewCategoryService(repo domain.CategoryRepository, lg *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: lg}
}

func (s *categoryService) List(ctx context.Context) ([]*dto.CategoryDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	res := make([]*dto.CategoryDTO, 0, len(list))
	if err := convert.StructAssign(&res, list); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return res, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, code.ErrorCategoryNotFound)
	}
	return categoryToDTO(c), nil
}

func (s *categoryService) Upsert(ctx context.Context, id domain.OptionalID, name string) (*dto.CategoryDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, code.ErrorRequiredField.WithDetails("name")
	}

	if id.IsSet() {
		if _, err := s.repo.GetByID(ctx, id.Value()); err != nil {
			return nil, repoErr(err, code.ErrorCategoryNotFound)
		}
	}

	other, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil:
		if !id.IsSet() || other.ID != id.Value() {
			return nil, code.ErrorCategoryNameExists.WithDetails(name)
		}
		// 名称未变化
		return categoryToDTO(other), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, repoErr(err, nil)
	}

	var c *domain.Category
	if id.IsSet() {
		c, err = s.repo.Update(ctx, &domain.Category{ID: id.Value(), Name: name})
	} else {
		c, err = s.repo.Create(ctx, &domain.Category{Name: name})
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, code.ErrorCategoryNameExists.WithDetails(name)
	}
	if err != nil {
		return nil, repoErr(err, code.ErrorCategoryNotFound)
	}
	return categoryToDTO(c), nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoErr(err, code.ErrorCategoryNotFound)
	}
	s.logger.Info("category deleted", zap.String(logger.FieldCategoryID, id))
	return nil
}
