package service

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/convert"
)

// TagService 标签业务服务接口
type TagService interface {
	List(ctx context.Context) ([]*dto.TagDTO, error)
	// FindOrCreate 已存在同名标签时直接返回
	FindOrCreate(ctx context.Context, name string) (*dto.TagDTO, error)
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	repo     domain.TagRepository
	resolver RelationResolver
}

func NewTagService(repo domain.TagRepository, resolver RelationResolver) TagService {
	return &tagService{repo: repo, resolver: resolver}
}

func (s *tagService) List(ctx context.Context) ([]*dto.TagDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	res := make([]*dto.TagDTO, 0, len(list))
	if err := convert.StructAssign(&res, list); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return res, nil
}

func (s *tagService) FindOrCreate(ctx context.Context, name string) (*dto.TagDTO, error) {
	t, err := s.resolver.FindOrCreateTag(ctx, name)
	if err != nil {
		return nil, err
	}
	return tagsToDTO([]*domain.Tag{t})[0], nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	return repoErr(s.repo.Delete(ctx, id), code.ErrorTagNotFound)
}
