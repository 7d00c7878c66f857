package service

import (
	"context"
	"errors"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// RelationResolver resolves tag and category references to stored ids
// RelationResolver 把标签 / 分类引用解析为已存在的 ID
type RelationResolver interface {
	// ResolveTags 返回去重后的标签 ID，保持首次出现的顺序，必要时按名称创建标签
	ResolveTags(ctx context.Context, refs []domain.RelationRef) ([]string, error)
	// ResolveCategory ref 为 nil 时返回空字符串；分类从不在这里创建
	ResolveCategory(ctx context.Context, ref *domain.RelationRef) (string, error)
	// FindOrCreateTag 按精确名称查找标签，不存在则创建
	FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, error)
}

type relationResolver struct {
	tagRepo      domain.TagRepository
	categoryRepo domain.CategoryRepository
	logger       *zap.Logger
	sf           singleflight.Group
}

func NewRelationResolver(tagRepo domain.TagRepository, categoryRepo domain.CategoryRepository, lg *zap.Logger) RelationResolver {
	return &relationResolver{
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		logger:       lg,
	}
}

func (r *relationResolver) ResolveTags(ctx context.Context, refs []domain.RelationRef) ([]string, error) {
	if len(refs) == 0 {
		return []string{}, nil
	}

	// 一次查询所有带 ID 的引用
	var candidates []string
	for _, ref := range refs {
		if ref.HasID() {
			candidates = append(candidates, strings.TrimSpace(ref.ID))
		}
	}
	existing := map[string]bool{}
	if len(candidates) > 0 {
		tags, err := r.tagRepo.FindExisting(ctx, candidates)
		if err != nil {
			return nil, repoErr(err, nil)
		}
		for _, t := range tags {
			existing[t.ID] = true
		}
	}

	ids := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		id, err := r.resolveTag(ctx, ref, existing)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *relationResolver) resolveTag(ctx context.Context, ref domain.RelationRef, existing map[string]bool) (string, error) {
	id := strings.TrimSpace(ref.ID)

	switch ref.Kind {
	case domain.RefByID:
		if id == "" {
			return "", code.ErrorTagRefInvalid
		}
		if !existing[id] {
			return "", code.ErrorTagRefNotFound.WithDetails(id)
		}
		return id, nil

	case domain.RefByObject:
		if id != "" && existing[id] {
			return id, nil
		}
		if ref.HasName() {
			tag, err := r.FindOrCreateTag(ctx, ref.Name)
			if err != nil {
				return "", err
			}
			return tag.ID, nil
		}
		if id != "" {
			return "", code.ErrorTagRefNotFound.WithDetails(id)
		}
	}
	return "", code.ErrorTagRefInvalid
}

func (r *relationResolver) FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, code.ErrorTagRefInvalid
	}

	// 同名并发请求合并为一次查找 / 创建
	// 共享执行不随首个请求取消而失败
	sfCtx := context.WithoutCancel(ctx)
	v, err, _ := r.sf.Do(name, func() (any, error) {
		tag, err := r.tagRepo.GetByName(sfCtx, name)
		if err == nil {
			return tag, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repoErr(err, nil)
		}

		tag, err = r.tagRepo.Create(sfCtx, &domain.Tag{Name: name})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 其他进程已创建同名标签
			tag, err = r.tagRepo.GetByName(sfCtx, name)
		}
		if err != nil {
			return nil, repoErr(err, nil)
		}
		r.logger.Info("tag created", zap.String(logger.FieldID, tag.ID), zap.String("name", name))
		return tag, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Tag), nil
}

func (r *relationResolver) ResolveCategory(ctx context.Context, ref *domain.RelationRef) (string, error) {
	if ref == nil {
		return "", nil
	}
	if !ref.HasID() {
		return "", code.ErrorCategoryRefInvalid
	}
	id := strings.TrimSpace(ref.ID)
	c, err := r.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return "", repoErr(err, code.ErrorCategoryRefNotFound.WithDetails(id))
	}
	return c.ID, nil
}
