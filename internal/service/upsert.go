package service

import (
	"context"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"
	"github.com/haierkeys/dev-knowledge-base/pkg/metrics"

	"go.uber.org/zap"
)

const (
	modeCreate = "create"
	modeUpdate = "update"
)

// requiredField 必填字段名与取值
type requiredField struct {
	name  string
	value string
}

// entryKind 描述一种内容类型在 upsert 流程中的差异
type entryKind[T any] struct {
	kind     domain.EntryKind
	notFound *code.Code
	// required 返回需要非空校验的字段
	required func(in domain.EntryInput) []requiredField
	// build 由输入构造待持久化的记录
	build func(id string, in domain.EntryInput, rel domain.Relations, starred bool) *T
	id      func(e *T) string
	starred func(e *T) bool
}

// upsertCoordinator 笔记 / 代码片段 / 速查条目共用的创建或更新流程
//
// 创建时如带分类则递增分类使用次数；更新、切换星标、删除都不调整计数。
// 记录写入与计数递增不在同一事务中，递增失败时记录保留并返回存储错误。
type upsertCoordinator[T any] struct {
	repo         domain.EntryRepository[T]
	categoryRepo domain.CategoryRepository
	resolver     RelationResolver
	kind         entryKind[T]
	logger       *zap.Logger
}

// Upsert 模式在入口处由 id 一次确定
func (c *upsertCoordinator[T]) Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (entry *T, err error) {
	mode := modeCreate
	if id.IsSet() {
		mode = modeUpdate
	}
	defer func() {
		metrics.Upserts.WithLabelValues(string(c.kind.kind), mode, metrics.Result(err)).Inc()
	}()

	if mode == modeUpdate {
		return c.update(ctx, id.Value(), in)
	}
	return c.create(ctx, in)
}

func (c *upsertCoordinator[T]) create(ctx context.Context, in domain.EntryInput) (*T, error) {
	if err := c.validate(in); err != nil {
		return nil, err
	}
	rel, err := c.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	starred := false
	if in.IsStarred != nil {
		starred = *in.IsStarred
	}

	entry, err := c.repo.Create(ctx, c.kind.build("", in, rel, starred))
	if err != nil {
		return nil, repoErr(err, nil)
	}

	if rel.CategoryID == "" {
		return entry, nil
	}

	err = c.categoryRepo.IncrementUsage(ctx, rel.CategoryID)
	metrics.UsageIncrements.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		// 记录已经写入，不回滚
		c.logger.Error("category usage increment failed after create",
			zap.String(logger.FieldKind, string(c.kind.kind)),
			zap.String(logger.FieldCategoryID, rel.CategoryID),
			zap.Error(err),
		)
		return nil, code.ErrorUsageCountIncrement.WithDetails(err.Error())
	}

	// 重新读取以返回递增后的分类
	return c.get(ctx, c.kind.id(entry))
}

func (c *upsertCoordinator[T]) update(ctx context.Context, id string, in domain.EntryInput) (*T, error) {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, c.kind.notFound)
	}
	if err := c.validate(in); err != nil {
		return nil, err
	}
	rel, err := c.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	// 未提供 isStarred 时保留原值
	starred := c.kind.starred(existing)
	if in.IsStarred != nil {
		starred = *in.IsStarred
	}

	entry, err := c.repo.Update(ctx, c.kind.build(id, in, rel, starred))
	if err != nil {
		return nil, repoErr(err, c.kind.notFound)
	}
	return entry, nil
}

// ToggleStarred 翻转星标，不做字段校验
func (c *upsertCoordinator[T]) ToggleStarred(ctx context.Context, id string) (*T, error) {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, c.kind.notFound)
	}
	entry, err := c.repo.UpdateStarred(ctx, id, !c.kind.starred(existing))
	if err != nil {
		return nil, repoErr(err, c.kind.notFound)
	}
	return entry, nil
}

// Delete 物理删除，不修正分类计数
func (c *upsertCoordinator[T]) Delete(ctx context.Context, id string) error {
	ok, err := c.repo.Exists(ctx, id)
	if err != nil {
		return repoErr(err, nil)
	}
	if !ok {
		return c.kind.notFound
	}
	return repoErr(c.repo.Delete(ctx, id), c.kind.notFound)
}

func (c *upsertCoordinator[T]) get(ctx context.Context, id string) (*T, error) {
	entry, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, c.kind.notFound)
	}
	return entry, nil
}

func (c *upsertCoordinator[T]) list(ctx context.Context, filter domain.ListFilter) ([]*T, error) {
	list, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	return list, nil
}

func (c *upsertCoordinator[T]) validate(in domain.EntryInput) error {
	for _, f := range c.kind.required(in) {
		if strings.TrimSpace(f.value) == "" {
			return code.ErrorRequiredField.WithDetails(f.name)
		}
	}
	return nil
}

func (c *upsertCoordinator[T]) resolve(ctx context.Context, in domain.EntryInput) (domain.Relations, error) {
	categoryID, err := c.resolver.ResolveCategory(ctx, in.Category)
	if err != nil {
		return domain.Relations{}, err
	}
	tagIDs, err := c.resolver.ResolveTags(ctx, in.Tags)
	if err != nil {
		return domain.Relations{}, err
	}
	return domain.Relations{CategoryID: categoryID, TagIDs: tagIDs}, nil
}
