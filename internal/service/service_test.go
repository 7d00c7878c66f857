package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/internal/dao"
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv 基于临时 SQLite 的完整服务栈
type testEnv struct {
	categories domain.CategoryRepository
	tags       domain.TagRepository
	notes      domain.NoteRepository
	snippets   domain.SnippetRepository
	lookups    domain.QuickLookupRepository
	tickets    domain.TicketRepository

	resolver    RelationResolver
	noteSvc     NoteService
	snippetSvc  SnippetService
	lookupSvc   QuickLookupService
	categorySvc CategoryService
	tagSvc      TagService
	ticketSvc   TicketService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "service.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	d := dao.New(db)
	lg := zap.NewNop()
	env := &testEnv{
		categories: dao.NewCategoryRepository(d),
		tags:       dao.NewTagRepository(d),
		notes:      dao.NewNoteRepository(d),
		snippets:   dao.NewSnippetRepository(d),
		lookups:    dao.NewQuickLookupRepository(d),
		tickets:    dao.NewTicketRepository(d),
	}
	env.resolver = NewRelationResolver(env.tags, env.categories, lg)
	env.noteSvc = NewNoteService(env.notes, env.categories, env.resolver, lg)
	env.snippetSvc = NewSnippetService(env.snippets, env.categories, env.resolver, lg)
	env.lookupSvc = NewQuickLookupService(env.lookups, env.categories, env.resolver, lg)
	env.categorySvc = NewCategoryService(env.categories, lg)
	env.tagSvc = NewTagService(env.tags, env.resolver)
	env.ticketSvc = NewTicketService(env.tickets)
	return env
}

func (e *testEnv) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := e.categories.Create(context.Background(), &domain.Category{Name: name})
	require.NoError(t, err)
	return c
}

func (e *testEnv) usage(t *testing.T, id string) int64 {
	t.Helper()
	c, err := e.categories.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c.UsageCount
}

func ref(id string) *domain.RelationRef {
	r := domain.RefID(id)
	return &r
}

func boolPtr(b bool) *bool {
	return &b
}

// isCode 按错误码比较
func isCode(err error, c *code.Code) bool {
	return errors.Is(err, c)
}
