package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "kb", "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db)
}

func TestDaoType(t *testing.T) {
	assert.Empty(t, newTestDao(t).Type())

	d := New(newTestDao(t).Db, WithConfig(&DatabaseConfig{Type: "sqlite"}))
	assert.Equal(t, "sqlite", d.Type())
}

func TestFoldContains(t *testing.T) {
	assert.True(t, foldContains("go")("Go Modules"))
	assert.True(t, foldContains("ärger")("ÄRGER Über"))
	assert.True(t, foldContains("ÜBER")("", "ärger über"))
	assert.True(t, foldContains("strasse")("Straße"))
	assert.True(t, foldContains("100%")("du -sh 100%"))
	assert.False(t, foldContains(" go")("go build"))
	assert.False(t, foldContains("a_b")("aXb"))
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	repo := NewCategoryRepository(d)

	c, err := repo.Create(ctx, &domain.Category{Name: "go"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, int64(0), c.UsageCount)

	_, err = repo.Create(ctx, &domain.Category{Name: "go"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.IncrementUsage(ctx, c.ID))
	require.NoError(t, repo.IncrementUsage(ctx, c.ID))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UsageCount)
	assert.Equal(t, c.UpdatedAt.Unix(), got.UpdatedAt.Unix())

	assert.ErrorIs(t, repo.IncrementUsage(ctx, "missing"), gorm.ErrRecordNotFound)

	byName, err := repo.GetByName(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)

	renamed, err := repo.Update(ctx, &domain.Category{ID: c.ID, Name: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", renamed.Name)
	assert.Equal(t, int64(2), renamed.UsageCount)

	_, err = repo.Update(ctx, &domain.Category{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryDeleteDetachesEntries(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	cats := NewCategoryRepository(d)
	notes := NewNoteRepository(d)

	c, err := cats.Create(ctx, &domain.Category{Name: "db"})
	require.NoError(t, err)
	n, err := notes.Create(ctx, &domain.Note{Title: "t", Content: "c", Relations: domain.Relations{CategoryID: c.ID}})
	require.NoError(t, err)
	require.NotNil(t, n.Category)

	usage, err := cats.CountReferences(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, int64(1), usage[0].References)

	require.NoError(t, cats.Delete(ctx, c.ID))
	assert.ErrorIs(t, cats.Delete(ctx, c.ID), gorm.ErrRecordNotFound)

	got, err := notes.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestTagRepository(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	tags := NewTagRepository(d)
	notes := NewNoteRepository(d)

	a, err := tags.Create(ctx, &domain.Tag{Name: "alpha"})
	require.NoError(t, err)
	b, err := tags.Create(ctx, &domain.Tag{Name: "beta"})
	require.NoError(t, err)

	_, err = tags.Create(ctx, &domain.Tag{Name: "alpha"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, err := tags.FindExisting(ctx, []string{a.ID, "missing", b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := tags.FindExisting(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := notes.Create(ctx, &domain.Note{Title: "t", Content: "c", Relations: domain.Relations{TagIDs: []string{a.ID, b.ID}}})
	require.NoError(t, err)
	assert.Len(t, n.Tags, 2)

	require.NoError(t, tags.Delete(ctx, a.ID))
	got, err := notes.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, got.TagIDs)

	_, err = tags.GetByName(ctx, "alpha")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNoteRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	notes := NewNoteRepository(d)
	tags := NewTagRepository(d)

	tag, err := tags.Create(ctx, &domain.Tag{Name: "x"})
	require.NoError(t, err)

	n, err := notes.Create(ctx, &domain.Note{Title: "first", Content: "body", Relations: domain.Relations{TagIDs: []string{tag.ID}}})
	require.NoError(t, err)
	assert.False(t, n.IsStarred)
	assert.Equal(t, []string{tag.ID}, n.TagIDs)
	require.Len(t, n.Tags, 1)
	assert.Equal(t, "x", n.Tags[0].Name)

	ok, err := notes.Exists(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	n.Title = "second"
	n.TagIDs = nil
	updated, err := notes.Update(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Title)
	assert.Empty(t, updated.TagIDs)
	assert.Equal(t, n.CreatedAt.UnixMilli(), updated.CreatedAt.UnixMilli())
	assert.True(t, updated.UpdatedAt.After(n.UpdatedAt))

	starred, err := notes.UpdateStarred(ctx, n.ID, true)
	require.NoError(t, err)
	assert.True(t, starred.IsStarred)

	_, err = notes.UpdateStarred(ctx, "missing", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = notes.Update(ctx, &domain.Note{ID: "missing", Title: "a", Content: "b"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, notes.Delete(ctx, n.ID))
	_, err = notes.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, notes.Delete(ctx, n.ID), gorm.ErrRecordNotFound)
}

func TestNoteListFilters(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	notes := NewNoteRepository(d)
	tags := NewTagRepository(d)

	tag, err := tags.Create(ctx, &domain.Tag{Name: "go"})
	require.NoError(t, err)

	first, err := notes.Create(ctx, &domain.Note{Title: "a", Content: "a", Relations: domain.Relations{TagIDs: []string{tag.ID}}})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := notes.Create(ctx, &domain.Note{Title: "b", Content: "b"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = notes.UpdateStarred(ctx, first.ID, true)
	require.NoError(t, err)

	all, err := notes.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Nil(t, all[0].Tags)
	assert.Equal(t, []string{tag.ID}, all[0].TagIDs)
	assert.Equal(t, []string{}, all[1].TagIDs)

	byTag, err := notes.List(ctx, domain.ListFilter{TagID: tag.ID})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, first.ID, byTag[0].ID)

	unstarred := false
	byStar, err := notes.List(ctx, domain.ListFilter{IsStarred: &unstarred})
	require.NoError(t, err)
	require.Len(t, byStar, 1)
	assert.Equal(t, second.ID, byStar[0].ID)
}

func TestSnippetListExpandsTags(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	snippets := NewSnippetRepository(d)
	tags := NewTagRepository(d)

	tag, err := tags.Create(ctx, &domain.Tag{Name: "sql"})
	require.NoError(t, err)
	_, err = snippets.Create(ctx, &domain.Snippet{Title: "s", Language: "sql", Code: "select 1", Relations: domain.Relations{TagIDs: []string{tag.ID}}})
	require.NoError(t, err)

	list, err := snippets.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Tags, 1)
	assert.Equal(t, "sql", list[0].Tags[0].Name)
	assert.Equal(t, "select 1", list[0].Code)
}

func TestQuickLookupSearch(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	lookups := NewQuickLookupRepository(d)

	_, err := lookups.Create(ctx, &domain.QuickLookup{Title: "Git Rebase", Answer: "git rebase -i HEAD~3"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = lookups.Create(ctx, &domain.QuickLookup{Title: "Disk usage", Answer: "du -sh 100%"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = lookups.Create(ctx, &domain.QuickLookup{Title: "ÄRGER Über", Answer: "Straße"})
	require.NoError(t, err)

	tests := []struct {
		term string
		want []string
	}{
		{term: "rebase", want: []string{"Git Rebase"}},
		{term: "git", want: []string{"Git Rebase"}},
		{term: "e", want: []string{"ÄRGER Über", "Disk usage", "Git Rebase"}},
		{term: "ärger", want: []string{"ÄRGER Über"}},
		{term: "ÄRGER", want: []string{"ÄRGER Über"}},
		{term: "über", want: []string{"ÄRGER Über"}},
		{term: "STRASSE", want: []string{"ÄRGER Über"}},
		{term: " usage", want: []string{"Disk usage"}},
		{term: " Git", want: nil},
		{term: "100%", want: []string{"Disk usage"}},
		{term: "%", want: []string{"Disk usage"}},
		{term: "_", want: nil},
		{term: "kubectl", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := lookups.Search(ctx, tt.term)
			require.NoError(t, err)
			var titles []string
			for _, l := range got {
				titles = append(titles, l.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestTicketRepository(t *testing.T) {
	ctx := context.Background()
	d := newTestDao(t)
	tickets := NewTicketRepository(d)

	open, err := tickets.Create(ctx, &domain.Ticket{Title: "a", Status: domain.TicketOpen, Priority: domain.PriorityLow})
	require.NoError(t, err)
	_, err = tickets.Create(ctx, &domain.Ticket{Title: "b", Status: domain.TicketDone, Priority: domain.PriorityHigh})
	require.NoError(t, err)

	all, err := tickets.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	done, err := tickets.List(ctx, domain.TicketDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "b", done[0].Title)

	open.Status = domain.TicketInProgress
	updated, err := tickets.Update(ctx, open)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketInProgress, updated.Status)

	require.NoError(t, tickets.Delete(ctx, open.ID))
	_, err = tickets.GetByID(ctx, open.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
