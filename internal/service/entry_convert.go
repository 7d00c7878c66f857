package service

import (
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/timex"
)

func categoryToDTO(c *domain.Category) *dto.CategoryDTO {
	if c == nil {
		return nil
	}
	return &dto.CategoryDTO{
		ID:         c.ID,
		Name:       c.Name,
		UsageCount: c.UsageCount,
		CreatedAt:  timex.Time(c.CreatedAt),
		UpdatedAt:  timex.Time(c.UpdatedAt),
	}
}

// tagsToDTO 未展开时返回 nil
func tagsToDTO(tags []*domain.Tag) []*dto.TagDTO {
	if tags == nil {
		return nil
	}
	out := make([]*dto.TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, &dto.TagDTO{ID: t.ID, Name: t.Name, CreatedAt: timex.Time(t.CreatedAt)})
	}
	return out
}

func tagIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func noteToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		IsStarred:  n.IsStarred,
		CategoryID: n.CategoryID,
		Category:   categoryToDTO(n.Category),
		TagIDs:     tagIDs(n.TagIDs),
		Tags:       tagsToDTO(n.Tags),
		CreatedAt:  timex.Time(n.CreatedAt),
		UpdatedAt:  timex.Time(n.UpdatedAt),
	}
}

func snippetToDTO(s *domain.Snippet) *dto.SnippetDTO {
	if s == nil {
		return nil
	}
	return &dto.SnippetDTO{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Language:    s.Language,
		Code:        s.Code,
		IsStarred:   s.IsStarred,
		CategoryID:  s.CategoryID,
		Category:    categoryToDTO(s.Category),
		TagIDs:      tagIDs(s.TagIDs),
		Tags:        tagsToDTO(s.Tags),
		CreatedAt:   timex.Time(s.CreatedAt),
		UpdatedAt:   timex.Time(s.UpdatedAt),
	}
}

func lookupToDTO(l *domain.QuickLookup) *dto.QuickLookupDTO {
	if l == nil {
		return nil
	}
	return &dto.QuickLookupDTO{
		ID:         l.ID,
		Title:      l.Title,
		Answer:     l.Answer,
		IsStarred:  l.IsStarred,
		CategoryID: l.CategoryID,
		Category:   categoryToDTO(l.Category),
		TagIDs:     tagIDs(l.TagIDs),
		Tags:       tagsToDTO(l.Tags),
		CreatedAt:  timex.Time(l.CreatedAt),
		UpdatedAt:  timex.Time(l.UpdatedAt),
	}
}

func mapList[S any, D any](list []*S, fn func(*S) *D) []*D {
	out := make([]*D, 0, len(list))
	for _, v := range list {
		out = append(out, fn(v))
	}
	return out
}
