package service

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"go.uber.org/zap"
)

// SnippetService 代码片段业务服务接口
type SnippetService interface {
	Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.SnippetDTO, error)
	ToggleStarred(ctx context.Context, id string) (*dto.SnippetDTO, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*dto.SnippetDTO, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*dto.SnippetDTO, error)
}

type snippetService struct {
	coordinator *upsertCoordinator[domain.Snippet]
}

var snippetKind = entryKind[domain.Snippet]{
	kind:     domain.KindSnippet,
	notFound: code.ErrorSnippetNotFound,
	required: func(in domain.EntryInput) []requiredField {
		return []requiredField{{"title", in.Title}, {"code", in.Code}}
	},
	build: func(id string, in domain.EntryInput, rel domain.Relations, starred bool) *domain.Snippet {
		return &domain.Snippet{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Language:    in.Language,
			Code:        in.Code,
			IsStarred:   starred,
			Relations:   rel,
		}
	},
	id:      func(s *domain.Snippet) string { return s.ID },
	starred: func(s *domain.Snippet) bool { return s.IsStarred },
}

func NewSnippetService(repo domain.SnippetRepository, categoryRepo domain.CategoryRepository, resolver RelationResolver, lg *zap.Logger) SnippetService {
	return &snippetService{
		coordinator: &upsertCoordinator[domain.Snippet]{
			repo:         repo,
			categoryRepo: categoryRepo,
			resolver:     resolver,
			kind:         snippetKind,
			logger:       lg,
		},
	}
}

func (s *snippetService) Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.SnippetDTO, error) {
	sn, err := s.coordinator.Upsert(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return snippetToDTO(sn), nil
}

func (s *snippetService) ToggleStarred(ctx context.Context, id string) (*dto.SnippetDTO, error) {
	sn, err := s.coordinator.ToggleStarred(ctx, id)
	if err != nil {
		return nil, err
	}
	return snippetToDTO(sn), nil
}

func (s *snippetService) Delete(ctx context.Context, id string) error {
	return s.coordinator.Delete(ctx, id)
}

func (s *snippetService) Get(ctx context.Context, id string) (*dto.SnippetDTO, error) {
	sn, err := s.coordinator.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return snippetToDTO(sn), nil
}

func (s *snippetService) List(ctx context.Context, filter domain.ListFilter) ([]*dto.SnippetDTO, error) {
	list, err := s.coordinator.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapList(list, snippetToDTO), nil
}
