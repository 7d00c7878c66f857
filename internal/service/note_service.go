package service

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"go.uber.org/zap"
)

// NoteService 笔记业务服务接口
type NoteService interface {
	// Upsert id 未设置时创建，否则更新
	Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.NoteDTO, error)
	ToggleStarred(ctx context.Context, id string) (*dto.NoteDTO, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*dto.NoteDTO, error)
	// List 只返回标签 ID
	List(ctx context.Context, filter domain.ListFilter) ([]*dto.NoteDTO, error)
}

type noteService struct {
	coordinator *upsertCoordinator[domain.Note]
}

var noteKind = entryKind[domain.Note]{
	kind:     domain.KindNote,
	notFound: code.ErrorNoteNotFound,
	required: func(in domain.EntryInput) []requiredField {
		return []requiredField{{"title", in.Title}, {"content", in.Content}}
	},
	build: func(id string, in domain.EntryInput, rel domain.Relations, starred bool) *domain.Note {
		return &domain.Note{ID: id, Title: in.Title, Content: in.Content, IsStarred: starred, Relations: rel}
	},
	id:      func(n *domain.Note) string { return n.ID },
	starred: func(n *domain.Note) bool { return n.IsStarred },
}

func NewNoteService(repo domain.NoteRepository, categoryRepo domain.CategoryRepository, resolver RelationResolver, lg *zap.Logger) NoteService {
	return &noteService{
		coordinator: &upsertCoordinator[domain.Note]{
			repo:         repo,
			categoryRepo: categoryRepo,
			resolver:     resolver,
			kind:         noteKind,
			logger:       lg,
		},
	}
}

func (s *noteService) Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.NoteDTO, error) {
	n, err := s.coordinator.Upsert(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return noteToDTO(n), nil
}

func (s *noteService) ToggleStarred(ctx context.Context, id string) (*dto.NoteDTO, error) {
	n, err := s.coordinator.ToggleStarred(ctx, id)
	if err != nil {
		return nil, err
	}
	return noteToDTO(n), nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	return s.coordinator.Delete(ctx, id)
}

func (s *noteService) Get(ctx context.Context, id string) (*dto.NoteDTO, error) {
	n, err := s.coordinator.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return noteToDTO(n), nil
}

func (s *noteService) List(ctx context.Context, filter domain.ListFilter) ([]*dto.NoteDTO, error) {
	list, err := s.coordinator.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapList(list, noteToDTO), nil
}
