package service

import (
	"context"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"go.uber.org/zap"
)

// QuickLookupService 速查条目业务服务接口
type QuickLookupService interface {
	Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.QuickLookupDTO, error)
	ToggleStarred(ctx context.Context, id string) (*dto.QuickLookupDTO, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*dto.QuickLookupDTO, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*dto.QuickLookupDTO, error)
	// Search 标题或答案大小写不敏感的子串匹配，不排序打分、不分页
	Search(ctx context.Context, term string) ([]*dto.QuickLookupDTO, error)
}

type quickLookupService struct {
	repo        domain.QuickLookupRepository
	coordinator *upsertCoordinator[domain.QuickLookup]
}

var lookupKind = entryKind[domain.QuickLookup]{
	kind:     domain.KindLookup,
	notFound: code.ErrorLookupNotFound,
	required: func(in domain.EntryInput) []requiredField {
		return []requiredField{{"title", in.Title}, {"answer", in.Answer}}
	},
	build: func(id string, in domain.EntryInput, rel domain.Relations, starred bool) *domain.QuickLookup {
		return &domain.QuickLookup{ID: id, Title: in.Title, Answer: in.Answer, IsStarred: starred, Relations: rel}
	},
	id:      func(l *domain.QuickLookup) string { return l.ID },
	starred: func(l *domain.QuickLookup) bool { return l.IsStarred },
}

func NewQuickLookupService(repo domain.QuickLookupRepository, categoryRepo domain.CategoryRepository, resolver RelationResolver, lg *zap.Logger) QuickLookupService {
	return &quickLookupService{
		repo: repo,
		coordinator: &upsertCoordinator[domain.QuickLookup]{
			repo:         repo,
			categoryRepo: categoryRepo,
			resolver:     resolver,
			kind:         lookupKind,
			logger:       lg,
		},
	}
}

func (s *quickLookupService) Upsert(ctx context.Context, id domain.OptionalID, in domain.EntryInput) (*dto.QuickLookupDTO, error) {
	l, err := s.coordinator.Upsert(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return lookupToDTO(l), nil
}

func (s *quickLookupService) ToggleStarred(ctx context.Context, id string) (*dto.QuickLookupDTO, error) {
	l, err := s.coordinator.ToggleStarred(ctx, id)
	if err != nil {
		return nil, err
	}
	return lookupToDTO(l), nil
}

func (s *quickLookupService) Delete(ctx context.Context, id string) error {
	return s.coordinator.Delete(ctx, id)
}

func (s *quickLookupService) Get(ctx context.Context, id string) (*dto.QuickLookupDTO, error) {
	l, err := s.coordinator.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return lookupToDTO(l), nil
}

func (s *quickLookupService) List(ctx context.Context, filter domain.ListFilter) ([]*dto.QuickLookupDTO, error) {
	list, err := s.coordinator.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapList(list, lookupToDTO), nil
}

func (s *quickLookupService) Search(ctx context.Context, term string) ([]*dto.QuickLookupDTO, error) {
	// 空白只用于判空，匹配时保留原始 term
	if strings.TrimSpace(term) == "" {
		return nil, code.ErrorSearchTermEmpty
	}

	list, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, repoErr(err, nil)
	}
	return mapList(list, lookupToDTO), nil
}
