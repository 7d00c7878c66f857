package service

import (
	"context"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/convert"
)

// TicketService 工单业务服务接口
// 工单没有标签和分类，不参与分类计数
type TicketService interface {
	List(ctx context.Context, status string) ([]*dto.TicketDTO, error)
	Get(ctx context.Context, id string) (*dto.TicketDTO, error)
	Upsert(ctx context.Context, id domain.OptionalID, params *dto.TicketUpsertRequest) (*dto.TicketDTO, error)
	Delete(ctx context.Context, id string) error
}

type ticketService struct {
	repo domain.TicketRepository
}

func NewTicketService(repo domain.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

func (s *ticketService) toDTO(t *domain.Ticket) (*dto.TicketDTO, error) {
	res := &dto.TicketDTO{}
	if err := convert.StructAssign(res, t); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return res, nil
}

func (s *ticketService) List(ctx context.Context, status string) ([]*dto.TicketDTO, error) {
	list, err := s.repo.List(ctx, domain.TicketStatus(status))
	if err != nil {
		return nil, repoErr(err, nil)
	}
	res := make([]*dto.TicketDTO, 0, len(list))
	for _, t := range list {
		d, err := s.toDTO(t)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}

func (s *ticketService) Get(ctx context.Context, id string) (*dto.TicketDTO, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, code.ErrorTicketNotFound)
	}
	return s.toDTO(t)
}

// Upsert 创建时状态默认 open、优先级默认 medium；更新时未提供的状态和优先级保持原值
func (s *ticketService) Upsert(ctx context.Context, id domain.OptionalID, params *dto.TicketUpsertRequest) (*dto.TicketDTO, error) {
	t := &domain.Ticket{
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Status:      domain.TicketStatus(params.Status),
		Priority:    domain.TicketPriority(params.Priority),
	}

	var (
		saved *domain.Ticket
		err   error
	)
	if id.IsSet() {
		existing, err := s.repo.GetByID(ctx, id.Value())
		if err != nil {
			return nil, repoErr(err, code.ErrorTicketNotFound)
		}
		if t.Title == "" {
			return nil, code.ErrorRequiredField.WithDetails("title")
		}
		t.ID = existing.ID
		if t.Status == "" {
			t.Status = existing.Status
		}
		if t.Priority == "" {
			t.Priority = existing.Priority
		}
		saved, err = s.repo.Update(ctx, t)
		if err != nil {
			return nil, repoErr(err, code.ErrorTicketNotFound)
		}
	} else {
		if t.Title == "" {
			return nil, code.ErrorRequiredField.WithDetails("title")
		}
		if t.Status == "" {
			t.Status = domain.TicketOpen
		}
		if t.Priority == "" {
			t.Priority = domain.PriorityMedium
		}
		saved, err = s.repo.Create(ctx, t)
		if err != nil {
			return nil, repoErr(err, nil)
		}
	}
	return s.toDTO(saved)
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	return repoErr(s.repo.Delete(ctx, id), code.ErrorTicketNotFound)
}
