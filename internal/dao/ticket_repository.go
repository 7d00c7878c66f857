package dao

import (
	"context"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ticketRepository 实现 domain.TicketRepository 接口
type ticketRepository struct {
	dao *Dao
}

// NewTicketRepository 创建 TicketRepository 实例
func NewTicketRepository(dao *Dao) domain.TicketRepository {
	return &ticketRepository{dao: dao}
}

var _ domain.TicketRepository = (*ticketRepository)(nil)

func ticketToDomain(m *model.Ticket) *domain.Ticket {
	return &domain.Ticket{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.TicketStatus(m.Status),
		Priority:    domain.TicketPriority(m.Priority),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var m model.Ticket
	if err := r.dao.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return ticketToDomain(&m), nil
}

// List status 为空时返回全部工单
func (r *ticketRepository) List(ctx context.Context, status domain.TicketStatus) ([]*domain.Ticket, error) {
	db := r.dao.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", string(status))
	}
	var ms []*model.Ticket
	if err := db.Order("updated_at DESC").Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Ticket, 0, len(ms))
	for _, m := range ms {
		list = append(list, ticketToDomain(m))
	}
	return list, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	now := time.Now()
	m := &model.Ticket{
		ID:          uuid.NewString(),
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return ticketToDomain(m), nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	res := r.dao.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]any{
			"title":       ticket.Title,
			"description": ticket.Description,
			"status":      string(ticket.Status),
			"priority":    string(ticket.Priority),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, ticket.ID)
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	res := r.dao.WithContext(ctx).Where("id = ?", id).Delete(&model.Ticket{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
