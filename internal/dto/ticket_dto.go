package dto

import "github.com/haierkeys/dev-knowledge-base/pkg/timex"

// TicketDTO Ticket data transfer object
// TicketDTO 工单数据传输对象
type TicketDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   timex.Time `json:"createdAt"`
	UpdatedAt   timex.Time `json:"updatedAt"`
}

// TicketUpsertRequest Request parameters for creating or updating a ticket
// 用于创建或更新工单的请求参数，id 为 "new" 时创建
type TicketUpsertRequest struct {
	ID          string `json:"id" form:"id"`
	Title       string `json:"title" form:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" form:"description"`
	Status      string `json:"status" form:"status" binding:"omitempty,oneof=open in_progress done"`
	Priority    string `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high"`
}

// TicketListRequest Ticket list filter
// TicketListRequest 工单列表过滤参数
type TicketListRequest struct {
	Status string `json:"status" form:"status" binding:"omitempty,oneof=open in_progress done"`
}
