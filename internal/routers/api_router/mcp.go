package api_router

import (
	"context"
	"net/http"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// MCPTools 只读知识库工具，供 MCP 客户端（编辑器、Agent）查询
type MCPTools struct {
	app *app.App
}

// NewMCPTools 创建 MCP 工具集
func NewMCPTools(a *app.App) *MCPTools {
	return &MCPTools{app: a}
}

// NewMCPServer 注册全部工具
func NewMCPServer(a *app.App) *server.MCPServer {
	t := NewMCPTools(a)
	s := server.NewMCPServer(app.Name, app.Version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("search_lookups",
		mcp.WithDescription("Search quick lookups whose title or answer contains the term (case-insensitive)"),
		mcp.WithString("term", mcp.Required(), mcp.Description("Search term")),
		mcp.WithReadOnlyHintAnnotation(true),
	), t.SearchLookups)

	s.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes, newest first"),
		mcp.WithString("tag", mcp.Description("Only notes carrying this tag id")),
		mcp.WithBoolean("starred", mcp.Description("Only starred or unstarred notes")),
		mcp.WithReadOnlyHintAnnotation(true),
	), t.ListNotes)

	s.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Get a note with its category and tags"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithReadOnlyHintAnnotation(true),
	), t.GetNote)

	s.AddTool(mcp.NewTool("list_tickets",
		mcp.WithDescription("List tickets, optionally filtered by status (open, in_progress, done)"),
		mcp.WithString("status", mcp.Description("Ticket status")),
		mcp.WithReadOnlyHintAnnotation(true),
	), t.ListTickets)

	return s
}

// NewMCPHandler 无状态 Streamable HTTP 传输
func NewMCPHandler(a *app.App) http.Handler {
	return server.NewStreamableHTTPServer(NewMCPServer(a), server.WithStateLess(true))
}

// SearchLookups search_lookups 工具
func (t *MCPTools) SearchLookups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := t.app.QuickLookupService.Search(ctx, term)
	return t.result(ctx, "search_lookups", list, err)
}

// ListNotes list_notes 工具
func (t *MCPTools) ListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := domain.ListFilter{TagID: req.GetString("tag", "")}
	if starred, ok := req.GetArguments()["starred"].(bool); ok {
		filter.IsStarred = &starred
	}
	list, err := t.app.NoteService.List(ctx, filter)
	return t.result(ctx, "list_notes", list, err)
}

// GetNote get_note 工具
func (t *MCPTools) GetNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := t.app.NoteService.Get(ctx, id)
	return t.result(ctx, "get_note", note, err)
}

// ListTickets list_tickets 工具
func (t *MCPTools) ListTickets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.app.TicketService.List(ctx, req.GetString("status", ""))
	return t.result(ctx, "list_tickets", list, err)
}

// result 服务错误作为工具错误返回给模型，而不是协议错误
func (t *MCPTools) result(ctx context.Context, tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		t.app.Logger().Warn("mcp tool failed",
			zap.String(logger.FieldMethod, tool),
			zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
