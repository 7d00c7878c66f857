package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/chat"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryUpsert(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c, err := env.categorySvc.Upsert(ctx, domain.NoID(), " Go ")
	require.NoError(t, err)
	assert.Equal(t, "Go", c.Name)
	assert.Equal(t, int64(0), c.UsageCount)

	_, err = env.categorySvc.Upsert(ctx, domain.NoID(), "Go")
	assert.True(t, isCode(err, code.ErrorCategoryNameExists))

	_, err = env.categorySvc.Upsert(ctx, domain.NoID(), "")
	assert.True(t, isCode(err, code.ErrorRequiredField))

	_, err = env.noteSvc.Upsert(ctx, domain.NoID(), domain.EntryInput{Title: "t", Content: "c", Category: ref(c.ID)})
	require.NoError(t, err)

	renamed, err := env.categorySvc.Upsert(ctx, domain.SomeID(c.ID), "Golang")
	require.NoError(t, err)
	assert.Equal(t, "Golang", renamed.Name)
	assert.Equal(t, int64(1), renamed.UsageCount)

	same, err := env.categorySvc.Upsert(ctx, domain.SomeID(c.ID), "Golang")
	require.NoError(t, err)
	assert.Equal(t, c.ID, same.ID)

	other, err := env.categorySvc.Upsert(ctx, domain.NoID(), "Rust")
	require.NoError(t, err)
	_, err = env.categorySvc.Upsert(ctx, domain.SomeID(other.ID), "Golang")
	assert.True(t, isCode(err, code.ErrorCategoryNameExists))

	_, err = env.categorySvc.Upsert(ctx, domain.SomeID("missing"), "x")
	assert.True(t, isCode(err, code.ErrorCategoryNotFound))

	list, err := env.categorySvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Golang", list[0].Name)
	assert.Equal(t, int64(1), list[0].UsageCount)
	assert.NotZero(t, list[0].CreatedAt.Unix())
}

func TestCategoryDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	c := env.category(t, "tmp")

	n, err := env.noteSvc.Upsert(ctx, domain.NoID(), domain.EntryInput{Title: "t", Content: "c", Category: ref(c.ID)})
	require.NoError(t, err)

	require.NoError(t, env.categorySvc.Delete(ctx, c.ID))
	assert.True(t, isCode(env.categorySvc.Delete(ctx, c.ID), code.ErrorCategoryNotFound))

	_, err = env.categorySvc.Get(ctx, c.ID)
	assert.True(t, code.IsNotFound(err))

	got, err := env.noteSvc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
}

func TestTagService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a, err := env.tagSvc.FindOrCreate(ctx, "http")
	require.NoError(t, err)
	b, err := env.tagSvc.FindOrCreate(ctx, " http ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = env.tagSvc.FindOrCreate(ctx, "")
	assert.True(t, code.IsValidation(err))

	list, err := env.tagSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "http", list[0].Name)

	require.NoError(t, env.tagSvc.Delete(ctx, a.ID))
	assert.True(t, isCode(env.tagSvc.Delete(ctx, a.ID), code.ErrorTagNotFound))
}

func TestTicketService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.ticketSvc.Upsert(ctx, domain.NoID(), &dto.TicketUpsertRequest{Title: "fix search"})
	require.NoError(t, err)
	assert.Equal(t, "open", created.Status)
	assert.Equal(t, "medium", created.Priority)

	updated, err := env.ticketSvc.Upsert(ctx, domain.SomeID(created.ID), &dto.TicketUpsertRequest{Title: "fix search", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, "done", updated.Status)
	assert.Equal(t, "medium", updated.Priority)

	_, err = env.ticketSvc.Upsert(ctx, domain.SomeID("missing"), &dto.TicketUpsertRequest{Title: "x"})
	assert.True(t, isCode(err, code.ErrorTicketNotFound))
	_, err = env.ticketSvc.Upsert(ctx, domain.NoID(), &dto.TicketUpsertRequest{Title: " "})
	assert.True(t, isCode(err, code.ErrorRequiredField))

	open, err := env.ticketSvc.List(ctx, "open")
	require.NoError(t, err)
	assert.Empty(t, open)
	all, err := env.ticketSvc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, env.ticketSvc.Delete(ctx, created.ID))
	_, err = env.ticketSvc.Get(ctx, created.ID)
	assert.True(t, isCode(err, code.ErrorTicketNotFound))
}

type fakeChatClient struct {
	system   string
	messages []chat.Message
	err      error
}

func (f *fakeChatClient) Complete(ctx context.Context, system string, messages []chat.Message) (string, error) {
	f.system = system
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return "pong", nil
}

func (f *fakeChatClient) Model() string {
	return "fake"
}

func TestChatService(t *testing.T) {
	ctx := context.Background()

	_, err := NewChatService(nil, ChatServiceConfig{}, zap.NewNop()).Chat(ctx, &dto.ChatRequest{})
	assert.True(t, isCode(err, code.ErrorChatDisabled))

	client := &fakeChatClient{}
	svc := NewChatService(client, ChatServiceConfig{SystemPrompt: "be brief", MaxMessages: 2}, zap.NewNop())

	res, err := svc.Chat(ctx, &dto.ChatRequest{Messages: []dto.ChatMessage{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: " "},
		{Role: "user", Content: "ping"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "pong", res.Reply)
	assert.Equal(t, "be brief", client.system)
	assert.Equal(t, []chat.Message{{Role: "assistant", Content: "two"}, {Role: "user", Content: "ping"}}, client.messages)

	_, err = svc.Chat(ctx, &dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "user", Content: ""}}})
	assert.True(t, isCode(err, code.ErrorChatMessagesRequired))

	client.err = errors.New("quota")
	_, err = svc.Chat(ctx, &dto.ChatRequest{Messages: []dto.ChatMessage{{Role: "user", Content: "x"}}})
	assert.True(t, isCode(err, code.ErrorChatRequest))
	assert.False(t, code.IsValidation(err))
}
