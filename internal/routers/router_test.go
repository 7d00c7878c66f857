package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dao"
	"github.com/haierkeys/dev-knowledge-base/internal/model"
	"github.com/haierkeys/dev-knowledge-base/pkg/chat"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage"
	"github.com/haierkeys/dev-knowledge-base/pkg/validator"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "router-test-secret"

var uni *ut.UniversalTranslator

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	uni, err = validator.Init()
	if err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeChat struct {
	got []chat.Message
	err error
}

func (f *fakeChat) Complete(_ context.Context, _ string, messages []chat.Message) (string, error) {
	f.got = messages
	if f.err != nil {
		return "", f.err
	}
	return "pong", nil
}

func (f *fakeChat) Model() string { return "fake" }

type fakeChallenge struct{}

func (fakeChallenge) Daily(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"questionTitle":"Two Sum"}`), nil
}

func (fakeChallenge) Problem(_ context.Context, slug string) (json.RawMessage, error) {
	if slug == "broken" {
		return nil, errors.New("upstream 502")
	}
	return json.RawMessage(`{"titleSlug":"` + slug + `"}`), nil
}

func newTestRouter(t *testing.T, opts ...app.Option) (*gin.Engine, *app.App) {
	t.Helper()
	cfg, err := app.ParseConfig(nil)
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "router.db")
	cfg.Security.AdminSecret = testSecret

	db, err := dao.NewDBEngineWithConfig(cfg.DaoConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	opts = append([]app.Option{app.WithChatClient(nil), app.WithChallengeClient(fakeChallenge{})}, opts...)
	a, err := app.NewApp(cfg, zap.NewNop(), db, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return NewRouter(a, uni), a
}

type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

type listData struct {
	List  []map[string]any `json:"list"`
	Total int              `json:"total"`
}

func do(t *testing.T, r http.Handler, method, path string, body any, admin bool) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testSecret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestNoteLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := do(t, r, http.MethodPost, "/api/category", map[string]any{"name": "Go"}, true)
	require.Equal(t, http.StatusOK, status, env.Message)
	category := decode[map[string]any](t, env.Data)
	categoryID := category["id"].(string)
	assert.EqualValues(t, 0, category["usageCount"])

	status, env = do(t, r, http.MethodPost, "/api/note", map[string]any{
		"title":    "Context cancellation",
		"content":  "select on ctx.Done()",
		"category": categoryID,
		"tags":     []any{map[string]any{"name": "concurrency"}, map[string]any{"name": "stdlib"}},
	}, true)
	require.Equal(t, http.StatusOK, status, env.Message)
	note := decode[map[string]any](t, env.Data)
	noteID := note["id"].(string)
	assert.Len(t, note["tags"], 2)

	status, env = do(t, r, http.MethodGet, "/api/category?id="+categoryID, nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decode[map[string]any](t, env.Data)["usageCount"])

	status, env = do(t, r, http.MethodGet, "/api/tags", nil, false)
	require.Equal(t, http.StatusOK, status)
	tags := decode[listData](t, env.Data)
	assert.Equal(t, 2, tags.Total)

	// update keeps the usage count
	status, _ = do(t, r, http.MethodPost, "/api/note", map[string]any{
		"id":       noteID,
		"title":    "Context cancellation",
		"content":  "select on ctx.Done() and return ctx.Err()",
		"category": categoryID,
	}, true)
	require.Equal(t, http.StatusOK, status)
	_, env = do(t, r, http.MethodGet, "/api/category?id="+categoryID, nil, false)
	assert.EqualValues(t, 1, decode[map[string]any](t, env.Data)["usageCount"])

	status, env = do(t, r, http.MethodPut, "/api/note/star?id="+noteID, nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, env.Data)["isStarred"])

	status, env = do(t, r, http.MethodGet, "/api/notes?starred=true", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[listData](t, env.Data).Total)

	status, env = do(t, r, http.MethodGet, "/api/notes?starred=false", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[listData](t, env.Data).Total)

	status, _ = do(t, r, http.MethodDelete, "/api/note?id="+noteID, nil, true)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodGet, "/api/note?id="+noteID, nil, false)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Status)
}

func TestErrorMapping(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		admin  bool
		want   int
	}{
		{"missing title", http.MethodPost, "/api/note", map[string]any{"content": "x"}, true, http.StatusBadRequest},
		{"unknown category", http.MethodPost, "/api/snippet", map[string]any{"title": "t", "code": "c", "category": "nope"}, true, http.StatusBadRequest},
		{"malformed tag", http.MethodPost, "/api/lookup", map[string]any{"title": "t", "answer": "a", "tags": []any{42}}, true, http.StatusBadRequest},
		{"missing snippet", http.MethodGet, "/api/snippet?id=missing", nil, false, http.StatusNotFound},
		{"missing ticket", http.MethodDelete, "/api/ticket?id=missing", nil, true, http.StatusNotFound},
		{"missing id", http.MethodGet, "/api/lookup", nil, false, http.StatusBadRequest},
		{"no admin secret", http.MethodPost, "/api/note", map[string]any{"title": "t", "content": "c"}, false, http.StatusUnauthorized},
		{"empty search term", http.MethodGet, "/api/lookups/search?term=", nil, false, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nothing", nil, false, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, r, tt.method, tt.path, tt.body, tt.admin)
			assert.Equal(t, tt.want, status, env.Message)
			assert.False(t, env.Status)
		})
	}
}

func TestLookupSearch(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, l := range []map[string]any{
		{"title": "Git undo last commit", "answer": "git reset --soft HEAD~1"},
		{"title": "List open ports", "answer": "ss -tulpn"},
	} {
		status, env := do(t, r, http.MethodPost, "/api/lookup", l, true)
		require.Equal(t, http.StatusOK, status, env.Message)
	}

	status, env := do(t, r, http.MethodGet, "/api/lookups/search?term=GIT", nil, false)
	require.Equal(t, http.StatusOK, status)
	found := decode[listData](t, env.Data)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "Git undo last commit", found.List[0]["title"])

	status, env = do(t, r, http.MethodGet, "/api/lookups/search?term=TULPN", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[listData](t, env.Data).Total)
}

func TestTicketNewAndFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := do(t, r, http.MethodPost, "/api/ticket", map[string]any{"id": "new", "title": "Flaky test"}, true)
	require.Equal(t, http.StatusOK, status, env.Message)
	ticket := decode[map[string]any](t, env.Data)
	assert.Equal(t, "open", ticket["status"])
	assert.Equal(t, "medium", ticket["priority"])

	status, _ = do(t, r, http.MethodPost, "/api/ticket", map[string]any{"id": ticket["id"], "title": "Flaky test", "status": "done"}, true)
	require.Equal(t, http.StatusOK, status)

	_, env = do(t, r, http.MethodGet, "/api/tickets?status=open", nil, false)
	assert.Equal(t, 0, decode[listData](t, env.Data).Total)
	_, env = do(t, r, http.MethodGet, "/api/tickets?status=done", nil, false)
	assert.Equal(t, 1, decode[listData](t, env.Data).Total)

	status, _ = do(t, r, http.MethodPost, "/api/ticket", map[string]any{"title": "x", "status": "blocked"}, true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	status, _ := do(t, r, http.MethodPost, "/api/admin/check", nil, true)
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, r, http.MethodPost, "/api/admin/check", nil, false)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthAndVersion(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := do(t, r, http.MethodGet, "/api/health", nil, false)
	require.Equal(t, http.StatusOK, status)
	health := decode[map[string]any](t, env.Data)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "sqlite", health["driver"])

	status, env = do(t, r, http.MethodGet, "/api/version", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, app.Version, decode[map[string]any](t, env.Data)["version"])
}

func TestChat(t *testing.T) {
	body := map[string]any{"messages": []any{map[string]any{"role": "user", "content": "ping"}}}

	r, _ := newTestRouter(t)
	status, _ := do(t, r, http.MethodPost, "/api/chat", body, false)
	assert.Equal(t, http.StatusInternalServerError, status)

	fc := &fakeChat{}
	r, _ = newTestRouter(t, app.WithChatClient(fc))
	status, env := do(t, r, http.MethodPost, "/api/chat", body, false)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "pong", decode[map[string]any](t, env.Data)["reply"])
	require.Len(t, fc.got, 1)

	status, _ = do(t, r, http.MethodPost, "/api/chat", map[string]any{"messages": []any{}}, false)
	assert.Equal(t, http.StatusBadRequest, status)

	fc.err = errors.New("quota exceeded")
	status, _ = do(t, r, http.MethodPost, "/api/chat", body, false)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestSnapshotExport(t *testing.T) {
	r, _ := newTestRouter(t)
	status, env := do(t, r, http.MethodPost, "/api/admin/snapshot", nil, true)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, code.ErrorSnapshotDisabled.Code(), env.Code)

	dir := t.TempDir()
	store, err := storage.NewClient(context.Background(), &storage.Config{Type: storage.LOCAL, SavePath: dir})
	require.NoError(t, err)
	r, _ = newTestRouter(t, app.WithSnapshotStorage(store))

	status, _ = do(t, r, http.MethodPost, "/api/category", map[string]any{"name": "go"}, true)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, r, http.MethodPost, "/api/admin/snapshot", nil, false)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = do(t, r, http.MethodPost, "/api/admin/snapshot", nil, true)
	require.Equal(t, http.StatusOK, status, env.Message)
	res := decode[map[string]any](t, env.Data)
	assert.FileExists(t, res["location"].(string))
	assert.EqualValues(t, 1, res["counts"].(map[string]any)["categories"])
}

func TestChallenge(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := do(t, r, http.MethodGet, "/api/challenge/daily", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"questionTitle":"Two Sum"}`, string(env.Data))

	status, env = do(t, r, http.MethodGet, "/api/challenge/problem?slug=two-sum", nil, false)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"titleSlug":"two-sum"}`, string(env.Data))

	status, _ = do(t, r, http.MethodGet, "/api/challenge/problem?slug=broken", nil, false)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestMCPInitialize(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/mcp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), app.Name)
}

func TestPrivateRouterMetrics(t *testing.T) {
	r := NewPrivateRouter("release", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
