package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuth("s3cret"), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/open", AdminAuth(""), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"bearer header", "/admin", map[string]string{"Authorization": "Bearer s3cret"}, http.StatusOK},
		{"raw header", "/admin", map[string]string{"Authorization": "s3cret"}, http.StatusOK},
		{"token header", "/admin", map[string]string{"Token": "s3cret"}, http.StatusOK},
		{"query", "/admin?token=s3cret", nil, http.StatusOK},
		{"wrong", "/admin", map[string]string{"Authorization": "nope"}, http.StatusUnauthorized},
		{"missing", "/admin", nil, http.StatusUnauthorized},
		{"secret not configured", "/open?token=", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	tracer := mocktracer.New()
	r := gin.New()
	r.Use(TraceMiddleware(TraceConfig{Enabled: true}), Tracing(tracer), AccessLog(zap.NewNop()))

	var fromCtx string
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = GetTraceID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(DefaultTraceIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get(DefaultTraceIDHeader))
	assert.Equal(t, "abc", fromCtx)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /ping", spans[0].OperationName)
	assert.Equal(t, "abc", spans[0].Tag("trace_id"))
}

func TestTraceMiddlewareDisabled(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware(TraceConfig{}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Empty(t, w.Header().Get(DefaultTraceIDHeader))
}

func TestCorsPreflight(t *testing.T) {
	r := gin.New()
	r.Use(Cors())
	r.POST("/api/note", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/note", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
