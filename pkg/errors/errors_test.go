package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/internal/middleware"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorResponse_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"validation", code.ErrorRequiredField.WithDetails("title"), http.StatusBadRequest, 421},
		{"not found", code.ErrorNoteNotFound, http.StatusNotFound, 441},
		{"store", code.ErrorDBQuery.WithDetails("disk full"), http.StatusInternalServerError, 501},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set(middleware.TraceIDKey, "trace-1")

			ErrorResponse(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body AppError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "trace-1", body.TraceID)
			assert.False(t, body.Status)
		})
	}
}
