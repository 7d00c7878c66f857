package challenge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAndProblem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		switch r.URL.Path {
		case "/daily":
			_, _ = w.Write([]byte(`{"title":"Two Sum"}`))
		case "/select":
			_, _ = w.Write([]byte(`{"slug":"` + r.URL.Query().Get("titleSlug") + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/", APIKey: "secret"})

	daily, err := c.Daily(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Two Sum"}`, string(daily))

	p, err := c.Problem(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.JSONEq(t, `{"slug":"two-sum"}`, string(p))

	_, err = c.Problem(context.Background(), " ")
	assert.Error(t, err)
}

func TestFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/daily" {
			_, _ = w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Daily(context.Background())
	assert.Error(t, err)
	_, err = c.Problem(context.Background(), "x")
	assert.Error(t, err)

	_, err = New(Config{}).Daily(context.Background())
	assert.Error(t, err)
}
