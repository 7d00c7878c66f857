package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(path string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", path, nil)
	return c
}

func TestPrefixLimiter_Key(t *testing.T) {
	l := NewPrefixLimiter().AddBuckets(
		BucketRule{Key: "/api/challenge", FillInterval: time.Second, Capacity: 5, Quantum: 5},
		BucketRule{Key: "/api/chat", FillInterval: time.Second, Capacity: 2, Quantum: 2},
	)

	assert.Equal(t, "/api/challenge", l.Key(newContext("/api/challenge/problem?slug=two-sum")))
	assert.Equal(t, "/api/chat", l.Key(newContext("/api/chat")))
	assert.Equal(t, "/api/notes", l.Key(newContext("/api/notes")))

	_, ok := l.GetBucket("/api/notes")
	assert.False(t, ok)
}

func TestPrefixLimiter_BucketDrains(t *testing.T) {
	l := NewPrefixLimiter().AddBuckets(BucketRule{Key: "/api/chat", FillInterval: time.Hour, Capacity: 2, Quantum: 1})

	bucket, ok := l.GetBucket("/api/chat")
	assert.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}
