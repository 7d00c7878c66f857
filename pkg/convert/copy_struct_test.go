package convert

import (
	"testing"
	"time"

	"github.com/haierkeys/dev-knowledge-base/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type srcRecord struct {
	ID        string
	Name      string
	Count     int64
	CreatedAt time.Time
	Internal  string
}

type dstRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Count     int64      `json:"usageCount"`
	CreatedAt timex.Time `json:"createdAt"`
}

func TestStructAssign(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	src := srcRecord{ID: "c1", Name: "Go", Count: 3, CreatedAt: now, Internal: "x"}

	var dst dstRecord
	require.NoError(t, StructAssign(&dst, &src))

	assert.Equal(t, "c1", dst.ID)
	assert.Equal(t, "Go", dst.Name)
	assert.Equal(t, int64(3), dst.Count)
	assert.True(t, time.Time(dst.CreatedAt).Equal(now))
}
