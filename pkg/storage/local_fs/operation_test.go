package local_fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_SendContent(t *testing.T) {
	tempDir := t.TempDir()
	client, err := NewClient(&Config{SavePath: tempDir, CustomPath: "snapshots"})
	require.NoError(t, err)

	modTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	savedPath, err := client.SendContent(context.Background(), "2024/kb.json", []byte(`{"notes":[]}`), "application/json", modTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "snapshots", "2024", "kb.json"), savedPath)

	content, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":[]}`, string(content))

	info, err := os.Stat(savedPath)
	require.NoError(t, err)
	assert.WithinDuration(t, modTime, info.ModTime(), time.Second)
}

func TestLocalFS_Delete(t *testing.T) {
	client, err := NewClient(&Config{SavePath: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	savedPath, err := client.SendContent(ctx, "kb.json", []byte("{}"), "", time.Time{})
	require.NoError(t, err)

	require.NoError(t, client.Delete(ctx, "kb.json"))
	_, err = os.Stat(savedPath)
	assert.True(t, os.IsNotExist(err))

	// 再次删除不报错
	assert.NoError(t, client.Delete(ctx, "kb.json"))
}

func TestLocalFS_RequiresSavePath(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)
}
