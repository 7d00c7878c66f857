package storage_test

import (
	"context"
	"testing"

	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/aws_s3"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/local_fs"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/webdav"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		cfg   *storage.Config
		check func(t *testing.T, s storage.Storager)
	}{
		{
			name: "local",
			cfg:  &storage.Config{Type: storage.LOCAL, SavePath: t.TempDir()},
			check: func(t *testing.T, s storage.Storager) {
				assert.IsType(t, &local_fs.LocalFS{}, s)
			},
		},
		{
			name: "minio uses path style",
			cfg: &storage.Config{Type: storage.MinIO, Endpoint: "http://127.0.0.1:9000", BucketName: "kb",
				AccessKeyID: "minio", AccessKeySecret: "minio123"},
			check: func(t *testing.T, s storage.Storager) {
				c, ok := s.(*aws_s3.S3)
				require.True(t, ok)
				assert.True(t, c.Config.UsePathStyle)
				assert.Equal(t, "us-east-1", c.Config.Region)
			},
		},
		{
			name: "r2 endpoint from account",
			cfg: &storage.Config{Type: storage.R2, AccountID: "acc", BucketName: "kb",
				AccessKeyID: "id", AccessKeySecret: "secret"},
			check: func(t *testing.T, s storage.Storager) {
				c, ok := s.(*aws_s3.S3)
				require.True(t, ok)
				assert.Equal(t, "https://acc.r2.cloudflarestorage.com", c.Config.Endpoint)
			},
		},
		{
			name: "webdav",
			cfg:  &storage.Config{Type: storage.WebDAV, Endpoint: "http://127.0.0.1/dav"},
			check: func(t *testing.T, s storage.Storager) {
				assert.IsType(t, &webdav.WebDAV{}, s)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.NewClient(ctx, tt.cfg)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := storage.NewClient(context.Background(), &storage.Config{Type: "invalid"})
	assert.ErrorIs(t, err, code.ErrorInvalidStorageType)

	_, err = storage.NewClient(context.Background(), nil)
	assert.Error(t, err)
}
