// Package storage 快照导出目标：本地目录、S3 兼容对象存储（AWS S3 / Cloudflare R2 / MinIO）、阿里云 OSS、WebDAV
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/aliyun_oss"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/aws_s3"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/local_fs"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage/webdav"
)

type Type = string

const (
	LOCAL  Type = "localfs"
	S3     Type = "s3"
	R2     Type = "r2"
	MinIO  Type = "minio"
	OSS    Type = "oss"
	WebDAV Type = "webdav"
)

var StorageTypeMap = map[Type]bool{
	LOCAL:  true,
	S3:     true,
	R2:     true,
	MinIO:  true,
	OSS:    true,
	WebDAV: true,
}

// Config 统一存储配置，按 Type 选用对应字段
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// CustomPath 对象 key 前缀
	CustomPath string `yaml:"custom-path" default:"snapshots"`

	// S3 / R2 / MinIO / OSS
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage"`
}

// Storager 写入并删除单个对象，返回对象的完整位置
type Storager interface {
	SendContent(ctx context.Context, key string, content []byte, contentType string, modTime time.Time) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewClient 按 Type 创建存储客户端，未知类型返回 ErrorInvalidStorageType
func NewClient(ctx context.Context, config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		c, err := local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case S3:
		c, err := aws_s3.NewClient(ctx, &aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case R2:
		c, err := aws_s3.NewClient(ctx, &aws_s3.Config{
			Endpoint:        fmt.Sprintf("https://%s.r2.cloudflarestorage.com", config.AccountID),
			Region:          "auto",
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case MinIO:
		region := config.Region
		if region == "" {
			region = "us-east-1"
		}
		c, err := aws_s3.NewClient(ctx, &aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case OSS:
		c, err := aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case WebDAV:
		c, err := webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, code.ErrorInvalidStorageType.WithDetails(config.Type)
}
