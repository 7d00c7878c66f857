package webdav

import (
	"bytes"
	"context"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config WebDAV 连接信息
type Config struct {
	Endpoint   string
	User       string
	Password   string
	CustomPath string
}

// WebDAV WebDAV 客户端
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient 创建 WebDAV 客户端，连接在首次写入时建立
func NewClient(conf *Config) (*WebDAV, error) {
	if conf == nil || conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is required")
	}
	return &WebDAV{
		Client: gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password),
		Config: conf,
	}, nil
}

// SendContent gowebdav 不支持 context，写入期间不会响应取消
func (w *WebDAV) SendContent(ctx context.Context, key string, content []byte, _ string, _ time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileKey := path.Join("/", w.Config.CustomPath, key)

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.Client.WriteStream(fileKey, bytes.NewReader(content), os.FileMode(0644)); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

func (w *WebDAV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := w.Client.Remove(path.Join("/", w.Config.CustomPath, key))
	return errors.Wrap(err, "webdav")
}
