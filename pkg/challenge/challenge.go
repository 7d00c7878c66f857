// Package challenge 编程题目接口客户端，响应原样透传
package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// maxBody 响应体读取上限
const maxBody = 4 << 20

// Config 客户端配置
type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
}

// Client 编程题目接口客户端
type Client struct {
	baseURL   string
	apiKey    string
	keyHeader string
	http      *http.Client
}

// New 创建客户端
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	header := cfg.APIKeyHeader
	if header == "" {
		header = "X-API-Key"
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		keyHeader: header,
		http:      &http.Client{Timeout: timeout},
	}
}

// Daily 今日题目
func (c *Client) Daily(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/daily", nil)
}

// Problem 按 slug 查询题目
func (c *Client) Problem(ctx context.Context, slug string) (json.RawMessage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	return c.get(ctx, "/select", url.Values{"titleSlug": {slug}})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, errors.New("challenge base url is not configured")
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request challenge api")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, errors.Wrap(err, "read challenge response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("challenge api returned %d", resp.StatusCode)
	}
	if !sonic.Valid(body) {
		return nil, errors.New("challenge api returned invalid json")
	}
	return json.RawMessage(body), nil
}
