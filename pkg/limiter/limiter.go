// Package limiter provides token-bucket rate limiting keyed by request route.
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter 令牌桶集合
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 路由前缀
	Key string
	// FillInterval 间隔多久放入 Quantum 个令牌
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数
	Quantum int64
}

// PrefixLimiter 按路由前缀匹配令牌桶，最长前缀优先
type PrefixLimiter struct {
	*Limiter
}

func NewPrefixLimiter() Face {
	return PrefixLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 返回命中的规则前缀，未命中返回请求路径
func (l PrefixLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	best := ""
	for key := range l.limiterBuckets {
		if strings.HasPrefix(path, key) && len(key) > len(best) {
			best = key
		}
	}
	if best == "" {
		return path
	}
	return best
}

func (l PrefixLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	bucket, ok := l.limiterBuckets[key]
	return bucket, ok
}

// AddBuckets 仅在初始化阶段调用
func (l PrefixLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
