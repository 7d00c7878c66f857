// Package metrics 服务的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kb"

var (
	// HTTPRequests HTTP 请求计数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration HTTP 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Upserts 内容 upsert 次数，mode 为 create / update
	Upserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entry_upserts_total",
		Help:      "Entry upserts by kind, mode and result.",
	}, []string{"kind", "mode", "result"})

	// UsageIncrements 分类使用次数递增结果
	UsageIncrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_usage_increments_total",
		Help:      "Category usage count increments by result.",
	}, []string{"result"})

	// UsageDrift 巡检发现的分类计数偏差
	UsageDrift = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "category_usage_drift",
		Help:      "Stored usage count minus actual references, per category.",
	}, []string{"category"})

	// ExternalCalls 外部服务调用
	ExternalCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_calls_total",
		Help:      "Calls to external collaborators by target and result.",
	}, []string{"target", "result"})
)

// Result 把错误转换为 result 标签
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
