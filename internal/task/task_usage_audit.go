package task

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"
	"github.com/haierkeys/dev-knowledge-base/pkg/metrics"

	"go.uber.org/zap"
)

// UsageDrift 单个分类的计数偏差
type UsageDrift struct {
	CategoryID string
	Name       string
	Stored     int64 // usage_count
	Actual     int64 // 当前引用数
}

// Drift 存储值减去实际引用数
func (d UsageDrift) Drift() int64 {
	return d.Stored - d.Actual
}

// UsageAuditTask 分类使用次数巡检
// usage_count 只在创建时递增，更新和删除不会回退，偏差是预期行为；本任务只记录，不改写
type UsageAuditTask struct {
	app  *app.App
	spec string
}

func (t *UsageAuditTask) Name() string {
	return "category_usage_audit"
}

func (t *UsageAuditTask) Spec() string {
	return t.spec
}

func (t *UsageAuditTask) IsStartupRun() bool {
	return true
}

// Run 执行巡检
func (t *UsageAuditTask) Run(ctx context.Context) error {
	defer t.app.TrackOperation()()

	lg := t.app.Logger()
	drifts, err := AuditUsage(ctx, t.app.CategoryRepo)
	if err != nil {
		return err
	}

	drifted := 0
	for _, d := range drifts {
		metrics.UsageDrift.WithLabelValues(d.CategoryID).Set(float64(d.Drift()))
		if d.Drift() != 0 {
			drifted++
			lg.Debug("category usage drift",
				zap.String(logger.FieldTask, t.Name()),
				zap.String(logger.FieldCategoryID, d.CategoryID),
				zap.String("name", d.Name),
				zap.Int64("stored", d.Stored),
				zap.Int64("actual", d.Actual))
		}
	}

	lg.Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.Int("categories", len(drifts)),
		zap.Int("drifted", drifted))
	return nil
}

// AuditUsage 对比每个分类的 usage_count 与实际引用数，按分类列表顺序返回
func AuditUsage(ctx context.Context, repo domain.CategoryRepository) ([]UsageDrift, error) {
	categories, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := repo.CountReferences(ctx)
	if err != nil {
		return nil, err
	}

	actual := make(map[string]int64, len(refs))
	for _, r := range refs {
		actual[r.CategoryID] = r.References
	}

	drifts := make([]UsageDrift, 0, len(categories))
	for _, c := range categories {
		drifts = append(drifts, UsageDrift{
			CategoryID: c.ID,
			Name:       c.Name,
			Stored:     c.UsageCount,
			Actual:     actual[c.ID],
		})
	}
	return drifts, nil
}

// NewUsageAuditTask 表达式为空时禁用
func NewUsageAuditTask(appContainer *app.App) (Task, error) {
	spec := appContainer.Config().Task.UsageAuditSpec
	if spec == "" {
		return nil, nil
	}
	return &UsageAuditTask{app: appContainer, spec: spec}, nil
}

// init 自动注册巡检任务
func init() {
	Register(NewUsageAuditTask)
}
