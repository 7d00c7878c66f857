package task

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"

	"go.uber.org/zap"
)

// SnapshotExportTask 定时导出知识库快照
type SnapshotExportTask struct {
	app  *app.App
	spec string
}

func (t *SnapshotExportTask) Name() string {
	return "kb_snapshot_export"
}

func (t *SnapshotExportTask) Spec() string {
	return t.spec
}

func (t *SnapshotExportTask) IsStartupRun() bool {
	return false
}

func (t *SnapshotExportTask) Run(ctx context.Context) error {
	defer t.app.TrackOperation()()

	res, err := t.app.SnapshotService.Export(ctx)
	if err != nil {
		return err
	}
	t.app.Logger().Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("location", res.Location),
		zap.Int("size", res.Size))
	return nil
}

// NewSnapshotExportTask 快照未启用或表达式为空时禁用
func NewSnapshotExportTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if !cfg.Snapshot.Enabled || cfg.Task.SnapshotSpec == "" {
		return nil, nil
	}
	return &SnapshotExportTask{app: appContainer, spec: cfg.Task.SnapshotSpec}, nil
}

func init() {
	Register(NewSnapshotExportTask)
}
