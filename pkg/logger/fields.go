package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldKind 记录类型字段 (note / snippet / lookup)
	FieldKind = "kind"

	// FieldID 记录 ID 字段
	FieldID = "id"

	// FieldCategoryID 分类 ID 字段
	FieldCategoryID = "categoryId"

	// FieldMode upsert 模式字段 (create / update)
	FieldMode = "mode"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
