package domain

import "time"

// Category 分类领域模型
// UsageCount 只在带分类的内容创建时递增，更新 / 删除 / 改分类都不会调整
type Category struct {
	ID         string
	Name       string
	UsageCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Tag 标签领域模型
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CategoryUsage 分类的实际引用次数（用于巡检）
type CategoryUsage struct {
	CategoryID string
	References int64
}
