package domain

import "context"

// 所有仓储在记录不存在时返回 gorm.ErrRecordNotFound，由 service 层转换为业务错误码

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	// Update 只修改名称
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, id string) error
	// IncrementUsage 原子地执行 usage_count = usage_count + 1
	IncrementUsage(ctx context.Context, id string) error
	// CountReferences 统计每个分类被笔记、代码片段、速查条目实际引用的次数
	CountReferences(ctx context.Context) ([]*CategoryUsage, error)
}

// TagRepository 标签仓储接口
type TagRepository interface {
	GetByID(ctx context.Context, id string) (*Tag, error)
	// GetByName 精确匹配名称
	GetByName(ctx context.Context, name string) (*Tag, error)
	// FindExisting 返回 ids 中实际存在的标签
	FindExisting(ctx context.Context, ids []string) ([]*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
	Create(ctx context.Context, tag *Tag) (*Tag, error)
	Delete(ctx context.Context, id string) error
}

// EntryRepository 笔记 / 代码片段 / 速查条目的通用仓储接口
type EntryRepository[T any] interface {
	// GetByID 返回展开分类和标签的记录
	GetByID(ctx context.Context, id string) (*T, error)
	// Exists 记录是否存在
	Exists(ctx context.Context, id string) (bool, error)
	// Create 写入记录及其标签关联
	Create(ctx context.Context, entry *T) (*T, error)
	// Update 整体替换可变字段和标签集合，保留 created_at
	Update(ctx context.Context, entry *T) (*T, error)
	// UpdateStarred 只修改星标并刷新 updated_at
	UpdateStarred(ctx context.Context, id string, starred bool) (*T, error)
	// Delete 物理删除记录及标签关联
	Delete(ctx context.Context, id string) error
	// List 按 updated_at 倒序
	List(ctx context.Context, filter ListFilter) ([]*T, error)
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	EntryRepository[Note]
}

// SnippetRepository 代码片段仓储接口
type SnippetRepository interface {
	EntryRepository[Snippet]
}

// QuickLookupRepository 速查条目仓储接口
type QuickLookupRepository interface {
	EntryRepository[QuickLookup]
	// Search 标题或答案大小写不敏感子串匹配，term 原样参与匹配
	Search(ctx context.Context, term string) ([]*QuickLookup, error)
}

// TicketRepository 工单仓储接口
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, status TicketStatus) ([]*Ticket, error)
	Create(ctx context.Context, ticket *Ticket) (*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) (*Ticket, error)
	Delete(ctx context.Context, id string) error
}
