package domain

import "time"

// EntryKind 内容类型
type EntryKind string

const (
	KindNote    EntryKind = "note"
	KindSnippet EntryKind = "snippet"
	KindLookup  EntryKind = "lookup"
)

// Relations 内容条目共享的关联字段
type Relations struct {
	// CategoryID 为空表示无分类
	CategoryID string
	// Category 读取时展开，写入时忽略
	Category *Category
	// TagIDs 去重后的标签 ID
	TagIDs []string
	// Tags 读取时展开（笔记列表除外），写入时忽略
	Tags []*Tag
}

// Note 笔记
type Note struct {
	ID        string
	Title     string
	Content   string
	IsStarred bool
	Relations
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snippet 代码片段
type Snippet struct {
	ID          string
	Title       string
	Description string
	Language    string
	Code        string
	IsStarred   bool
	Relations
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuickLookup 速查条目
type QuickLookup struct {
	ID        string
	Title     string
	Answer    string
	IsStarred bool
	Relations
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryInput upsert 的原始输入，关联字段尚未解析
type EntryInput struct {
	Title       string
	Content     string
	Description string
	Language    string
	Code        string
	Answer      string
	IsStarred   *bool
	Category    *RelationRef
	Tags        []RelationRef
}

// ListFilter 列表过滤条件
type ListFilter struct {
	// TagID 非空时只返回包含该标签的记录
	TagID string
	// IsStarred 非空时按星标过滤
	IsStarred *bool
}
