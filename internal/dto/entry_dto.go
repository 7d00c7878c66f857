package dto

import (
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/pkg/timex"
)

// CategoryDTO Category data transfer object
// CategoryDTO 分类数据传输对象
type CategoryDTO struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	UsageCount int64      `json:"usageCount"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}

// TagDTO Tag data transfer object
// TagDTO 标签数据传输对象
type TagDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
// Tags 在列表接口中为空，只返回 TagIDs
type NoteDTO struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	IsStarred  bool         `json:"isStarred"`
	CategoryID string       `json:"categoryId,omitempty"`
	Category   *CategoryDTO `json:"category"`
	TagIDs     []string     `json:"tagIds"`
	Tags       []*TagDTO    `json:"tags,omitempty"`
	CreatedAt  timex.Time   `json:"createdAt"`
	UpdatedAt  timex.Time   `json:"updatedAt"`
}

// SnippetDTO Snippet data transfer object
// SnippetDTO 代码片段数据传输对象
type SnippetDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Language    string       `json:"language"`
	Code        string       `json:"code"`
	IsStarred   bool         `json:"isStarred"`
	CategoryID  string       `json:"categoryId,omitempty"`
	Category    *CategoryDTO `json:"category"`
	TagIDs      []string     `json:"tagIds"`
	Tags        []*TagDTO    `json:"tags"`
	CreatedAt   timex.Time   `json:"createdAt"`
	UpdatedAt   timex.Time   `json:"updatedAt"`
}

// QuickLookupDTO Quick lookup data transfer object
// QuickLookupDTO 速查条目数据传输对象
type QuickLookupDTO struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Answer     string       `json:"answer"`
	IsStarred  bool         `json:"isStarred"`
	CategoryID string       `json:"categoryId,omitempty"`
	Category   *CategoryDTO `json:"category"`
	TagIDs     []string     `json:"tagIds"`
	Tags       []*TagDTO    `json:"tags"`
	CreatedAt  timex.Time   `json:"createdAt"`
	UpdatedAt  timex.Time   `json:"updatedAt"`
}

// entryRelations Relation fields shared by every entry upsert request
// entryRelations 内容 upsert 请求共享的关联字段
type entryRelations struct {
	IsStarred *bool         `json:"isStarred" form:"isStarred"`
	Category  *RelationRef  `json:"category" form:"category"`
	Tags      []RelationRef `json:"tags" form:"tags"`
}

func (r entryRelations) input() domain.EntryInput {
	return domain.EntryInput{
		IsStarred: r.IsStarred,
		Category:  categoryRef(r.Category),
		Tags:      tagRefs(r.Tags),
	}
}

// NoteUpsertRequest Request parameters for creating or updating a note
// 用于创建或更新笔记的请求参数，id 缺省或为 "new" 时创建
type NoteUpsertRequest struct {
	ID      string `json:"id" form:"id"`
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
	entryRelations
}

// Input 转换为领域输入
func (r *NoteUpsertRequest) Input() domain.EntryInput {
	in := r.entryRelations.input()
	in.Title = r.Title
	in.Content = r.Content
	return in
}

// SnippetUpsertRequest Request parameters for creating or updating a snippet
// 用于创建或更新代码片段的请求参数
type SnippetUpsertRequest struct {
	ID          string `json:"id" form:"id"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Language    string `json:"language" form:"language"`
	Code        string `json:"code" form:"code"`
	entryRelations
}

// Input 转换为领域输入
func (r *SnippetUpsertRequest) Input() domain.EntryInput {
	in := r.entryRelations.input()
	in.Title = r.Title
	in.Description = r.Description
	in.Language = r.Language
	in.Code = r.Code
	return in
}

// QuickLookupUpsertRequest Request parameters for creating or updating a quick lookup
// 用于创建或更新速查条目的请求参数
type QuickLookupUpsertRequest struct {
	ID     string `json:"id" form:"id"`
	Title  string `json:"title" form:"title"`
	Answer string `json:"answer" form:"answer"`
	entryRelations
}

// Input 转换为领域输入
func (r *QuickLookupUpsertRequest) Input() domain.EntryInput {
	in := r.entryRelations.input()
	in.Title = r.Title
	in.Answer = r.Answer
	return in
}

// EntryListRequest List filter for notes / snippets / quick lookups
// EntryListRequest 列表过滤参数
type EntryListRequest struct {
	Tag     string `json:"tag" form:"tag"`         // Tag id // 标签 ID
	Starred *bool  `json:"starred" form:"starred"` // Starred flag // 星标
}

// Filter 转换为领域过滤条件
func (r *EntryListRequest) Filter() domain.ListFilter {
	return domain.ListFilter{TagID: r.Tag, IsStarred: r.Starred}
}

// IDRequest Request carrying a single record id
// IDRequest 单个记录 ID 参数
type IDRequest struct {
	ID string `json:"id" form:"id" binding:"required"`
}

// LookupSearchRequest Quick lookup search parameters
// LookupSearchRequest 速查搜索参数，空 term 由服务层校验
type LookupSearchRequest struct {
	Term string `json:"term" form:"term"`
}
