// Package model 定义 gorm 数据库模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// Category mapped from table <category>
type Category struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name       string    `gorm:"column:name;not null;type:varchar(191);uniqueIndex:idx_category_name" json:"name"`
	UsageCount int64     `gorm:"column:usage_count;not null;default:0" json:"usageCount"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updatedAt"`
}

// Tag mapped from table <tag>
type Tag struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"column:name;not null;type:varchar(191);uniqueIndex:idx_tag_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"createdAt"`
}

// Note mapped from table <note>
type Note struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Title      string    `gorm:"column:title;not null;type:varchar(255)" json:"title"`
	Content    string    `gorm:"column:content;not null;type:text" json:"content"`
	CategoryID *string   `gorm:"column:category_id;type:varchar(36);index:idx_note_category" json:"categoryId"`
	IsStarred  bool      `gorm:"column:is_starred;not null;default:false" json:"isStarred"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;index:idx_note_updated_at" json:"updatedAt"`
}

// Snippet mapped from table <snippet>
type Snippet struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"column:title;not null;type:varchar(255)" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Language    string    `gorm:"column:language;type:varchar(64)" json:"language"`
	Code        string    `gorm:"column:code;not null;type:text" json:"code"`
	CategoryID  *string   `gorm:"column:category_id;type:varchar(36);index:idx_snippet_category" json:"categoryId"`
	IsStarred   bool      `gorm:"column:is_starred;not null;default:false" json:"isStarred"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;index:idx_snippet_updated_at" json:"updatedAt"`
}

// QuickLookup mapped from table <quick_lookup>
type QuickLookup struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Title      string    `gorm:"column:title;not null;type:varchar(255)" json:"title"`
	Answer     string    `gorm:"column:answer;not null;type:text" json:"answer"`
	CategoryID *string   `gorm:"column:category_id;type:varchar(36);index:idx_quick_lookup_category" json:"categoryId"`
	IsStarred  bool      `gorm:"column:is_starred;not null;default:false" json:"isStarred"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;index:idx_quick_lookup_updated_at" json:"updatedAt"`
}

// NoteTag mapped from table <note_tag>
type NoteTag struct {
	NoteID string `gorm:"column:note_id;primaryKey;type:varchar(36)" json:"noteId"`
	TagID  string `gorm:"column:tag_id;primaryKey;type:varchar(36);index:idx_note_tag_tag" json:"tagId"`
}

// SnippetTag mapped from table <snippet_tag>
type SnippetTag struct {
	SnippetID string `gorm:"column:snippet_id;primaryKey;type:varchar(36)" json:"snippetId"`
	TagID     string `gorm:"column:tag_id;primaryKey;type:varchar(36);index:idx_snippet_tag_tag" json:"tagId"`
}

// QuickLookupTag mapped from table <quick_lookup_tag>
type QuickLookupTag struct {
	QuickLookupID string `gorm:"column:quick_lookup_id;primaryKey;type:varchar(36)" json:"quickLookupId"`
	TagID         string `gorm:"column:tag_id;primaryKey;type:varchar(36);index:idx_quick_lookup_tag_tag" json:"tagId"`
}

// Ticket mapped from table <ticket>
type Ticket struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"column:title;not null;type:varchar(255)" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      string    `gorm:"column:status;not null;type:varchar(16);default:open;index:idx_ticket_status" json:"status"`
	Priority    string    `gorm:"column:priority;not null;type:varchar(16);default:medium" json:"priority"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;index:idx_ticket_updated_at" json:"updatedAt"`
}

// All 所有需要迁移的模型
func All() []any {
	return []any{
		&Category{},
		&Tag{},
		&Note{},
		&Snippet{},
		&QuickLookup{},
		&NoteTag{},
		&SnippetTag{},
		&QuickLookupTag{},
		&Ticket{},
	}
}

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
