package dao

import (
	"context"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// foldContains 返回按 Unicode 大小写折叠后的子串匹配函数，任一字段包含 term 即命中
// SQLite 的 LOWER() 只处理 ASCII，匹配统一在这里完成
func foldContains(term string) func(fields ...string) bool {
	caser := cases.Fold()
	folded := caser.String(term)
	return func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(caser.String(f), folded) {
				return true
			}
		}
		return false
	}
}

// tagLink 描述某类内容的标签关联表
type tagLink struct {
	table    any
	ownerCol string
	rows     func(ownerID string, tagIDs []string) any
}

var (
	noteTagLink = tagLink{
		table:    &model.NoteTag{},
		ownerCol: "note_id",
		rows: func(ownerID string, tagIDs []string) any {
			rows := make([]model.NoteTag, 0, len(tagIDs))
			for _, id := range tagIDs {
				rows = append(rows, model.NoteTag{NoteID: ownerID, TagID: id})
			}
			return &rows
		},
	}
	snippetTagLink = tagLink{
		table:    &model.SnippetTag{},
		ownerCol: "snippet_id",
		rows: func(ownerID string, tagIDs []string) any {
			rows := make([]model.SnippetTag, 0, len(tagIDs))
			for _, id := range tagIDs {
				rows = append(rows, model.SnippetTag{SnippetID: ownerID, TagID: id})
			}
			return &rows
		},
	}
	lookupTagLink = tagLink{
		table:    &model.QuickLookupTag{},
		ownerCol: "quick_lookup_id",
		rows: func(ownerID string, tagIDs []string) any {
			rows := make([]model.QuickLookupTag, 0, len(tagIDs))
			for _, id := range tagIDs {
				rows = append(rows, model.QuickLookupTag{QuickLookupID: ownerID, TagID: id})
			}
			return &rows
		},
	}
)

// replace 用 tagIDs 整体替换 ownerID 的标签集合
func (l tagLink) replace(tx *gorm.DB, ownerID string, tagIDs []string) error {
	if err := tx.Where(l.ownerCol+" = ?", ownerID).Delete(l.table).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	return tx.Create(l.rows(ownerID, tagIDs)).Error
}

// clear 删除 ownerID 的全部标签关联
func (l tagLink) clear(tx *gorm.DB, ownerID string) error {
	return tx.Where(l.ownerCol+" = ?", ownerID).Delete(l.table).Error
}

// ownersWithTag 子查询：包含 tagID 的记录 ID
func (l tagLink) ownersWithTag(db *gorm.DB, tagID string) *gorm.DB {
	return db.Model(l.table).Select(l.ownerCol).Where("tag_id = ?", tagID)
}

// tagIDsByOwner 批量读取标签关联
func (l tagLink) tagIDsByOwner(db *gorm.DB, ownerIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		OwnerID string
		TagID   string
	}
	err := db.Model(l.table).
		Select(l.ownerCol+" AS owner_id, tag_id").
		Where(l.ownerCol+" IN ?", ownerIDs).
		Order("tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.OwnerID] = append(result[row.OwnerID], row.TagID)
	}
	return result, nil
}

// relations 读取后展开的关联数据
type relations struct {
	tagIDs     map[string][]string
	tags       map[string]*domain.Tag
	categories map[string]*domain.Category
}

// loadRelations 批量加载 ownerIDs 的标签与分类，expandTags 为 false 时只读取标签 ID
func loadRelations(ctx context.Context, db *gorm.DB, link tagLink, ownerIDs []string, categoryIDs []*string, expandTags bool) (*relations, error) {
	db = db.WithContext(ctx)
	rel := &relations{
		tags:       map[string]*domain.Tag{},
		categories: map[string]*domain.Category{},
	}

	tagIDs, err := link.tagIDsByOwner(db, ownerIDs)
	if err != nil {
		return nil, err
	}
	rel.tagIDs = tagIDs

	if expandTags {
		seen := map[string]bool{}
		var ids []string
		for _, list := range tagIDs {
			for _, id := range list {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		if len(ids) > 0 {
			var tags []*model.Tag
			if err := db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
				return nil, err
			}
			for _, t := range tags {
				rel.tags[t.ID] = tagToDomain(t)
			}
		}
	}

	seen := map[string]bool{}
	var catIDs []string
	for _, id := range categoryIDs {
		if id != nil && !seen[*id] {
			seen[*id] = true
			catIDs = append(catIDs, *id)
		}
	}
	if len(catIDs) > 0 {
		var cats []*model.Category
		if err := db.Where("id IN ?", catIDs).Find(&cats).Error; err != nil {
			return nil, err
		}
		for _, c := range cats {
			rel.categories[c.ID] = categoryToDomain(c)
		}
	}

	return rel, nil
}

// apply 把关联数据填入 domain.Relations
// 已删除的标签 / 分类不会出现在展开结果中
func (rel *relations) apply(ownerID string, categoryID *string, expandTags bool) domain.Relations {
	r := domain.Relations{TagIDs: rel.tagIDs[ownerID]}
	if r.TagIDs == nil {
		r.TagIDs = []string{}
	}
	if categoryID != nil {
		r.CategoryID = *categoryID
		r.Category = rel.categories[*categoryID]
	}
	if expandTags {
		r.Tags = make([]*domain.Tag, 0, len(r.TagIDs))
		for _, id := range r.TagIDs {
			if t, ok := rel.tags[id]; ok {
				r.Tags = append(r.Tags, t)
			}
		}
	}
	return r
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// applyListFilter 通用列表过滤与排序
func applyListFilter(db *gorm.DB, link tagLink, filter domain.ListFilter) *gorm.DB {
	if filter.TagID != "" {
		db = db.Where("id IN (?)", link.ownersWithTag(db.Session(&gorm.Session{NewDB: true}), filter.TagID))
	}
	if filter.IsStarred != nil {
		db = db.Where("is_starred = ?", *filter.IsStarred)
	}
	return db.Order("updated_at DESC").Order("id")
}
