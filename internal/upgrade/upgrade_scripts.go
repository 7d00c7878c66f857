package upgrade

import (
	"context"

	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"gorm.io/gorm"
)

// TicketDefaultsMigrate 为旧工单补齐状态和优先级
type TicketDefaultsMigrate struct{}

func (m *TicketDefaultsMigrate) Version() string {
	return "0.2.0"
}

func (m *TicketDefaultsMigrate) Description() string {
	return "Backfill empty ticket status and priority with open / medium"
}

func (m *TicketDefaultsMigrate) Up(db *gorm.DB, ctx context.Context) error {
	db = db.WithContext(ctx)
	if err := db.Model(&model.Ticket{}).Where("status = '' OR status IS NULL").
		UpdateColumn("status", "open").Error; err != nil {
		return err
	}
	return db.Model(&model.Ticket{}).Where("priority = '' OR priority IS NULL").
		UpdateColumn("priority", "medium").Error
}

// OrphanTagLinkMigrate 清理指向已删除标签或记录的关联行
type OrphanTagLinkMigrate struct{}

func (m *OrphanTagLinkMigrate) Version() string {
	return "0.3.0"
}

func (m *OrphanTagLinkMigrate) Description() string {
	return "Remove tag links whose tag or owner record no longer exists"
}

func (m *OrphanTagLinkMigrate) Up(db *gorm.DB, ctx context.Context) error {
	db = db.WithContext(ctx)
	links := []struct {
		link     any
		owner    any
		ownerCol string
	}{
		{&model.NoteTag{}, &model.Note{}, "note_id"},
		{&model.SnippetTag{}, &model.Snippet{}, "snippet_id"},
		{&model.QuickLookupTag{}, &model.QuickLookup{}, "quick_lookup_id"},
	}
	for _, l := range links {
		tags := db.Session(&gorm.Session{NewDB: true}).Model(&model.Tag{}).Select("id")
		owners := db.Session(&gorm.Session{NewDB: true}).Model(l.owner).Select("id")
		err := db.Where("tag_id NOT IN (?) OR "+l.ownerCol+" NOT IN (?)", tags, owners).
			Delete(l.link).Error
		if err != nil {
			return err
		}
	}
	return nil
}
