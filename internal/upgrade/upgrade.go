// Package upgrade 负责表结构迁移和版本化数据升级
package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/model"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db         *gorm.DB
	logger     *zap.Logger
	migrations []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, migrations ...Migration) *MigrationManager {
	if len(migrations) == 0 {
		// 在这里注册所有的升级脚本
		migrations = []Migration{
			&TicketDefaultsMigrate{},
			&OrphanTagLinkMigrate{},
		}
	}
	return &MigrationManager{
		db:         db,
		logger:     logger,
		migrations: migrations,
	}
}

// normalize 补齐 semver 需要的 "v" 前缀
func normalize(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run 执行升级
// runningVersion 之后的脚本不会执行，留给更高版本的程序
func (m *MigrationManager) Run(ctx context.Context, runningVersion string) error {
	m.logger.Info("Migration started", zap.String("runningVersion", runningVersion))

	if err := model.AutoMigrate(m.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	// 确保 schema_version 表存在
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// 获取已应用的数据库版本
	appliedVersions, err := m.getAppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	running := normalize(runningVersion)
	if !semver.IsValid(running) {
		m.logger.Warn("running version is not a valid semver, applying every migration", zap.String("runningVersion", runningVersion))
		running = ""
	}

	migrations := make([]Migration, len(m.migrations))
	copy(migrations, m.migrations)
	sort.SliceStable(migrations, func(i, j int) bool {
		return semver.Compare(normalize(migrations[i].Version()), normalize(migrations[j].Version())) < 0
	})

	// 执行所有未执行的升级
	executed := 0
	for _, migration := range migrations {
		scriptVersion := normalize(migration.Version())

		if running != "" && semver.Compare(scriptVersion, running) > 0 {
			m.logger.Info("skip migration > runningVersion",
				zap.String("scriptVersion", scriptVersion),
				zap.String("runningVersion", running))
			continue
		}

		// 检查是否已应用
		if appliedVersions[scriptVersion] {
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", scriptVersion),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 执行升级脚本
			if err := migration.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			// 记录版本
			record := &SchemaVersion{
				Version:     scriptVersion,
				Description: migration.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}

			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", scriptVersion, err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", scriptVersion))
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}

	return nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[normalize(v.Version)] = true
	}
	return applied, nil
}

// CurrentVersion 已应用的最高版本，未执行过任何脚本时返回空串
func CurrentVersion(ctx context.Context, db *gorm.DB) (string, error) {
	var versions []string
	if err := db.WithContext(ctx).Model(&SchemaVersion{}).Pluck("version", &versions).Error; err != nil {
		return "", err
	}
	current := ""
	for _, v := range versions {
		v = normalize(v)
		if current == "" || semver.Compare(v, current) > 0 {
			current = v
		}
	}
	return current, nil
}

// Execute 执行升级(便捷方法)
func Execute(ctx context.Context, db *gorm.DB, logger *zap.Logger, runningVersion string) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if logger == nil {
		return fmt.Errorf("logger not initialized")
	}

	return NewMigrationManager(db, logger).Run(ctx, runningVersion)
}
