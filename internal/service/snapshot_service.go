package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/logger"
	"github.com/haierkeys/dev-knowledge-base/pkg/metrics"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage"
	"github.com/haierkeys/dev-knowledge-base/pkg/timex"
	"github.com/haierkeys/dev-knowledge-base/pkg/workerpool"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// SnapshotService 把整个知识库导出为一个 JSON 文件
type SnapshotService interface {
	Export(ctx context.Context) (*dto.SnapshotResult, error)
}

// SnapshotRepos 导出需要读取的仓储
type SnapshotRepos struct {
	Categories domain.CategoryRepository
	Tags       domain.TagRepository
	Notes      domain.NoteRepository
	Snippets   domain.SnippetRepository
	Lookups    domain.QuickLookupRepository
	Tickets    domain.TicketRepository
}

// SnapshotServiceConfig 快照服务配置
type SnapshotServiceConfig struct {
	StorageType string // Storage backend name, reported in the result // 存储类型，写入导出结果
	Version     string // Service version written into the document // 写入文件的服务版本
}

type snapshotService struct {
	repos   SnapshotRepos
	store   storage.Storager
	pool    *workerpool.Pool
	tickets *ticketService
	config  SnapshotServiceConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewSnapshotService store 为 nil 表示未启用快照导出
func NewSnapshotService(repos SnapshotRepos, store storage.Storager, pool *workerpool.Pool, config SnapshotServiceConfig, lg *zap.Logger) SnapshotService {
	return &snapshotService{
		repos:   repos,
		store:   store,
		pool:    pool,
		tickets: &ticketService{repo: repos.Tickets},
		config:  config,
		logger:  lg,
		now:     time.Now,
	}
}

// SnapshotKey 按导出时间生成对象 key
func SnapshotKey(t time.Time) string {
	return fmt.Sprintf("kb-%s.json", t.UTC().Format("20060102T150405Z"))
}

func (s *snapshotService) Export(ctx context.Context) (*dto.SnapshotResult, error) {
	if s.store == nil {
		return nil, code.ErrorSnapshotDisabled
	}

	start := s.now()
	doc, err := s.collect(ctx)
	metrics.ExternalCalls.WithLabelValues("snapshot_collect", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}
	doc.Version = s.config.Version
	doc.ExportedAt = timex.Time(start)

	content, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, code.ErrorSnapshotExport.WithDetails(err.Error())
	}

	key := SnapshotKey(start)
	location, err := s.store.SendContent(ctx, key, content, "application/json", start)
	metrics.ExternalCalls.WithLabelValues("snapshot_storage", metrics.Result(err)).Inc()
	if err != nil {
		s.logger.Warn("snapshot upload failed",
			zap.String(logger.FieldMethod, "SnapshotService.Export"),
			zap.String("storage", s.config.StorageType),
			zap.Error(err))
		return nil, code.ErrorSnapshotExport.WithDetails(err.Error())
	}

	s.logger.Info("snapshot exported",
		zap.String("location", location),
		zap.Int("size", len(content)),
		zap.Duration(logger.FieldDuration, time.Since(start)))

	return &dto.SnapshotResult{
		Key:        key,
		Location:   location,
		Size:       len(content),
		Storage:    s.config.StorageType,
		ExportedAt: doc.ExportedAt,
		Counts:     doc.Counts,
	}, nil
}

// collect 并发读取所有集合，任一失败则整体失败
func (s *snapshotService) collect(ctx context.Context) (*dto.SnapshotDocument, error) {
	doc := &dto.SnapshotDocument{}
	all := domain.ListFilter{}

	err := s.pool.Run(ctx,
		func(ctx context.Context) error {
			list, err := s.repos.Categories.List(ctx)
			if err != nil {
				return repoErr(err, nil)
			}
			doc.Categories = mapList(list, categoryToDTO)
			return nil
		},
		func(ctx context.Context) error {
			list, err := s.repos.Tags.List(ctx)
			if err != nil {
				return repoErr(err, nil)
			}
			doc.Tags = tagsToDTO(list)
			if doc.Tags == nil {
				doc.Tags = []*dto.TagDTO{}
			}
			return nil
		},
		func(ctx context.Context) error {
			list, err := s.repos.Notes.List(ctx, all)
			if err != nil {
				return repoErr(err, nil)
			}
			doc.Notes = mapList(list, noteToDTO)
			return nil
		},
		func(ctx context.Context) error {
			list, err := s.repos.Snippets.List(ctx, all)
			if err != nil {
				return repoErr(err, nil)
			}
			doc.Snippets = mapList(list, snippetToDTO)
			return nil
		},
		func(ctx context.Context) error {
			list, err := s.repos.Lookups.List(ctx, all)
			if err != nil {
				return repoErr(err, nil)
			}
			doc.Lookups = mapList(list, lookupToDTO)
			return nil
		},
		func(ctx context.Context) error {
			list, err := s.tickets.List(ctx, "")
			if err != nil {
				return err
			}
			doc.Tickets = list
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	doc.Counts = dto.SnapshotCounts{
		Categories: len(doc.Categories),
		Tags:       len(doc.Tags),
		Notes:      len(doc.Notes),
		Snippets:   len(doc.Snippets),
		Lookups:    len(doc.Lookups),
		Tickets:    len(doc.Tickets),
	}
	return doc, nil
}
