package dto

import "github.com/haierkeys/dev-knowledge-base/pkg/timex"

// SnapshotCounts 快照中每个集合的记录数
type SnapshotCounts struct {
	Categories int `json:"categories"`
	Tags       int `json:"tags"`
	Notes      int `json:"notes"`
	Snippets   int `json:"snippets"`
	Lookups    int `json:"lookups"`
	Tickets    int `json:"tickets"`
}

// SnapshotDocument 导出文件的内容，记录格式与各列表接口一致
type SnapshotDocument struct {
	Version    string            `json:"version"` // Service version that produced the file // 导出时的服务版本
	ExportedAt timex.Time        `json:"exportedAt"`
	Counts     SnapshotCounts    `json:"counts"`
	Categories []*CategoryDTO    `json:"categories"`
	Tags       []*TagDTO         `json:"tags"`
	Notes      []*NoteDTO        `json:"notes"`
	Snippets   []*SnippetDTO     `json:"snippets"`
	Lookups    []*QuickLookupDTO `json:"lookups"`
	Tickets    []*TicketDTO      `json:"tickets"`
}

// SnapshotResult Snapshot export result
// SnapshotResult 快照导出结果
type SnapshotResult struct {
	Key        string         `json:"key"`      // Object key relative to the storage prefix // 对象 key
	Location   string         `json:"location"` // Full path or bucket/key reported by the storage // 存储返回的完整位置
	Size       int            `json:"size"`
	Storage    string         `json:"storage"`
	ExportedAt timex.Time     `json:"exportedAt"`
	Counts     SnapshotCounts `json:"counts"`
}
