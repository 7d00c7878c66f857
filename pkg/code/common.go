package code

import "net/http"

var (
	Failed        = NewError(0, http.StatusInternalServerError, lang{en: "Failed", zh_cn: "失败"})
	Success       = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	SuccessCreate = NewSuss(2, lang{en: "Created successfully", zh_cn: "创建成功"})
	SuccessUpdate = NewSuss(3, lang{en: "Updated successfully", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(4, lang{en: "Deleted successfully", zh_cn: "删除成功"})

	ErrorInvalidParams    = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorInvalidAuthToken = NewError(401, http.StatusUnauthorized, lang{en: "Invalid admin token", zh_cn: "管理员令牌无效"})
	ErrorNotFoundAPI      = NewError(404, http.StatusNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests  = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})

	// 校验错误 (400)
	ErrorRequiredField        = NewError(421, http.StatusBadRequest, lang{en: "Required field is missing", zh_cn: "缺少必填字段"})
	ErrorTagRefInvalid        = NewError(422, http.StatusBadRequest, lang{en: "Tag reference has neither id nor name", zh_cn: "标签引用缺少 ID 和名称"})
	ErrorTagRefNotFound       = NewError(423, http.StatusBadRequest, lang{en: "Referenced tag does not exist", zh_cn: "引用的标签不存在"})
	ErrorCategoryRefNotFound  = NewError(424, http.StatusBadRequest, lang{en: "Referenced category does not exist", zh_cn: "引用的分类不存在"})
	ErrorSearchTermEmpty      = NewError(425, http.StatusBadRequest, lang{en: "Search term is required", zh_cn: "搜索关键词不能为空"})
	ErrorCategoryNameExists   = NewError(426, http.StatusBadRequest, lang{en: "Category name already exists", zh_cn: "分类名称已存在"})
	ErrorChatMessagesRequired = NewError(427, http.StatusBadRequest, lang{en: "Chat messages are required", zh_cn: "对话消息不能为空"})
	ErrorCategoryRefInvalid   = NewError(428, http.StatusBadRequest, lang{en: "Category reference has no id", zh_cn: "分类引用缺少 ID"})

	// 记录不存在 (404)
	ErrorNoteNotFound     = NewError(441, http.StatusNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorSnippetNotFound  = NewError(442, http.StatusNotFound, lang{en: "Snippet not found", zh_cn: "代码片段不存在"})
	ErrorLookupNotFound   = NewError(443, http.StatusNotFound, lang{en: "Quick lookup not found", zh_cn: "速查条目不存在"})
	ErrorCategoryNotFound = NewError(444, http.StatusNotFound, lang{en: "Category not found", zh_cn: "分类不存在"})
	ErrorTagNotFound      = NewError(445, http.StatusNotFound, lang{en: "Tag not found", zh_cn: "标签不存在"})
	ErrorTicketNotFound   = NewError(446, http.StatusNotFound, lang{en: "Ticket not found", zh_cn: "工单不存在"})

	// 存储错误 (500)
	ErrorDBQuery             = NewError(501, http.StatusInternalServerError, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorUsageCountIncrement = NewError(502, http.StatusInternalServerError, lang{en: "Record saved but category usage count was not updated", zh_cn: "记录已保存，但分类使用次数更新失败"})

	// 外部服务错误 (500)
	ErrorChatDisabled     = NewError(511, http.StatusInternalServerError, lang{en: "Chat service is not configured", zh_cn: "对话服务未配置"})
	ErrorChatRequest      = NewError(512, http.StatusInternalServerError, lang{en: "Chat request failed", zh_cn: "对话请求失败"})
	ErrorChallengeRequest = NewError(513, http.StatusInternalServerError, lang{en: "Challenge API request failed", zh_cn: "编程题目接口请求失败"})

	// 快照导出错误 (500)
	ErrorSnapshotDisabled   = NewError(521, http.StatusInternalServerError, lang{en: "Snapshot export is not enabled", zh_cn: "快照导出未启用"})
	ErrorSnapshotExport     = NewError(522, http.StatusInternalServerError, lang{en: "Snapshot export failed", zh_cn: "快照导出失败"})
	ErrorInvalidStorageType = NewError(523, http.StatusInternalServerError, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
)
