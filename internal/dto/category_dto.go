package dto

// CategoryUpsertRequest Request parameters for creating or renaming a category
// 用于创建或重命名分类的请求参数
type CategoryUpsertRequest struct {
	ID   string `json:"id" form:"id"`
	Name string `json:"name" form:"name" binding:"required,notblank,max=191"`
}

// TagCreateRequest Find-or-create a tag by name
// TagCreateRequest 按名称查找或创建标签
type TagCreateRequest struct {
	Name string `json:"name" form:"name" binding:"required,notblank,max=191"`
}
