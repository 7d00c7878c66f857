// Package domain 定义领域模型和接口
package domain

import "strings"

// RefKind 关联引用的形态
type RefKind int

const (
	// RefByID 仅提供 ID
	RefByID RefKind = iota + 1
	// RefByObject 提供对象 {id?, name?}
	RefByObject
)

// RelationRef 标签或分类的引用，可以是 ID，也可以是带 id/name 的对象
type RelationRef struct {
	Kind RefKind
	ID   string
	Name string
}

// RefID 以 ID 形式引用
func RefID(id string) RelationRef {
	return RelationRef{Kind: RefByID, ID: id}
}

// RefObject 以对象形式引用
func RefObject(id, name string) RelationRef {
	return RelationRef{Kind: RefByObject, ID: id, Name: name}
}

// HasID 是否带有非空 ID
func (r RelationRef) HasID() bool {
	return strings.TrimSpace(r.ID) != ""
}

// HasName 是否带有非空名称
func (r RelationRef) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// OptionalID 可选记录 ID，决定 upsert 的创建 / 更新模式
type OptionalID struct {
	value string
	set   bool
}

// NoID 未提供 ID（创建模式）
func NoID() OptionalID {
	return OptionalID{}
}

// SomeID 提供 ID（更新模式）
func SomeID(id string) OptionalID {
	return OptionalID{value: id, set: true}
}

func (o OptionalID) IsSet() bool {
	return o.set
}

func (o OptionalID) Value() string {
	return o.value
}
