package dto

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/domain"

	"github.com/bytedance/sonic"
)

// RelationRef Tag / category reference on the wire: a bare id string or an object {id?, name?}
// RelationRef 标签 / 分类引用，可以是 ID 字符串，也可以是 {id?, name?} 对象
type RelationRef struct {
	domain.RelationRef
}

type relationRefObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON 按 JSON 形态区分 ID 与对象
func (r *RelationRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty relation reference")
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var id string
		if err := sonic.Unmarshal(data, &id); err != nil {
			return err
		}
		r.RelationRef = domain.RefID(strings.TrimSpace(id))
		return nil
	case '{':
		var obj relationRefObject
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.RelationRef = domain.RefObject(strings.TrimSpace(obj.ID), strings.TrimSpace(obj.Name))
		return nil
	}
	return fmt.Errorf("relation reference must be an id string or an object, got %s", data)
}

// MarshalJSON ID 形态输出字符串，对象形态输出对象
func (r RelationRef) MarshalJSON() ([]byte, error) {
	if r.Kind == domain.RefByID {
		return sonic.Marshal(r.ID)
	}
	return sonic.Marshal(relationRefObject{ID: r.ID, Name: r.Name})
}

// categoryRef 空 ID 视为未提供分类
func categoryRef(ref *RelationRef) *domain.RelationRef {
	if ref == nil {
		return nil
	}
	if ref.Kind == domain.RefByID && ref.ID == "" {
		return nil
	}
	if ref.Kind == domain.RefByObject && !ref.HasID() && !ref.HasName() {
		return nil
	}
	out := ref.RelationRef
	return &out
}

func tagRefs(refs []RelationRef) []domain.RelationRef {
	out := make([]domain.RelationRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.RelationRef)
	}
	return out
}

// ParseOptionalID 把传输层的占位 ID 转换为 domain.OptionalID
// "", "new", "null", "undefined" 均表示创建
func ParseOptionalID(id string) domain.OptionalID {
	id = strings.TrimSpace(id)
	switch strings.ToLower(id) {
	case "", "new", "null", "undefined":
		return domain.NoID()
	}
	return domain.SomeID(id)
}
