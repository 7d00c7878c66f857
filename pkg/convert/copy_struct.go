package convert

import (
	"time"

	"github.com/haierkeys/dev-knowledge-base/pkg/timex"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// copyOption 字段同名复制，time.Time 自动转换为 timex.Time
var copyOption = copier.Option{
	IgnoreEmpty: false,
	DeepCopy:    true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: timex.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := src.(time.Time)
				if !ok {
					return nil, errors.New("src type not time.Time")
				}
				return timex.Time(t), nil
			},
		},
	},
}

// StructAssign 把 src 与 dst 的同名字段复制到 dst 中
// dst 目标结构体指针，src 源结构体
func StructAssign(dst any, src any) error {
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return errors.Wrap(err, "copy struct")
	}
	return nil
}
