package service

import (
	"errors"

	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"gorm.io/gorm"
)

// repoErr 把仓储错误转换为业务错误码
// 记录不存在返回 notFound，其余返回 ErrorDBQuery
func repoErr(err error, notFound *code.Code) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}
