package repository

import (
	"errors"

	"cabal_battles_server/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError 包装数据库错误
// 将 gorm.ErrRecordNotFound 转换为业务 NotFound 错误码，其余映射为数据库错误码
func wrapDBError(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, message)
	}
	return errorx.Wrap(err, errorx.CodeDBError, message)
}

// wrapDBErrorf 包装数据库错误（格式化消息）
func wrapDBErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}
