package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookDuplicate 同名同作者的图书已存在（大小写不敏感）
	ErrBookDuplicate = apperrors.New(apperrors.ErrCodeBookDuplicate, "同名同作者的图书已存在")

	// ErrYearInFuture 出版年份不能晚于当前年份
	ErrYearInFuture = apperrors.New(apperrors.ErrCodeInvalidYear, "出版年份不能在未来")

	// ErrYearTooEarly 出版年份过早（早于1400年）
	ErrYearTooEarly = apperrors.New(apperrors.ErrCodeInvalidYear, "出版年份过早")

	// ErrInvalidStatus 图书状态非法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidStatus, "图书状态非法")

	// ErrEmptyTitle 书名不能为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeValidation, "书名不能为空")

	// ErrEmptyAuthor 作者不能为空
	ErrEmptyAuthor = apperrors.New(apperrors.ErrCodeValidation, "作者不能为空")

	// ErrInvalidPages 页数必须大于0
	ErrInvalidPages = apperrors.New(apperrors.ErrCodeValidation, "页数必须大于0")
)
