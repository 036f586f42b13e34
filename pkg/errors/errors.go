package errors

import "errors"

// ErrStorageUnavailable 持久化协作方不可用。
// Repository 层将驱动级故障统一包装为此错误，存储细节不向上层泄露；
// 是否重试由调用方决定，核心不做自动重试。
var ErrStorageUnavailable = errors.New("存储服务不可用")
