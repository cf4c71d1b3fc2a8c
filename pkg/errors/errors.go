package errors

import "errors"

// ErrNotLoaded 数据集尚未加载：聚合结果不存在，任何读取都应失败
var ErrNotLoaded = errors.New("数据集尚未加载")
