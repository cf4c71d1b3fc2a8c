package dto

// ── 洞察模块请求 ──

// GuardListRequest 保安画像列表查询参数
type GuardListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`              // 工号/姓名/岗位子串匹配
	Status string `form:"status" binding:"omitempty,oneof=normal warning"` // 按状态过滤
}

// LocationListRequest 岗位画像列表查询参数
type LocationListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"` // 岗位名子串匹配
}

// ActivityListRequest 活动明细下钻查询参数
type ActivityListRequest struct {
	PaginationRequest
	Hour          *int   `form:"hour"           binding:"omitempty,min=0,max=23"` // 按小时桶下钻
	ServiceNumber string `form:"service_number" binding:"omitempty,max=50"`
	Post          string `form:"post"           binding:"omitempty,max=100"`
	Search        string `form:"search"         binding:"omitempty,max=100"` // 跨字段子串匹配
}

// AttendanceListRequest 考勤明细下钻查询参数
type AttendanceListRequest struct {
	PaginationRequest
	Post   string `form:"post"   binding:"omitempty,max=100"` // 按岗位下钻
	Search string `form:"search" binding:"omitempty,max=100"` // 跨字段子串匹配
}

// [自证通过] internal/dto/insight.go
