package insight

import (
	"reflect"
	"testing"
	"time"

	"github.com/vishal0589/absoluteservices/internal/model"
)

// ── 测试辅助 ──

func activityRow(sn, name, ts, post, acc, tacc string) model.ActivityRecord {
	return model.ActivityRecord{
		ServiceNumber:    sn,
		UserName:         name,
		Timestamp:        ts,
		Activity:         "Patrol scan",
		PostName:         post,
		LocationAccuracy: acc,
		TimeAccuracy:     tacc,
	}
}

// ── 活动聚合测试 ──

func TestAggregateActivity_SingleIssueRow(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 14:30:00", "Gate-1", "75m", "On-time"),
	}

	res := AggregateActivity(rows)

	if res.Buckets[14].Count != 1 || res.Buckets[14].LocationIssues != 1 {
		t.Errorf("期望 bucket[14]={1,1}，实际={%d,%d}", res.Buckets[14].Count, res.Buckets[14].LocationIssues)
	}
	if res.AvgAccuracy != 75 {
		t.Errorf("期望平均精度75，实际=%d", res.AvgAccuracy)
	}
	if res.LocationErrors != 1 {
		t.Errorf("期望定位问题数1，实际=%d", res.LocationErrors)
	}
}

func TestAggregateActivity_BucketSumEqualsParseableRows(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:10:00", "Gate-1", "10m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 08:50:00", "Gate-1", "10m", "On-time"),
		activityRow("G-002", "李娜", "2024-03-15 23:05:00", "Gate-2", "10m", "On-time"),
		activityRow("G-003", "王强", "bad timestamp", "Gate-2", "99m", "Late"),
		activityRow("", "", "", "Gate-3", "", ""),
	}

	res := AggregateActivity(rows)

	sum := 0
	for _, b := range res.Buckets {
		sum += b.Count
	}
	if sum != 3 {
		t.Errorf("桶计数总和应等于可解析时间戳行数3，实际=%d", sum)
	}
	// 不可解析行整体跳过：其 99m 不应进入任何计数
	if res.LocationErrors != 0 {
		t.Errorf("不可解析行的精度不应计数，实际定位问题数=%d", res.LocationErrors)
	}
}

func TestAggregateActivity_GuardActivityCount(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "10m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 09:00:00", "Gate-1", "10m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 10:00:00", "Gate-1", "10m", "On-time"),
		activityRow("G-002", "李娜", "2024-03-15 10:30:00", "Gate-2", "10m", "On-time"),
	}

	res := AggregateActivity(rows)

	if res.TotalGuards != 2 {
		t.Errorf("期望2名保安，实际=%d", res.TotalGuards)
	}
	if g := res.Guards["G-001"]; g == nil || g.Activities != 3 {
		t.Errorf("G-001 活动数应为3，实际=%+v", g)
	}
	if g := res.Guards["G-002"]; g == nil || g.Activities != 1 {
		t.Errorf("G-002 活动数应为1，实际=%+v", g)
	}
}

func TestAggregateActivity_EmptyServiceNumber(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("", "无名", "2024-03-15 14:00:00", "Gate-1", "80m", "On-time"),
	}

	res := AggregateActivity(rows)

	// 空工号行进桶、进精度统计，但不建保安画像
	if res.Buckets[14].Count != 1 || res.Buckets[14].LocationIssues != 1 {
		t.Errorf("空工号行应进入小时桶，实际 bucket[14]={%d,%d}", res.Buckets[14].Count, res.Buckets[14].LocationIssues)
	}
	if res.AvgAccuracy != 80 {
		t.Errorf("空工号行应进入精度平均，实际=%d", res.AvgAccuracy)
	}
	if res.TotalGuards != 0 || len(res.Guards) != 0 {
		t.Errorf("空工号不应建保安画像，实际保安数=%d", res.TotalGuards)
	}
}

func TestAggregateActivity_AvgOnlyOverThreshold(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "75m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 09:00:00", "Gate-1", "30m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 10:00:00", "Gate-1", "120m", "On-time"),
	}

	res := AggregateActivity(rows)

	// 平均只统计超阈值读数：round((75+120)/2)=98，30m 不摊薄
	if res.AvgAccuracy != 98 {
		t.Errorf("期望平均精度98，实际=%d", res.AvgAccuracy)
	}
	if res.LocationErrors != 2 {
		t.Errorf("期望定位问题数2，实际=%d", res.LocationErrors)
	}
}

func TestAggregateActivity_AvgZeroWithoutReadings(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "no meters here", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 09:00:00", "Gate-1", "40m", "On-time"),
	}

	res := AggregateActivity(rows)

	if res.AvgAccuracy != 0 {
		t.Errorf("无超阈值读数时平均精度应为0，实际=%d", res.AvgAccuracy)
	}
	if res.LocationErrors != 0 {
		t.Errorf("阈值内读数不应计为问题，实际=%d", res.LocationErrors)
	}
}

func TestAggregateActivity_OnTimeFrozenAtFirstSight(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "10m", "Late"),
		activityRow("G-001", "张伟", "2024-03-15 09:00:00", "Gate-1", "10m", "On-time"),
	}

	res := AggregateActivity(rows)

	g := res.Guards["G-001"]
	if g == nil {
		t.Fatal("应存在 G-001 画像")
	}
	// 首行 Late 冻结准点标志，后续 On-time 不改写
	if g.OnTime {
		t.Error("准点标志应由首次出现行冻结为 false")
	}
	if g.Status != "warning" {
		t.Errorf("非准点保安状态应为 warning，实际=%s", g.Status)
	}
}

func TestAggregateActivity_AccuracyOverwriteNotAccumulate(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "90m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 09:00:00", "Gate-1", "60m", "On-time"),
	}

	res := AggregateActivity(rows)

	g := res.Guards["G-001"]
	if g.LocationAccuracy != 60 {
		t.Errorf("保安精度应为最近一次超阈值读数60，实际=%d", g.LocationAccuracy)
	}
	if g.LocationIssues != 2 {
		t.Errorf("期望定位问题数2，实际=%d", g.LocationIssues)
	}
	if g.Status != "warning" {
		t.Errorf("有定位问题的保安状态应为 warning，实际=%s", g.Status)
	}
}

func TestAggregateActivity_LastActivityIsMax(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 12:00:00", "Gate-1", "10m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "10m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 10:00:00", "Gate-1", "10m", "On-time"),
	}

	res := AggregateActivity(rows)

	want := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	if g := res.Guards["G-001"]; !g.LastActivity.Equal(want) {
		t.Errorf("最后活动时间应为最大时间戳 %v，实际=%v", want, g.LastActivity)
	}
}

func TestAggregateActivity_NormalStatus(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "10m", "On-time"),
	}

	res := AggregateActivity(rows)

	if g := res.Guards["G-001"]; g.Status != "normal" {
		t.Errorf("无问题且准点的保安状态应为 normal，实际=%s", g.Status)
	}
}

func TestAggregateActivity_EmptyInput(t *testing.T) {
	res := AggregateActivity(nil)

	for i, b := range res.Buckets {
		if b.Hour != i || b.Count != 0 || b.LocationIssues != 0 {
			t.Fatalf("空输入桶[%d]应为 {hour:%d,0,0}，实际=%+v", i, i, b)
		}
	}
	if res.TotalGuards != 0 || res.LocationErrors != 0 || res.AvgAccuracy != 0 {
		t.Error("空输入应产出全零标量")
	}
}

func TestAggregateActivity_Idempotent(t *testing.T) {
	rows := []model.ActivityRecord{
		activityRow("G-001", "张伟", "2024-03-15 08:00:00", "Gate-1", "75m", "Late"),
		activityRow("G-002", "李娜", "2024-03-15 09:00:00", "Gate-2", "30m", "On-time"),
		activityRow("G-001", "张伟", "2024-03-15 10:00:00", "Gate-1", "90m", "On-time"),
	}

	first := AggregateActivity(rows)
	second := AggregateActivity(rows)

	if !reflect.DeepEqual(first, second) {
		t.Error("同一输入两次聚合结果应完全一致")
	}
}
