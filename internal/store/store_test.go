package store

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vishal0589/absoluteservices/internal/model"
	pkgerrors "github.com/vishal0589/absoluteservices/pkg/errors"
)

// ── 测试辅助 ──

func testActivity() []model.ActivityRecord {
	return []model.ActivityRecord{
		{ServiceNumber: "G-001", UserName: "张伟", Timestamp: "2024-03-15 08:00:00", PostName: "Gate-1", LocationAccuracy: "75m", TimeAccuracy: "On-time"},
		{ServiceNumber: "G-002", UserName: "李娜", Timestamp: "2024-03-20 09:00:00", PostName: "Gate-2", LocationAccuracy: "10m", TimeAccuracy: "On-time"},
	}
}

func testAttendance() []model.AttendanceRecord {
	return []model.AttendanceRecord{
		{LoginDate: "2024-03-15", PostName: "Gate-1", ServiceNumber: "G-001", LateHours: "On-time", MissCount: "1"},
		{LoginDate: "2024-03-20", PostName: "Gate-2", ServiceNumber: "G-002", LateHours: "Late", MissCount: "0"},
	}
}

// ── 状态仓测试 ──

func TestStore_SnapshotBeforeLoad(t *testing.T) {
	s := New(zap.NewNop())

	_, err := s.Snapshot()
	if !errors.Is(err, pkgerrors.ErrNotLoaded) {
		t.Errorf("期望 ErrNotLoaded，实际: %v", err)
	}
	if s.Status().Loaded {
		t.Error("加载前 Loaded 应为 false")
	}
}

func TestStore_SetRecordsComputesSnapshot(t *testing.T) {
	s := New(zap.NewNop())
	s.SetRecords(testActivity(), testAttendance(), "activity.csv", "attendance.csv")

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot 应成功: %v", err)
	}
	if snap.Metrics.TotalGuards != 2 || snap.Metrics.TotalShifts != 2 {
		t.Errorf("聚合结果不符：guards=%d shifts=%d", snap.Metrics.TotalGuards, snap.Metrics.TotalShifts)
	}

	st := s.Status()
	if !st.Loaded || st.ActivityRows != 2 || st.AttendanceRows != 2 {
		t.Errorf("状态不符：%+v", st)
	}
	if st.ActivitySource != "activity.csv" || st.AttendanceSource != "attendance.csv" {
		t.Errorf("来源不符：%s / %s", st.ActivitySource, st.AttendanceSource)
	}
}

func TestStore_SetRangeRecomputes(t *testing.T) {
	s := New(zap.NewNop())
	s.SetRecords(testActivity(), testAttendance(), "a", "b")

	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	s.SetRange(&from, nil)

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot 应成功: %v", err)
	}
	// 3-15 的行被范围排除，整体重算后只剩 3-20 的行
	if snap.Metrics.TotalGuards != 1 || snap.Metrics.TotalShifts != 1 {
		t.Errorf("范围重算结果不符：guards=%d shifts=%d", snap.Metrics.TotalGuards, snap.Metrics.TotalShifts)
	}

	gotFrom, gotTo := s.Range()
	if gotFrom == nil || !gotFrom.Equal(from) || gotTo != nil {
		t.Errorf("范围读取不符：from=%v to=%v", gotFrom, gotTo)
	}
}

func TestStore_SetRangeBeforeLoad(t *testing.T) {
	s := New(zap.NewNop())

	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	s.SetRange(&from, nil)

	// 范围先行设置：加载后立即生效
	s.SetRecords(testActivity(), testAttendance(), "a", "b")
	snap, _ := s.Snapshot()
	if snap.Metrics.TotalShifts != 1 {
		t.Errorf("预设范围应在加载时生效，实际 shifts=%d", snap.Metrics.TotalShifts)
	}
}

func TestStore_ReloadReplacesWholeSnapshot(t *testing.T) {
	s := New(zap.NewNop())
	s.SetRecords(testActivity(), testAttendance(), "a", "b")
	first, _ := s.Snapshot()

	// 重载为子集：结果应整体替换而非叠加
	s.SetRecords(testActivity()[:1], testAttendance()[:1], "a", "b")
	second, _ := s.Snapshot()

	if second == first {
		t.Error("重载应产生新的 Snapshot 指针")
	}
	if second.Metrics.TotalGuards != 1 || second.Metrics.TotalShifts != 1 {
		t.Errorf("重载结果应只反映新输入：guards=%d shifts=%d", second.Metrics.TotalGuards, second.Metrics.TotalShifts)
	}
}

func TestStore_SubscribeNotified(t *testing.T) {
	s := New(zap.NewNop())

	var got []*model.Snapshot
	s.Subscribe(func(snap *model.Snapshot) { got = append(got, snap) })

	s.SetRecords(testActivity(), testAttendance(), "a", "b")
	if len(got) != 1 {
		t.Fatalf("加载后应通知1次，实际=%d", len(got))
	}

	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	s.SetRange(&from, nil)
	if len(got) != 2 {
		t.Fatalf("范围变更后应再通知1次，实际=%d", len(got))
	}
	if got[1].Metrics.TotalShifts != 1 {
		t.Errorf("通知携带的应是新 Snapshot，实际 shifts=%d", got[1].Metrics.TotalShifts)
	}
}

func TestStore_SetRangeBeforeLoadDoesNotNotify(t *testing.T) {
	s := New(zap.NewNop())

	calls := 0
	s.Subscribe(func(*model.Snapshot) { calls++ })

	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	s.SetRange(&from, nil)
	if calls != 0 {
		t.Errorf("未加载时范围变更不应触发通知，实际=%d", calls)
	}
}
