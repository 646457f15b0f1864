package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/service"
	"fieldoffice-hris/pkg/response"
)

// HistoryHandler 历史投影 HTTP 处理器（仪表盘/离职历史/导出）
type HistoryHandler struct {
	historySvc service.HistoryService
}

// NewHistoryHandler 创建 HistoryHandler
func NewHistoryHandler(historySvc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// GetDashboard 仪表盘聚合视图
// GET /api/v1/dashboard
func (h *HistoryHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.historySvc.Dashboard(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dashboard)
}

// ListHistory 离职历史列表
// GET /api/v1/history
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	var req dto.HistoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	list, total, err := h.historySvc.ListHistory(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, service.HistoryPageSize)
}

// GetHistoryStats 离职历史统计
// GET /api/v1/history/stats
func (h *HistoryHandler) GetHistoryStats(c *gin.Context) {
	stats, err := h.historySvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// ExportHistory 历史记录导出（CSV 或 Excel）
// GET /api/v1/history/export?type=contracts&date_range=90&format=csv
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	table, err := h.historySvc.Export(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownExportType) {
			response.BadRequest(c, 10001, "Unknown export type")
			return
		}
		response.InternalError(c)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	switch req.Format {
	case "xlsx":
		buf, err := service.RenderXLSX(table)
		if err != nil {
			response.InternalError(c)
			return
		}
		filename := fmt.Sprintf("%s_%s.xlsx", table.Name, stamp)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "csv", "":
		filename := fmt.Sprintf("%s_%s.csv", table.Name, stamp)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)

		w := csv.NewWriter(c.Writer)
		_ = w.Write(table.Headers)
		for _, row := range table.Rows {
			_ = w.Write(row)
		}
		w.Flush()
	default:
		response.BadRequest(c, 10001, "Unknown export format")
	}
}
