package handler

import (
	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/service"
	"fieldoffice-hris/pkg/response"
)

// DirectoryHandler 公共员工目录 HTTP 处理器
// 对外只读：不暴露 archived 开关，限流由路由层中间件负责
type DirectoryHandler struct {
	searchSvc service.SearchService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(searchSvc service.SearchService) *DirectoryHandler {
	return &DirectoryHandler{searchSvc: searchSvc}
}

// SearchDirectory 公共目录检索
// GET /api/v1/directory
func (h *DirectoryHandler) SearchDirectory(c *gin.Context) {
	var req dto.SearchEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}
	// 公共目录永远不暴露已归档员工
	req.Archived = false

	list, total, err := h.searchSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, service.SearchPageSize)
}

// Suggest 输入建议（最小投影，至多 12 条）
// GET /api/v1/directory/suggest
func (h *DirectoryHandler) Suggest(c *gin.Context) {
	items, err := h.searchSvc.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}
