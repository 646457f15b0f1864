package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/service"
	"fieldoffice-hris/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器（管理端）
type EmployeeHandler struct {
	lifecycleSvc service.LifecycleService
	searchSvc    service.SearchService
	importSvc    service.ImportService
	historySvc   service.HistoryService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(
	lifecycleSvc service.LifecycleService,
	searchSvc service.SearchService,
	importSvc service.ImportService,
	historySvc service.HistoryService,
) *EmployeeHandler {
	return &EmployeeHandler{
		lifecycleSvc: lifecycleSvc,
		searchSvc:    searchSvc,
		importSvc:    importSvc,
		historySvc:   historySvc,
	}
}

// ListEmployees 员工复合检索
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.SearchEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	list, total, err := h.searchSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.Page, service.SearchPageSize)
}

// GetFacets 检索页筛选项数据源
// GET /api/v1/employees/facets
func (h *EmployeeHandler) GetFacets(c *gin.Context) {
	facets, err := h.searchSvc.Facets(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, facets)
}

// HireEmployee 入职
// POST /api/v1/employees
func (h *EmployeeHandler) HireEmployee(c *gin.Context) {
	var req dto.HireEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	employee, err := h.lifecycleSvc.Hire(c.Request.Context(), &req, ActorFrom(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.Created(c, employee)
}

// GetEmployee 员工档案详情（含合同/任职/离职/时间线历史）
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	detail, err := h.lifecycleSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, detail)
}

// UpdateEmployee 编辑员工档案
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	employee, err := h.lifecycleSvc.UpdateProfile(c.Request.Context(), id, &req, ActorFrom(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, employee)
}

// ResignEmployee 离职登记
// POST /api/v1/employees/:id/resign
func (h *EmployeeHandler) ResignEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	var req dto.ResignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	employee, err := h.lifecycleSvc.Resign(c.Request.Context(), id, &req, ActorFrom(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, employee)
}

// ArchiveEmployee 归档
// POST /api/v1/employees/:id/archive
func (h *EmployeeHandler) ArchiveEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	var req dto.ArchiveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	employee, err := h.lifecycleSvc.Archive(c.Request.Context(), id, &req, ActorFrom(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, employee)
}

// RestoreEmployee 从归档恢复
// POST /api/v1/employees/:id/restore
func (h *EmployeeHandler) RestoreEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	employee, err := h.lifecycleSvc.Restore(c.Request.Context(), id, ActorFrom(c))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, employee)
}

// DeleteEmployee 硬删除
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	if err := h.lifecycleSvc.Delete(c.Request.Context(), id, ActorFrom(c)); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, nil)
}

// GetArchivability 归档资格查询
// GET /api/v1/employees/:id/archivability
func (h *EmployeeHandler) GetArchivability(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Employee ID is required")
		return
	}

	status, err := h.lifecycleSvc.Archivability(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, status)
}

// ImportEmployees 批量导入
// POST /api/v1/employees/import
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	var req dto.ImportEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	result, err := h.importSvc.ImportEmployees(c.Request.Context(), &req, ActorFrom(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	h.historySvc.InvalidateDashboard(c.Request.Context())
	response.OK(c, result)
}

// handleEmployeeError 业务错误到响应码的映射
// 归档前置条件错误按约定原样透出消息
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		response.ErrorWithDetails(c, 400, 10001, "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 20001, "Employee not found")
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 20002, "Section not found")
	case errors.Is(err, service.ErrStatusNotFound):
		response.NotFound(c, 20003, "Employment status not found")
	case errors.Is(err, service.ErrAlreadyArchived):
		response.Conflict(c, 20004, service.ErrAlreadyArchived.Error())
	case errors.Is(err, service.ErrMustResignFirst):
		response.Conflict(c, 20005, service.ErrMustResignFirst.Error())
	default:
		response.InternalError(c)
	}
}
