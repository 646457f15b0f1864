package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/service"
	"fieldoffice-hris/pkg/response"
)

// EmploymentStatusHandler 聘用状态模块 HTTP 处理器
type EmploymentStatusHandler struct {
	statusSvc service.EmploymentStatusService
}

// NewEmploymentStatusHandler 创建 EmploymentStatusHandler
func NewEmploymentStatusHandler(statusSvc service.EmploymentStatusService) *EmploymentStatusHandler {
	return &EmploymentStatusHandler{statusSvc: statusSvc}
}

// ListStatuses 聘用状态列表
// GET /api/v1/employment-statuses
func (h *EmploymentStatusHandler) ListStatuses(c *gin.Context) {
	var (
		statuses []dto.EmploymentStatusResponse
		err      error
	)
	if c.Query("all") == "true" {
		statuses, err = h.statusSvc.ListAll(c.Request.Context())
	} else {
		statuses, err = h.statusSvc.List(c.Request.Context())
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": statuses})
}

// CreateStatus 创建聘用状态
// POST /api/v1/employment-statuses
func (h *EmploymentStatusHandler) CreateStatus(c *gin.Context) {
	var req dto.CreateEmploymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	status, err := h.statusSvc.Create(c.Request.Context(), &req, ActorFrom(c))
	if err != nil {
		h.handleStatusError(c, err)
		return
	}

	response.Created(c, status)
}

// UpdateStatus 更新聘用状态
// PUT /api/v1/employment-statuses/:id
func (h *EmploymentStatusHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Status ID is required")
		return
	}

	var req dto.UpdateEmploymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	status, err := h.statusSvc.Update(c.Request.Context(), id, &req, ActorFrom(c))
	if err != nil {
		h.handleStatusError(c, err)
		return
	}

	response.OK(c, status)
}

// ArchiveStatus 归档聘用状态
// POST /api/v1/employment-statuses/:id/archive
func (h *EmploymentStatusHandler) ArchiveStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Status ID is required")
		return
	}

	if err := h.statusSvc.Archive(c.Request.Context(), id, ActorFrom(c)); err != nil {
		h.handleStatusError(c, err)
		return
	}

	response.OK(c, nil)
}

// RestoreStatus 恢复已归档聘用状态
// POST /api/v1/employment-statuses/:id/restore
func (h *EmploymentStatusHandler) RestoreStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Status ID is required")
		return
	}

	if err := h.statusSvc.Restore(c.Request.Context(), id, ActorFrom(c)); err != nil {
		h.handleStatusError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *EmploymentStatusHandler) handleStatusError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		response.ErrorWithDetails(c, 400, 10001, "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrStatusNotFound):
		response.NotFound(c, 40001, "Employment status not found")
	case errors.Is(err, service.ErrStatusNameExists):
		response.Conflict(c, 40002, service.ErrStatusNameExists.Error())
	case errors.Is(err, service.ErrStatusInUse):
		response.Conflict(c, 40003, service.ErrStatusInUse.Error())
	case errors.Is(err, service.ErrAlreadyArchived):
		response.Conflict(c, 40004, service.ErrAlreadyArchived.Error())
	default:
		response.InternalError(c)
	}
}
