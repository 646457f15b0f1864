package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/service"
	"fieldoffice-hris/pkg/response"
)

// SectionHandler 科室模块 HTTP 处理器
type SectionHandler struct {
	sectionSvc service.SectionService
}

// NewSectionHandler 创建 SectionHandler
func NewSectionHandler(sectionSvc service.SectionService) *SectionHandler {
	return &SectionHandler{sectionSvc: sectionSvc}
}

// ListSections 未归档科室列表
// GET /api/v1/sections
func (h *SectionHandler) ListSections(c *gin.Context) {
	var (
		sections []dto.SectionResponse
		err      error
	)
	if c.Query("all") == "true" {
		sections, err = h.sectionSvc.ListAll(c.Request.Context())
	} else {
		sections, err = h.sectionSvc.List(c.Request.Context())
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sections})
}

// CreateSection 创建科室
// POST /api/v1/sections
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	section, err := h.sectionSvc.Create(c.Request.Context(), &req, ActorFrom(c))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}

	response.Created(c, section)
}

// UpdateSection 更新科室
// PUT /api/v1/sections/:id
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Section ID is required")
		return
	}

	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid request body")
		return
	}

	section, err := h.sectionSvc.Update(c.Request.Context(), id, &req, ActorFrom(c))
	if err != nil {
		h.handleSectionError(c, err)
		return
	}

	response.OK(c, section)
}

// ArchiveSection 归档科室
// POST /api/v1/sections/:id/archive
func (h *SectionHandler) ArchiveSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Section ID is required")
		return
	}

	if err := h.sectionSvc.Archive(c.Request.Context(), id, ActorFrom(c)); err != nil {
		h.handleSectionError(c, err)
		return
	}

	response.OK(c, nil)
}

// RestoreSection 恢复已归档科室
// POST /api/v1/sections/:id/restore
func (h *SectionHandler) RestoreSection(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "Section ID is required")
		return
	}

	if err := h.sectionSvc.Restore(c.Request.Context(), id, ActorFrom(c)); err != nil {
		h.handleSectionError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SectionHandler) handleSectionError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		response.ErrorWithDetails(c, 400, 10001, "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrSectionNotFound):
		response.NotFound(c, 30001, "Section not found")
	case errors.Is(err, service.ErrSectionNameExists):
		response.Conflict(c, 30002, service.ErrSectionNameExists.Error())
	case errors.Is(err, service.ErrSectionInUse):
		response.Conflict(c, 30003, service.ErrSectionInUse.Error())
	case errors.Is(err, service.ErrAlreadyArchived):
		response.Conflict(c, 30004, service.ErrAlreadyArchived.Error())
	default:
		response.InternalError(c)
	}
}
