package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
)

// ── 科室模块业务错误 ──

var (
	ErrSectionNameExists = errors.New("a section with this name already exists")
	ErrSectionInUse      = errors.New("section still has employees assigned")
)

// SectionService 科室业务接口
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest, actor Actor) (*dto.SectionResponse, error)
	// List 未归档科室（含员工数）
	List(ctx context.Context) ([]dto.SectionResponse, error)
	// ListAll 全部科室（含已归档，管理端用）
	ListAll(ctx context.Context) ([]dto.SectionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, actor Actor) (*dto.SectionResponse, error)
	// Archive 软隐藏；仍有员工挂靠时拒绝
	Archive(ctx context.Context, id string, actor Actor) error
	// Restore 撤销归档；同名活跃科室存在时拒绝
	Restore(ctx context.Context, id string, actor Actor) error
}

type sectionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectionService 创建 SectionService 实例
func NewSectionService(repo *repository.Repository, logger *zap.Logger) SectionService {
	return &sectionService{repo: repo, logger: logger}
}

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest, actor Actor) (*dto.SectionResponse, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}

	if _, err := s.repo.Section.GetActiveByName(ctx, name); err == nil {
		return nil, ErrSectionNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找科室失败", zap.Error(err))
		return nil, err
	}

	section := &model.Section{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建科室失败", zap.Error(err))
		return nil, err
	}

	s.record(ctx, actor, section.SectionID, "created", fmt.Sprintf("Section created: %s", name), nil, model.JSONMap{"name": name})

	resp := toSectionResponse(section, 0)
	return &resp, nil
}

func (s *sectionService) List(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询科室列表失败", zap.Error(err))
		return nil, err
	}
	return s.withCounts(ctx, sections)
}

func (s *sectionService) ListAll(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询科室列表失败", zap.Error(err))
		return nil, err
	}
	return s.withCounts(ctx, sections)
}

func (s *sectionService) withCounts(ctx context.Context, sections []model.Section) ([]dto.SectionResponse, error) {
	result := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		count, err := s.repo.Section.CountEmployees(ctx, sections[i].SectionID)
		if err != nil {
			s.logger.Error("统计科室员工数失败", zap.Error(err))
			return nil, err
		}
		result = append(result, toSectionResponse(&sections[i], count))
	}
	return result, nil
}

func (s *sectionService) Update(ctx context.Context, id string, req *dto.UpdateSectionRequest, actor Actor) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询科室失败", zap.Error(err))
		return nil, err
	}

	oldValues := model.JSONMap{}
	newValues := model.JSONMap{}

	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return nil, newValidationError("name", "name is required")
		}
		if name != section.Name {
			if existing, err := s.repo.Section.GetActiveByName(ctx, name); err == nil && existing.SectionID != id {
				return nil, ErrSectionNameExists
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("按名称查找科室失败", zap.Error(err))
				return nil, err
			}
			oldValues["name"] = section.Name
			newValues["name"] = name
			section.Name = name
		}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != section.Description {
		oldValues["description"] = section.Description
		newValues["description"] = strings.TrimSpace(*req.Description)
		section.Description = strings.TrimSpace(*req.Description)
	}

	if len(newValues) > 0 {
		if err := s.repo.Section.Update(ctx, section); err != nil {
			s.logger.Error("更新科室失败", zap.Error(err))
			return nil, err
		}
		s.record(ctx, actor, section.SectionID, "updated", fmt.Sprintf("Section updated: %s", section.Name), oldValues, newValues)
	}

	count, err := s.repo.Section.CountEmployees(ctx, section.SectionID)
	if err != nil {
		s.logger.Error("统计科室员工数失败", zap.Error(err))
		return nil, err
	}
	resp := toSectionResponse(section, count)
	return &resp, nil
}

func (s *sectionService) Archive(ctx context.Context, id string, actor Actor) error {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("查询科室失败", zap.Error(err))
		return err
	}
	if section.IsArchived {
		return ErrAlreadyArchived
	}

	count, err := s.repo.Section.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("统计科室员工数失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrSectionInUse
	}

	now := time.Now()
	section.IsArchived = true
	section.ArchivedAt = &now
	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("归档科室失败", zap.Error(err))
		return err
	}

	s.record(ctx, actor, section.SectionID, "archived", fmt.Sprintf("Section archived: %s", section.Name), nil, nil)
	return nil
}

func (s *sectionService) Restore(ctx context.Context, id string, actor Actor) error {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("查询科室失败", zap.Error(err))
		return err
	}
	if !section.IsArchived {
		return nil
	}

	// 归档期间可能已建立同名科室，恢复前复查唯一性
	if existing, err := s.repo.Section.GetActiveByName(ctx, section.Name); err == nil && existing.SectionID != id {
		return ErrSectionNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找科室失败", zap.Error(err))
		return err
	}

	section.IsArchived = false
	section.ArchivedAt = nil
	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("恢复科室失败", zap.Error(err))
		return err
	}

	s.record(ctx, actor, section.SectionID, "restored", fmt.Sprintf("Section restored: %s", section.Name), nil, nil)
	return nil
}

func (s *sectionService) record(ctx context.Context, actor Actor, subjectID, action, description string, oldValues, newValues model.JSONMap) {
	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectSection,
		SubjectID:   subjectID,
		Action:      action,
		Description: description,
		OldValues:   oldValues,
		NewValues:   newValues,
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := s.repo.ActivityLog.Create(ctx, logEntry); err != nil {
		s.logger.Warn("写入审计日志失败", zap.Error(err))
	}
}
