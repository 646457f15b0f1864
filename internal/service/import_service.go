package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
)

// ImportService 批量导入业务接口
// 科室与聘用状态以名称移交，不存在则创建；
// 身份识别按规范化后的 (first_name, last_name) 精确匹配，命中走改档、未命中走入职，
// 两条路径都复用生命周期级联，逐行失败不影响其余行
type ImportService interface {
	ImportEmployees(ctx context.Context, req *dto.ImportEmployeesRequest, actor Actor) (*dto.ImportEmployeesResponse, error)
}

type importService struct {
	repo      *repository.Repository
	lifecycle LifecycleService
	logger    *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, lifecycle LifecycleService, logger *zap.Logger) ImportService {
	return &importService{repo: repo, lifecycle: lifecycle, logger: logger}
}

func (s *importService) ImportEmployees(ctx context.Context, req *dto.ImportEmployeesRequest, actor Actor) (*dto.ImportEmployeesResponse, error) {
	result := &dto.ImportEmployeesResponse{Total: len(req.Employees)}

	for i := range req.Employees {
		row := &req.Employees[i]
		created, err := s.importRow(ctx, row, actor)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportError{
				Row:    row.Row,
				Reason: err.Error(),
			})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.logger.Info("员工导入完成",
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

// importRow 单行导入；返回 created=true 表示走了入职路径
func (s *importService) importRow(ctx context.Context, row *dto.ImportEmployeeRow, actor Actor) (bool, error) {
	firstName := normalizeName(row.FirstName)
	lastName := normalizeName(row.LastName)
	if firstName == "" {
		return false, errors.New("first name is required")
	}
	if lastName == "" {
		return false, errors.New("last name is required")
	}

	sectionID, err := s.resolveSection(ctx, row.Office, actor)
	if err != nil {
		return false, err
	}
	statusID, err := s.resolveStatus(ctx, row.EmploymentStatus, actor)
	if err != nil {
		return false, err
	}

	existing, err := s.repo.Employee.GetByName(ctx, firstName, lastName)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按姓名查找员工失败", zap.Error(err))
		return false, err
	}

	if existing == nil {
		hire := &dto.HireEmployeeRequest{
			FirstName:          row.FirstName,
			MiddleName:         row.MiddleName,
			LastName:           row.LastName,
			Suffix:             row.Suffix,
			Sex:                row.Sex,
			Position:           row.Position,
			SectionID:          sectionID,
			EmploymentStatusID: statusID,
			ContractType:       row.ContractType,
			DateStarted:        row.DateStarted,
			DateResigned:       row.DateResigned,
		}
		if _, err := s.lifecycle.Hire(ctx, hire, actor); err != nil {
			return false, err
		}
		return true, nil
	}

	update := &dto.UpdateEmployeeRequest{
		FirstName:          &row.FirstName,
		MiddleName:         &row.MiddleName,
		LastName:           &row.LastName,
		Suffix:             &row.Suffix,
		Sex:                &row.Sex,
		Position:           &row.Position,
		SectionID:          &sectionID,
		EmploymentStatusID: &statusID,
	}
	if row.DateStarted != "" {
		update.DateStarted = &row.DateStarted
	}
	if row.DateResigned != "" {
		update.DateResigned = &row.DateResigned
	}
	if _, err := s.lifecycle.UpdateProfile(ctx, existing.EmployeeID, update, actor); err != nil {
		return false, err
	}
	return false, nil
}

// resolveSection 科室名称解析为 ID，不存在则创建
func (s *importService) resolveSection(ctx context.Context, name string, actor Actor) (string, error) {
	name = normalizeName(name)
	if name == "" {
		return "", errors.New("office is required")
	}

	section, err := s.repo.Section.GetActiveByName(ctx, name)
	if err == nil {
		return section.SectionID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找科室失败", zap.Error(err))
		return "", err
	}

	section = &model.Section{Name: name, Description: "Created during import"}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建科室失败", zap.String("name", name), zap.Error(err))
		return "", err
	}
	s.recordCreated(ctx, actor, model.SubjectSection, section.SectionID, fmt.Sprintf("Section created during import: %s", name))
	return section.SectionID, nil
}

// resolveStatus 聘用状态名称解析为 ID，不存在则创建
func (s *importService) resolveStatus(ctx context.Context, name string, actor Actor) (string, error) {
	name = normalizeName(name)
	if name == "" {
		return "", errors.New("employment status is required")
	}

	status, err := s.repo.EmploymentStatus.GetActiveByName(ctx, name)
	if err == nil {
		return status.StatusID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找聘用状态失败", zap.Error(err))
		return "", err
	}

	status = &model.EmploymentStatus{Name: name, Description: "Created during import"}
	if err := s.repo.EmploymentStatus.Create(ctx, status); err != nil {
		s.logger.Error("创建聘用状态失败", zap.String("name", name), zap.Error(err))
		return "", err
	}
	s.recordCreated(ctx, actor, model.SubjectEmploymentStatus, status.StatusID, fmt.Sprintf("Employment status created during import: %s", name))
	return status.StatusID, nil
}

// recordCreated 审计日志失败只告警，不阻断导入
func (s *importService) recordCreated(ctx context.Context, actor Actor, subjectType, subjectID, description string) {
	logEntry := &model.ActivityLog{
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Action:      "created",
		Description: description,
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := s.repo.ActivityLog.Create(ctx, logEntry); err != nil {
		s.logger.Warn("写入审计日志失败", zap.Error(err))
	}
}
