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

// LifecycleService 员工生命周期业务接口
// 入职/改档/离职/归档/恢复/删除的全部级联副作用都在单个事务内按序完成
type LifecycleService interface {
	// 入职：创建员工 + 初始合同 + 初始任职 + hired 时间线
	Hire(ctx context.Context, req *dto.HireEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error)
	// 员工档案详情（含合同/任职/离职/时间线全部历史）
	GetProfile(ctx context.Context, id string) (*dto.EmployeeDetailResponse, error)
	// 编辑档案：科室变更重开任职；date_resigned 首次置值触发离职级联
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error)
	// 离职登记（唯一权威离职路径，按 employee_id+resignation_date 去重）
	Resign(ctx context.Context, id string, req *dto.ResignEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error)
	// 归档：要求已离职；重复归档报 AlreadyArchived
	Archive(ctx context.Context, id string, req *dto.ArchiveEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error)
	// 恢复：仅撤销归档标记，不清除 date_resigned，不重开合同与任职
	Restore(ctx context.Context, id string, actor Actor) (*dto.EmployeeResponse, error)
	// 硬删除（级联删除历史记录；审计日志留存）
	Delete(ctx context.Context, id string, actor Actor) error
	// 归档资格查询（纯读）
	Archivability(ctx context.Context, id string) (*dto.ArchivabilityStatus, error)
}

type lifecycleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLifecycleService 创建 LifecycleService 实例
func NewLifecycleService(repo *repository.Repository, logger *zap.Logger) LifecycleService {
	return &lifecycleService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Hire — 入职
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) Hire(ctx context.Context, req *dto.HireEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error) {
	// 1. 字段校验
	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["last_name"] = "last name is required"
	}
	if req.SectionID == "" {
		fields["section_id"] = "section is required"
	}
	if req.EmploymentStatusID == "" {
		fields["employment_status_id"] = "employment status is required"
	}

	dateStarted, err := parseDate(req.DateStarted)
	if err != nil {
		fields["date_started"] = "invalid date format, expected YYYY-MM-DD"
	}
	dateResigned, err := parseDate(req.DateResigned)
	if err != nil {
		fields["date_resigned"] = "invalid date format, expected YYYY-MM-DD"
	}
	if dateStarted != nil && dateResigned != nil && dateResigned.Before(*dateStarted) {
		fields["date_resigned"] = "resignation date cannot be before start date"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// 2. 外键存在性校验
	section, err := s.repo.Section.GetByID(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询科室失败", zap.Error(err))
		return nil, err
	}
	status, err := s.repo.EmploymentStatus.GetByID(ctx, req.EmploymentStatusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		s.logger.Error("查询雇佣状态失败", zap.Error(err))
		return nil, err
	}

	// 3. 级联写入（员工 → 合同 → 任职 → 时间线 → 审计日志）
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee := &model.Employee{
		FirstName:          normalizeName(req.FirstName),
		MiddleName:         normalizeName(req.MiddleName),
		LastName:           normalizeName(req.LastName),
		Suffix:             normalizeSuffix(req.Suffix),
		Sex:                strings.TrimSpace(req.Sex),
		Position:           strings.TrimSpace(req.Position),
		SectionID:          req.SectionID,
		EmploymentStatusID: req.EmploymentStatusID,
		DateStarted:        dateStarted,
		DateResigned:       dateResigned,
	}
	if err := txRepo.Employee.Create(ctx, employee); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	startDate := time.Now()
	if dateStarted != nil {
		startDate = *dateStarted
	}

	contractType := strings.TrimSpace(req.ContractType)
	if contractType == "" {
		contractType = "Regular"
	}
	contract := &model.Contract{
		EmployeeID:   employee.EmployeeID,
		ContractType: contractType,
		StartDate:    startDate,
		Status:       model.ContractStatusActive,
		Notes:        "Initial contract",
	}
	// 已知离职日期的历史员工，初始合同直接收口
	if dateResigned != nil {
		contract.Status = model.ContractStatusExpired
		contract.EndDate = dateResigned
	}
	if err := txRepo.Contract.Create(ctx, contract); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建初始合同失败", zap.Error(err))
		return nil, err
	}

	assignment := &model.Assignment{
		EmployeeID: employee.EmployeeID,
		SectionID:  employee.SectionID,
		Position:   employee.Position,
		StartDate:  startDate,
		EndDate:    dateResigned,
		Notes:      "Initial assignment",
	}
	if err := txRepo.Assignment.Create(ctx, assignment); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建初始任职记录失败", zap.Error(err))
		return nil, err
	}

	desc := fmt.Sprintf("%s was hired", employee.FullName())
	if employee.Position != "" {
		desc = fmt.Sprintf("%s was hired as %s", employee.FullName(), employee.Position)
	}
	event := &model.TimelineEvent{
		EmployeeID: employee.EmployeeID,
		EventType:  model.EventHired,
		Title:      "Hired",
		Description: desc,
		EventDate:  startDate,
		NewValues: model.JSONMap{
			"section":           section.Name,
			"employment_status": status.Name,
			"position":          employee.Position,
		},
	}
	if err := txRepo.Timeline.Create(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入时间线失败", zap.Error(err))
		return nil, err
	}

	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmployee,
		SubjectID:   employee.EmployeeID,
		Action:      "created",
		Description: desc,
		NewValues: model.JSONMap{
			"first_name": employee.FirstName,
			"last_name":  employee.LastName,
			"section_id": employee.SectionID,
		},
		ActorID:   actor.causerID(),
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计日志失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	employee.Section = section
	employee.EmploymentStatus = status
	if assignment.EndDate == nil {
		employee.CurrentAssignment = assignment
	}
	return toEmployeeResponse(employee, time.Now()), nil
}

// ════════════════════════════════════════════════════════════
// GetProfile — 档案详情
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) GetProfile(ctx context.Context, id string) (*dto.EmployeeDetailResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	contracts, err := s.repo.Contract.ListByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("查询合同历史失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("查询任职历史失败", zap.Error(err))
		return nil, err
	}
	resignations, err := s.repo.Resignation.ListByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("查询离职记录失败", zap.Error(err))
		return nil, err
	}
	timeline, err := s.repo.Timeline.ListByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("查询时间线失败", zap.Error(err))
		return nil, err
	}

	detail := &dto.EmployeeDetailResponse{
		EmployeeResponse: *toEmployeeResponse(employee, time.Now()),
		Contracts:        make([]dto.ContractResponse, 0, len(contracts)),
		Assignments:      make([]dto.AssignmentResponse, 0, len(assignments)),
		Resignations:     make([]dto.ResignationResponse, 0, len(resignations)),
		Timeline:         make([]dto.TimelineEventResponse, 0, len(timeline)),
	}
	for i := range contracts {
		detail.Contracts = append(detail.Contracts, toContractResponse(&contracts[i]))
	}
	for i := range assignments {
		detail.Assignments = append(detail.Assignments, toAssignmentResponse(&assignments[i]))
	}
	for i := range resignations {
		detail.Resignations = append(detail.Resignations, toResignationResponse(&resignations[i]))
	}
	for i := range timeline {
		detail.Timeline = append(detail.Timeline, toTimelineResponse(&timeline[i]))
	}

	arch := s.archivabilityOf(employee)
	detail.Archivability = &arch
	return detail, nil
}

// ════════════════════════════════════════════════════════════
// UpdateProfile — 编辑档案
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) UpdateProfile(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee, err := txRepo.Employee.GetByIDForUpdate(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("锁定员工记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	oldValues := model.JSONMap{}
	newValues := model.JSONMap{}
	track := func(field string, oldV, newV interface{}) {
		oldValues[field] = oldV
		newValues[field] = newV
	}

	// ── 基本字段 ──
	if req.FirstName != nil {
		if v := normalizeName(*req.FirstName); v != employee.FirstName {
			track("first_name", employee.FirstName, v)
			employee.FirstName = v
		}
	}
	if req.MiddleName != nil {
		if v := normalizeName(*req.MiddleName); v != employee.MiddleName {
			track("middle_name", employee.MiddleName, v)
			employee.MiddleName = v
		}
	}
	if req.LastName != nil {
		if v := normalizeName(*req.LastName); v != employee.LastName {
			track("last_name", employee.LastName, v)
			employee.LastName = v
		}
	}
	if req.Suffix != nil {
		if v := normalizeSuffix(*req.Suffix); v != employee.Suffix {
			track("suffix", employee.Suffix, v)
			employee.Suffix = v
		}
	}
	if req.Sex != nil {
		if v := strings.TrimSpace(*req.Sex); v != employee.Sex {
			track("sex", employee.Sex, v)
			employee.Sex = v
		}
	}

	// ── 日期字段（先解析，离职级联最后处理）──
	if employee.FirstName == "" || employee.LastName == "" {
		if tx != nil {
			tx.Rollback()
		}
		return nil, newValidationError("name", "first and last name cannot be cleared")
	}

	hadResigned := employee.DateResigned != nil
	var newResigned *time.Time
	if req.DateStarted != nil {
		parsed, perr := parseDate(*req.DateStarted)
		if perr != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, newValidationError("date_started", "invalid date format, expected YYYY-MM-DD")
		}
		track("date_started", formatDate(employee.DateStarted), formatDate(parsed))
		employee.DateStarted = parsed
	}
	if req.DateResigned != nil {
		parsed, perr := parseDate(*req.DateResigned)
		if perr != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, newValidationError("date_resigned", "invalid date format, expected YYYY-MM-DD")
		}
		newResigned = parsed
	}
	if newResigned != nil && employee.DateStarted != nil && newResigned.Before(*employee.DateStarted) {
		if tx != nil {
			tx.Rollback()
		}
		return nil, newValidationError("date_resigned", "resignation date cannot be before start date")
	}

	// ── 雇佣状态 ──
	if req.EmploymentStatusID != nil && *req.EmploymentStatusID != employee.EmploymentStatusID {
		if _, err := txRepo.EmploymentStatus.GetByID(ctx, *req.EmploymentStatusID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStatusNotFound
			}
			s.logger.Error("查询雇佣状态失败", zap.Error(err))
			return nil, err
		}
		track("employment_status_id", employee.EmploymentStatusID, *req.EmploymentStatusID)
		employee.EmploymentStatusID = *req.EmploymentStatusID
	}

	// ── 职位变更：只记 promoted 时间线，不回写任职记录 ──
	oldPosition := employee.Position
	if req.Position != nil {
		if v := strings.TrimSpace(*req.Position); v != employee.Position {
			track("position", employee.Position, v)
			employee.Position = v
		}
	}

	// ── 科室变更：关闭当前任职并开启新任职 ──
	sectionChanged := req.SectionID != nil && *req.SectionID != employee.SectionID
	if sectionChanged {
		newSection, serr := txRepo.Section.GetByID(ctx, *req.SectionID)
		if serr != nil {
			if tx != nil {
				tx.Rollback()
			}
			if errors.Is(serr, gorm.ErrRecordNotFound) {
				return nil, ErrSectionNotFound
			}
			s.logger.Error("查询科室失败", zap.Error(serr))
			return nil, serr
		}

		oldSectionName := employee.SectionID
		if oldSection, serr := txRepo.Section.GetByID(ctx, employee.SectionID); serr == nil {
			oldSectionName = oldSection.Name
		}

		now := time.Now()
		if err := txRepo.Assignment.CloseOpen(ctx, employee.EmployeeID, now); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("关闭当前任职记录失败", zap.Error(err))
			return nil, err
		}

		track("section_id", employee.SectionID, *req.SectionID)
		employee.SectionID = *req.SectionID

		assignment := &model.Assignment{
			EmployeeID: employee.EmployeeID,
			SectionID:  employee.SectionID,
			Position:   employee.Position,
			StartDate:  now,
			Notes:      "Section transfer",
		}
		if err := txRepo.Assignment.Create(ctx, assignment); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("创建新任职记录失败", zap.Error(err))
			return nil, err
		}

		event := &model.TimelineEvent{
			EmployeeID: employee.EmployeeID,
			EventType:  model.EventTransferred,
			Title:      "Transferred",
			Description: fmt.Sprintf("%s transferred to %s", employee.FullName(), newSection.Name),
			EventDate:  now,
			OldValues:  model.JSONMap{"section": oldSectionName},
			NewValues:  model.JSONMap{"section": newSection.Name},
			RelatedID:  &assignment.AssignmentID,
			RelatedType: "assignment",
		}
		if err := txRepo.Timeline.Create(ctx, event); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入时间线失败", zap.Error(err))
			return nil, err
		}
	}

	if req.Position != nil && employee.Position != oldPosition {
		event := &model.TimelineEvent{
			EmployeeID:  employee.EmployeeID,
			EventType:   model.EventPromoted,
			Title:       "Position Changed",
			Description: fmt.Sprintf("%s position changed from %q to %q", employee.FullName(), oldPosition, employee.Position),
			EventDate:   time.Now(),
			OldValues:   model.JSONMap{"position": oldPosition},
			NewValues:   model.JSONMap{"position": employee.Position},
		}
		if err := txRepo.Timeline.Create(ctx, event); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入时间线失败", zap.Error(err))
			return nil, err
		}
	}

	// ── date_resigned 首次置值 → 走与 Resign 相同的级联 ──
	if newResigned != nil && !hadResigned {
		if err := s.resignCascade(ctx, txRepo, employee, *newResigned, "Resigned", "Resigned during profile update", actor); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		track("date_resigned", "", formatDate(newResigned))
	} else if req.DateResigned != nil {
		// 已离职者仅允许修正日期（不重复级联）
		if formatDate(newResigned) != formatDate(employee.DateResigned) {
			track("date_resigned", formatDate(employee.DateResigned), formatDate(newResigned))
		}
		employee.DateResigned = newResigned
	}

	if err := txRepo.Employee.Update(ctx, employee); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if len(newValues) > 0 {
		logEntry := &model.ActivityLog{
			SubjectType: model.SubjectEmployee,
			SubjectID:   employee.EmployeeID,
			Action:      "updated",
			Description: fmt.Sprintf("Employee profile updated: %s", employee.FullName()),
			OldValues:   oldValues,
			NewValues:   newValues,
			ActorID:     actor.causerID(),
			IPAddress:   actor.IP,
			UserAgent:   actor.UserAgent,
		}
		if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入审计日志失败", zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.reload(ctx, employee.EmployeeID)
}

// ════════════════════════════════════════════════════════════
// Resign — 离职（唯一权威路径）
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) Resign(ctx context.Context, id string, req *dto.ResignEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error) {
	parsed, err := parseDate(req.ResignationDate)
	if err != nil || parsed == nil {
		return nil, newValidationError("resignation_date", "invalid date format, expected YYYY-MM-DD")
	}
	date := *parsed
	if strings.TrimSpace(req.Reason) == "" {
		return nil, newValidationError("reason", "reason is required")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee, err := txRepo.Employee.GetByIDForUpdate(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("锁定员工记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if employee.DateStarted != nil && date.Before(*employee.DateStarted) {
		if tx != nil {
			tx.Rollback()
		}
		return nil, newValidationError("resignation_date", "resignation date cannot be before start date")
	}

	// 去重：同日重复登记按幂等处理，直接返回现状
	existing, err := txRepo.Resignation.GetByEmployeeAndDate(ctx, id, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("查询离职记录失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		if tx != nil {
			tx.Rollback()
		}
		return s.reload(ctx, id)
	}

	if err := s.resignCascade(ctx, txRepo, employee, date, req.Reason, req.Notes, actor); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if err := txRepo.Employee.Update(ctx, employee); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.reload(ctx, id)
}

// resignCascade 离职级联：离职记录 → 员工标记 → 关闭合同 → 关闭任职 → 时间线 → 审计日志
// 调用方负责持有行锁、执行 Employee.Update 与事务提交
func (s *lifecycleService) resignCascade(ctx context.Context, txRepo *repository.Repository, employee *model.Employee, date time.Time, reason, notes string, actor Actor) error {
	// 同一 (员工, 日期) 只保留一条离职记录，已有记录直接复用
	resignation, err := txRepo.Resignation.GetByEmployeeAndDate(ctx, employee.EmployeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询离职记录失败", zap.Error(err))
		return err
	}
	if resignation == nil {
		resignation = &model.Resignation{
			EmployeeID:      employee.EmployeeID,
			ResignationDate: date,
			Reason:          reason,
			Notes:           notes,
		}
		if err := txRepo.Resignation.Create(ctx, resignation); err != nil {
			s.logger.Error("创建离职记录失败", zap.Error(err))
			return err
		}
	}

	now := time.Now()
	employee.DateResigned = &date
	employee.IsArchived = true
	employee.ArchivedAt = &now
	employee.ArchivedReason = "Resigned: " + reason

	if err := txRepo.Contract.CloseActive(ctx, employee.EmployeeID, date); err != nil {
		s.logger.Error("关闭在期合同失败", zap.Error(err))
		return err
	}
	if err := txRepo.Assignment.CloseOpen(ctx, employee.EmployeeID, date); err != nil {
		s.logger.Error("关闭当前任职记录失败", zap.Error(err))
		return err
	}

	event := &model.TimelineEvent{
		EmployeeID:  employee.EmployeeID,
		EventType:   model.EventResigned,
		Title:       "Resigned",
		Description: fmt.Sprintf("%s resigned: %s", employee.FullName(), reason),
		EventDate:   date,
		NewValues:   model.JSONMap{"resignation_date": date.Format(dateLayout), "reason": reason},
		RelatedID:   &resignation.ResignationID,
		RelatedType: "resignation",
	}
	if err := txRepo.Timeline.Create(ctx, event); err != nil {
		s.logger.Error("写入时间线失败", zap.Error(err))
		return err
	}

	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmployee,
		SubjectID:   employee.EmployeeID,
		Action:      "resigned",
		Description: fmt.Sprintf("Employee resigned: %s", reason),
		NewValues:   model.JSONMap{"resignation_date": date.Format(dateLayout), "reason": reason},
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
		s.logger.Error("写入审计日志失败", zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Archive / Restore
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) Archive(ctx context.Context, id string, req *dto.ArchiveEmployeeRequest, actor Actor) (*dto.EmployeeResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee, err := txRepo.Employee.GetByIDForUpdate(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("锁定员工记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 前置条件：在职员工必须先离职；重复归档直接报错
	if employee.IsArchived {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrAlreadyArchived
	}
	if employee.DateResigned == nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrMustResignFirst
	}

	now := time.Now()
	employee.IsArchived = true
	employee.ArchivedAt = &now
	employee.ArchivedReason = req.Reason

	if err := txRepo.Employee.Update(ctx, employee); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("归档员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	event := &model.TimelineEvent{
		EmployeeID:  employee.EmployeeID,
		EventType:   model.EventArchived,
		Title:       "Archived",
		Description: fmt.Sprintf("%s was archived: %s", employee.FullName(), req.Reason),
		EventDate:   now,
		NewValues:   model.JSONMap{"archived_reason": req.Reason},
	}
	if err := txRepo.Timeline.Create(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入时间线失败", zap.Error(err))
		return nil, err
	}

	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmployee,
		SubjectID:   employee.EmployeeID,
		Action:      "archived",
		Description: fmt.Sprintf("Employee archived: %s", req.Reason),
		NewValues:   model.JSONMap{"archived_reason": req.Reason},
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计日志失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.reload(ctx, id)
}

func (s *lifecycleService) Restore(ctx context.Context, id string, actor Actor) (*dto.EmployeeResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee, err := txRepo.Employee.GetByIDForUpdate(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("锁定员工记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 恢复只撤销归档标记；date_resigned 与已关闭的合同/任职维持原状
	previousReason := employee.ArchivedReason
	employee.IsArchived = false
	employee.ArchivedAt = nil
	employee.ArchivedReason = ""

	if err := txRepo.Employee.Update(ctx, employee); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("恢复员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	event := &model.TimelineEvent{
		EmployeeID:  employee.EmployeeID,
		EventType:   model.EventRestored,
		Title:       "Restored",
		Description: fmt.Sprintf("%s was restored from archive", employee.FullName()),
		EventDate:   time.Now(),
		OldValues:   model.JSONMap{"archived_reason": previousReason},
	}
	if err := txRepo.Timeline.Create(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入时间线失败", zap.Error(err))
		return nil, err
	}

	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmployee,
		SubjectID:   employee.EmployeeID,
		Action:      "restored",
		Description: "Employee restored from archive",
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计日志失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.reload(ctx, id)
}

// ════════════════════════════════════════════════════════════
// Delete — 硬删除
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) Delete(ctx context.Context, id string, actor Actor) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	employee, err := txRepo.Employee.GetByIDForUpdate(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("锁定员工记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 合同/任职/离职/时间线由外键级联删除；审计日志无外键，追加终笔后留存
	if err := txRepo.Employee.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除员工失败", zap.String("id", id), zap.Error(err))
		return err
	}

	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmployee,
		SubjectID:   id,
		Action:      "deleted",
		Description: fmt.Sprintf("Employee deleted: %s", employee.FullName()),
		OldValues: model.JSONMap{
			"first_name": employee.FirstName,
			"last_name":  employee.LastName,
			"section_id": employee.SectionID,
		},
		ActorID:   actor.causerID(),
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if err := txRepo.ActivityLog.Create(ctx, logEntry); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计日志失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Archivability — 归档资格（纯读）
// ════════════════════════════════════════════════════════════

func (s *lifecycleService) Archivability(ctx context.Context, id string) (*dto.ArchivabilityStatus, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	status := s.archivabilityOf(employee)
	return &status, nil
}

func (s *lifecycleService) archivabilityOf(employee *model.Employee) dto.ArchivabilityStatus {
	switch {
	case employee.IsArchived:
		return dto.ArchivabilityStatus{Status: "archived", Message: "Already archived"}
	case employee.DateResigned != nil:
		return dto.ArchivabilityStatus{Status: "archivable", Message: "Can be archived"}
	default:
		return dto.ArchivabilityStatus{Status: "active", Message: "Must be resigned first"}
	}
}

// reload 提交后重新加载员工（带关联）组装响应
func (s *lifecycleService) reload(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("重新加载员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeResponse(employee, time.Now()), nil
}
